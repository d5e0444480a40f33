package models

import (
	"time"

	"github.com/google/uuid"
)

// ChargingSessionModel represents the database model for ChargingSession.
// The partial unique index on equipment_id WHERE end_time IS NULL is the
// hard guarantee that at most one open session exists per equipment
// unit; the application-level re-check before insert is only a UX
// optimization.
type ChargingSessionModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key"`
	EquipmentID         uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uniq_open_session_per_equipment,where:end_time IS NULL"`
	UserID              uuid.UUID  `gorm:"type:uuid;not null;index"`
	LocationID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	ChargingPointID     *uuid.UUID `gorm:"type:uuid"`
	MeterReadingAtStart *string    `gorm:"type:numeric"`
	StartTime           time.Time  `gorm:"not null;index"`
	EndTime             *time.Time `gorm:"type:timestamp"`
	CreatedAt           time.Time  `gorm:"not null"`
	UpdatedAt           time.Time  `gorm:"not null"`
}

func (ChargingSessionModel) TableName() string {
	return "charging_sessions"
}
