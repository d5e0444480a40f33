package models

import (
	"time"

	"github.com/google/uuid"
)

// ChargingPointModel represents the database model for ChargingPoint.
type ChargingPointModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	Name       string    `gorm:"type:varchar(100);not null"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (ChargingPointModel) TableName() string {
	return "charging_points"
}
