package models

import (
	"time"

	"github.com/google/uuid"
)

// SwapEventModel represents the database model for SwapEvent. Rows are
// append-only; Count is always 1 so totals are plain row counts.
type SwapEventModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	LocationID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EquipmentID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Count         int       `gorm:"not null;default:1"`
	MeterReading  *string   `gorm:"type:numeric"`
	BatteryNumber *string   `gorm:"type:varchar(100)"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (SwapEventModel) TableName() string {
	return "swap_events"
}
