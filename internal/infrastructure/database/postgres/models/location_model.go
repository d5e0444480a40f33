package models

import (
	"time"

	"github.com/google/uuid"
)

// LocationModel represents the database model for Location.
type LocationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Code      string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(255);not null"`
	IsActive  bool      `gorm:"default:true;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (LocationModel) TableName() string {
	return "locations"
}
