package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for UserProfile.
type UserModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key"`
	Email          string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName       string     `gorm:"type:varchar(255);not null"`
	PasswordHashed string     `gorm:"type:varchar(255);not null"`
	Role           string     `gorm:"type:varchar(20);not null;default:'user'"`
	LocationID     *uuid.UUID `gorm:"type:uuid;index"`
	IsActive       bool       `gorm:"default:true;not null"`
	ChargingAccess bool       `gorm:"default:false;not null"`
	SwappingAccess bool       `gorm:"default:false;not null"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
