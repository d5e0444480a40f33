package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EquipmentModel represents the database model for EquipmentRecord.
// Codes are unique per location among live rows; deletion is soft so
// session and swap history keeps a valid equipment reference.
type EquipmentModel struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key"`
	LocationID         uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:uniq_equipment_code_location,where:deleted_at IS NULL"`
	Code               string         `gorm:"type:varchar(50);not null;uniqueIndex:uniq_equipment_code_location,where:deleted_at IS NULL"`
	EquipmentType      string         `gorm:"type:varchar(100);not null"`
	Status             string         `gorm:"type:varchar(20);not null;default:'operational'"`
	LastInspectionDate *time.Time     `gorm:"type:timestamp"`
	NextInspectionDate *time.Time     `gorm:"type:timestamp"`
	Notes              string         `gorm:"type:text"`
	CreatedBy          uuid.UUID      `gorm:"type:uuid;not null"`
	UpdatedBy          uuid.UUID      `gorm:"type:uuid;not null"`
	CreatedAt          time.Time      `gorm:"not null"`
	UpdatedAt          time.Time      `gorm:"not null"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (EquipmentModel) TableName() string {
	return "equipment_records"
}
