package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainEquipment "gse-tracker/internal/domain/equipment"
	"gse-tracker/internal/infrastructure/database/postgres/models"
)

// EquipmentRepository implements domainEquipment.Repository.
type EquipmentRepository struct {
	db *DB
}

func NewEquipmentRepository(db *DB) domainEquipment.Repository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Create(ctx context.Context, eq *domainEquipment.Equipment) error {
	if eq.ID == uuid.Nil {
		eq.ID = uuid.New()
	}
	eq.CreatedAt = time.Now()
	eq.UpdatedAt = time.Now()

	dbModel := toEquipmentModel(eq)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKey(err) {
			return domainEquipment.ErrEquipmentAlreadyExists
		}
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, equipmentID uuid.UUID) (*domainEquipment.Equipment, error) {
	var dbModel models.EquipmentModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", equipmentID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainEquipment.ErrEquipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	return toEquipmentEntity(&dbModel), nil
}

func (r *EquipmentRepository) GetByCode(ctx context.Context, locationID uuid.UUID, code string) (*domainEquipment.Equipment, error) {
	var dbModel models.EquipmentModel
	err := r.db.DB.WithContext(ctx).
		Where("location_id = ? AND code = ?", locationID, code).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainEquipment.ErrEquipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	return toEquipmentEntity(&dbModel), nil
}

func (r *EquipmentRepository) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]*domainEquipment.Equipment, error) {
	var dbModels []models.EquipmentModel
	err := r.db.DB.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("code ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}

	records := make([]*domainEquipment.Equipment, len(dbModels))
	for i := range dbModels {
		records[i] = toEquipmentEntity(&dbModels[i])
	}
	return records, nil
}

func (r *EquipmentRepository) Update(ctx context.Context, eq *domainEquipment.Equipment) error {
	eq.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.EquipmentModel{}).
		Where("id = ?", eq.ID).
		Updates(map[string]interface{}{
			"equipment_type":       eq.EquipmentType,
			"status":               string(eq.Status),
			"last_inspection_date": eq.LastInspectionDate,
			"next_inspection_date": eq.NextInspectionDate,
			"notes":                eq.Notes,
			"updated_by":           eq.UpdatedBy,
			"updated_at":           eq.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update equipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainEquipment.ErrEquipmentNotFound
	}
	return nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, equipmentID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", equipmentID).
		Delete(&models.EquipmentModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete equipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainEquipment.ErrEquipmentNotFound
	}
	return nil
}

func toEquipmentModel(e *domainEquipment.Equipment) *models.EquipmentModel {
	return &models.EquipmentModel{
		ID:                 e.ID,
		LocationID:         e.LocationID,
		Code:               e.Code,
		EquipmentType:      e.EquipmentType,
		Status:             string(e.Status),
		LastInspectionDate: e.LastInspectionDate,
		NextInspectionDate: e.NextInspectionDate,
		Notes:              e.Notes,
		CreatedBy:          e.CreatedBy,
		UpdatedBy:          e.UpdatedBy,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func toEquipmentEntity(m *models.EquipmentModel) *domainEquipment.Equipment {
	return &domainEquipment.Equipment{
		ID:                 m.ID,
		LocationID:         m.LocationID,
		Code:               m.Code,
		EquipmentType:      m.EquipmentType,
		Status:             domainEquipment.Status(m.Status),
		LastInspectionDate: m.LastInspectionDate,
		NextInspectionDate: m.NextInspectionDate,
		Notes:              m.Notes,
		CreatedBy:          m.CreatedBy,
		UpdatedBy:          m.UpdatedBy,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
