package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainPoint "gse-tracker/internal/domain/chargingpoint"
	"gse-tracker/internal/infrastructure/database/postgres/models"
)

// ChargingPointRepository implements domainPoint.Repository.
type ChargingPointRepository struct {
	db *DB
}

func NewChargingPointRepository(db *DB) domainPoint.Repository {
	return &ChargingPointRepository{db: db}
}

func (r *ChargingPointRepository) Create(ctx context.Context, point *domainPoint.ChargingPoint) error {
	if point.ID == uuid.Nil {
		point.ID = uuid.New()
	}
	point.CreatedAt = time.Now()
	point.UpdatedAt = time.Now()

	dbModel := toChargingPointModel(point)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create charging point: %w", err)
	}
	return nil
}

func (r *ChargingPointRepository) GetByID(ctx context.Context, pointID uuid.UUID) (*domainPoint.ChargingPoint, error) {
	var dbModel models.ChargingPointModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", pointID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainPoint.ErrChargingPointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get charging point: %w", err)
	}
	return toChargingPointEntity(&dbModel), nil
}

func (r *ChargingPointRepository) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]*domainPoint.ChargingPoint, error) {
	var dbModels []models.ChargingPointModel
	err := r.db.DB.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("name ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list charging points: %w", err)
	}

	points := make([]*domainPoint.ChargingPoint, len(dbModels))
	for i := range dbModels {
		points[i] = toChargingPointEntity(&dbModels[i])
	}
	return points, nil
}

func (r *ChargingPointRepository) Update(ctx context.Context, point *domainPoint.ChargingPoint) error {
	point.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.ChargingPointModel{}).
		Where("id = ?", point.ID).
		Updates(map[string]interface{}{
			"name":       point.Name,
			"updated_at": point.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update charging point: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainPoint.ErrChargingPointNotFound
	}
	return nil
}

func (r *ChargingPointRepository) Delete(ctx context.Context, pointID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", pointID).
		Delete(&models.ChargingPointModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete charging point: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainPoint.ErrChargingPointNotFound
	}
	return nil
}

func toChargingPointModel(p *domainPoint.ChargingPoint) *models.ChargingPointModel {
	return &models.ChargingPointModel{
		ID:         p.ID,
		Name:       p.Name,
		LocationID: p.LocationID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toChargingPointEntity(m *models.ChargingPointModel) *domainPoint.ChargingPoint {
	return &domainPoint.ChargingPoint{
		ID:         m.ID,
		Name:       m.Name,
		LocationID: m.LocationID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
