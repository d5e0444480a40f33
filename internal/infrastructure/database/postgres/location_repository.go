package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainLocation "gse-tracker/internal/domain/location"
	"gse-tracker/internal/infrastructure/database/postgres/models"
)

// LocationRepository implements domainLocation.Repository.
type LocationRepository struct {
	db *DB
}

func NewLocationRepository(db *DB) domainLocation.Repository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, loc *domainLocation.Location) error {
	if loc.ID == uuid.Nil {
		loc.ID = uuid.New()
	}
	loc.CreatedAt = time.Now()
	loc.UpdatedAt = time.Now()

	dbModel := toLocationModel(loc)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKey(err) {
			return domainLocation.ErrLocationAlreadyExists
		}
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

func (r *LocationRepository) GetByID(ctx context.Context, locationID uuid.UUID) (*domainLocation.Location, error) {
	var dbModel models.LocationModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", locationID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainLocation.ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return toLocationEntity(&dbModel), nil
}

func (r *LocationRepository) GetByCode(ctx context.Context, code string) (*domainLocation.Location, error) {
	var dbModel models.LocationModel
	err := r.db.DB.WithContext(ctx).
		Where("code = ?", code).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainLocation.ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return toLocationEntity(&dbModel), nil
}

func (r *LocationRepository) List(ctx context.Context) ([]*domainLocation.Location, error) {
	var dbModels []models.LocationModel
	if err := r.db.DB.WithContext(ctx).Order("code ASC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	locations := make([]*domainLocation.Location, len(dbModels))
	for i := range dbModels {
		locations[i] = toLocationEntity(&dbModels[i])
	}
	return locations, nil
}

func (r *LocationRepository) SetActive(ctx context.Context, locationID uuid.UUID, active bool) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.LocationModel{}).
		Where("id = ?", locationID).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update location: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainLocation.ErrLocationNotFound
	}
	return nil
}

func (r *LocationRepository) Update(ctx context.Context, loc *domainLocation.Location) error {
	loc.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.LocationModel{}).
		Where("id = ?", loc.ID).
		Updates(map[string]interface{}{
			"name":       loc.Name,
			"is_active":  loc.IsActive,
			"updated_at": loc.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update location: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainLocation.ErrLocationNotFound
	}
	return nil
}

func toLocationModel(l *domainLocation.Location) *models.LocationModel {
	return &models.LocationModel{
		ID:        l.ID,
		Code:      l.Code,
		Name:      l.Name,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toLocationEntity(m *models.LocationModel) *domainLocation.Location {
	return &domainLocation.Location{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
