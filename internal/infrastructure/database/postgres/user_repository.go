package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainUser "gse-tracker/internal/domain/user"
	"gse-tracker/internal/infrastructure/database/postgres/models"
)

// UserRepository implements domainUser.Repository.
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) domainUser.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, profile *domainUser.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	dbModel := toUserModel(profile)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKey(err) {
			return domainUser.ErrProfileAlreadyExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domainUser.Profile, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", userID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainUser.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domainUser.Profile, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).
		Where("email = ?", email).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainUser.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]*domainUser.Profile, error) {
	var dbModels []models.UserModel
	err := r.db.DB.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("full_name ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return toUserEntities(dbModels), nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]*domainUser.Profile, error) {
	var dbModels []models.UserModel
	if err := r.db.DB.WithContext(ctx).Order("full_name ASC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return toUserEntities(dbModels), nil
}

func (r *UserRepository) Update(ctx context.Context, profile *domainUser.Profile) error {
	profile.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"full_name":       profile.FullName,
			"role":            string(profile.Role),
			"location_id":     profile.LocationID,
			"is_active":       profile.IsActive,
			"charging_access": profile.ChargingAccess,
			"swapping_access": profile.SwappingAccess,
			"updated_at":      profile.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainUser.ErrProfileNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hashed": passwordHash,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainUser.ErrProfileNotFound
	}
	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainUser.ErrProfileNotFound
	}
	return nil
}

func toUserModel(p *domainUser.Profile) *models.UserModel {
	return &models.UserModel{
		ID:             p.ID,
		Email:          p.Email,
		FullName:       p.FullName,
		PasswordHashed: p.PasswordHashed,
		Role:           string(p.Role),
		LocationID:     p.LocationID,
		IsActive:       p.IsActive,
		ChargingAccess: p.ChargingAccess,
		SwappingAccess: p.SwappingAccess,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *domainUser.Profile {
	return &domainUser.Profile{
		ID:             m.ID,
		Email:          m.Email,
		FullName:       m.FullName,
		PasswordHashed: m.PasswordHashed,
		Role:           domainUser.Role(m.Role),
		LocationID:     m.LocationID,
		IsActive:       m.IsActive,
		ChargingAccess: m.ChargingAccess,
		SwappingAccess: m.SwappingAccess,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toUserEntities(dbModels []models.UserModel) []*domainUser.Profile {
	profiles := make([]*domainUser.Profile, len(dbModels))
	for i := range dbModels {
		profiles[i] = toUserEntity(&dbModels[i])
	}
	return profiles
}
