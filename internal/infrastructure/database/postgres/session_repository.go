package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainSession "gse-tracker/internal/domain/session"
	"gse-tracker/internal/infrastructure/database/postgres/models"
)

// SessionRepository implements the charging-session ledger. The partial
// unique index on (equipment_id) WHERE end_time IS NULL enforces the
// one-open-session invariant at the storage layer; this repository only
// translates its violation into a domain error.
type SessionRepository struct {
	db *DB
}

func NewSessionRepository(db *DB) domainSession.Repository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Insert(ctx context.Context, s *domainSession.ChargingSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()

	dbModel := toSessionModel(s)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKey(err) {
			return domainSession.ErrAlreadyCharging
		}
		return fmt.Errorf("failed to insert charging session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID uuid.UUID) (*domainSession.ChargingSession, error) {
	var dbModel models.ChargingSessionModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", sessionID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainSession.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get charging session: %w", err)
	}
	return toSessionEntity(&dbModel), nil
}

// GetOpenByEquipment returns nil when the equipment is idle. Ordering by
// start_time DESC is defensive: if the invariant were ever violated the
// newest open row wins.
func (r *SessionRepository) GetOpenByEquipment(ctx context.Context, equipmentID uuid.UUID) (*domainSession.ChargingSession, error) {
	var dbModel models.ChargingSessionModel
	err := r.db.DB.WithContext(ctx).
		Where("equipment_id = ? AND end_time IS NULL", equipmentID).
		Order("start_time DESC").
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}
	return toSessionEntity(&dbModel), nil
}

// Seal closes the exact row identified by sessionID. The end_time IS
// NULL guard means a concurrent seal loses cleanly instead of
// overwriting the timestamp.
func (r *SessionRepository) Seal(ctx context.Context, sessionID uuid.UUID, endTime time.Time) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ChargingSessionModel{}).
		Where("id = ? AND end_time IS NULL", sessionID).
		Updates(map[string]interface{}{
			"end_time":   endTime,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to seal charging session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.DB.WithContext(ctx).
			Model(&models.ChargingSessionModel{}).
			Where("id = ?", sessionID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to seal charging session: %w", err)
		}
		if count == 0 {
			return domainSession.ErrSessionNotFound
		}
		return domainSession.ErrSessionClosed
	}
	return nil
}

func (r *SessionRepository) ListRecentByEquipment(ctx context.Context, equipmentID uuid.UUID, limit int) ([]*domainSession.ChargingSession, error) {
	if limit <= 0 || limit > 100 {
		limit = 5
	}

	var dbModels []models.ChargingSessionModel
	err := r.db.DB.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("start_time DESC").
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list charging sessions: %w", err)
	}

	sessions := make([]*domainSession.ChargingSession, len(dbModels))
	for i := range dbModels {
		sessions[i] = toSessionEntity(&dbModels[i])
	}
	return sessions, nil
}

func toSessionModel(s *domainSession.ChargingSession) *models.ChargingSessionModel {
	return &models.ChargingSessionModel{
		ID:                  s.ID,
		EquipmentID:         s.EquipmentID,
		UserID:              s.UserID,
		LocationID:          s.LocationID,
		ChargingPointID:     s.ChargingPointID,
		MeterReadingAtStart: s.MeterReadingAtStart,
		StartTime:           s.StartTime,
		EndTime:             s.EndTime,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func toSessionEntity(m *models.ChargingSessionModel) *domainSession.ChargingSession {
	return &domainSession.ChargingSession{
		ID:                  m.ID,
		EquipmentID:         m.EquipmentID,
		UserID:              m.UserID,
		LocationID:          m.LocationID,
		ChargingPointID:     m.ChargingPointID,
		MeterReadingAtStart: m.MeterReadingAtStart,
		StartTime:           m.StartTime,
		EndTime:             m.EndTime,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
