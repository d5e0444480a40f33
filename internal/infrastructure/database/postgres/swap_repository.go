package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainSwap "gse-tracker/internal/domain/swap"
	"gse-tracker/internal/infrastructure/database/postgres/models"
)

// SwapRepository implements the append-only swap ledger.
type SwapRepository struct {
	db *DB
}

func NewSwapRepository(db *DB) domainSwap.Repository {
	return &SwapRepository{db: db}
}

func (r *SwapRepository) Insert(ctx context.Context, event *domainSwap.Event) error {
	event.Count = 1
	event.CreatedAt = time.Now()

	dbModel := toSwapEventModel(event)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to insert swap event: %w", err)
	}

	event.ID = dbModel.ID
	return nil
}

func (r *SwapRepository) CountByEquipment(ctx context.Context, equipmentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.SwapEventModel{}).
		Where("equipment_id = ?", equipmentID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count swap events: %w", err)
	}
	return count, nil
}

func (r *SwapRepository) ListRecentByEquipment(ctx context.Context, equipmentID uuid.UUID, limit int) ([]*domainSwap.Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 5
	}

	var dbModels []models.SwapEventModel
	err := r.db.DB.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list swap events: %w", err)
	}

	events := make([]*domainSwap.Event, len(dbModels))
	for i := range dbModels {
		events[i] = toSwapEventEntity(&dbModels[i])
	}
	return events, nil
}

func toSwapEventModel(e *domainSwap.Event) *models.SwapEventModel {
	return &models.SwapEventModel{
		ID:            e.ID,
		UserID:        e.UserID,
		LocationID:    e.LocationID,
		EquipmentID:   e.EquipmentID,
		Count:         e.Count,
		MeterReading:  e.MeterReading,
		BatteryNumber: e.BatteryNumber,
		CreatedAt:     e.CreatedAt,
	}
}

func toSwapEventEntity(m *models.SwapEventModel) *domainSwap.Event {
	return &domainSwap.Event{
		ID:            m.ID,
		UserID:        m.UserID,
		LocationID:    m.LocationID,
		EquipmentID:   m.EquipmentID,
		Count:         m.Count,
		MeterReading:  m.MeterReading,
		BatteryNumber: m.BatteryNumber,
		CreatedAt:     m.CreatedAt,
	}
}
