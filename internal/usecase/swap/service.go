package swap

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainEquipment "gse-tracker/internal/domain/equipment"
	domainSwap "gse-tracker/internal/domain/swap"
	domainUser "gse-tracker/internal/domain/user"
	"gse-tracker/internal/logger"
	"gse-tracker/internal/notify"
	"gse-tracker/internal/policy"
	appErrors "gse-tracker/pkg/errors"
	"gse-tracker/pkg/utils"
)

// Service implements the battery-swap ledger use cases. Swaps are
// independent, unordered append events; there is no state machine.
type Service struct {
	swaps     domainSwap.Repository
	equipment domainEquipment.Repository
	users     domainUser.Repository
	notifier  notify.Publisher
}

func NewService(
	swaps domainSwap.Repository,
	equipment domainEquipment.Repository,
	users domainUser.Repository,
	notifier notify.Publisher,
) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Service{
		swaps:     swaps,
		equipment: equipment,
		users:     users,
		notifier:  notifier,
	}
}

// RecordSwap appends one event with count=1. Each row represents a
// single swap so the log doubles as an audit trail.
func (s *Service) RecordSwap(ctx context.Context, actorID uuid.UUID, req *RecordSwapRequest) (*SwapResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	eq, err := s.loadEquipment(ctx, req.EquipmentID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanRecordSwap(actor, eq.LocationID); err != nil {
		return nil, err
	}

	if !utils.IsValidMeterReading(req.MeterReading) {
		return nil, appErrors.Validation("meter_reading", "invalid meter reading")
	}

	event := &domainSwap.Event{
		UserID:        actor.ID,
		LocationID:    eq.LocationID,
		EquipmentID:   eq.ID,
		Count:         1,
		MeterReading:  &req.MeterReading,
		BatteryNumber: req.BatteryNumber,
	}

	if err := s.swaps.Insert(ctx, event); err != nil {
		return nil, appErrors.Upstream("failed to record swap", err)
	}

	s.notifier.Publish(notify.Event{
		Table:       "swap_events",
		Action:      notify.ActionSwapRecorded,
		EquipmentID: eq.ID,
		LocationID:  eq.LocationID,
		OccurredAt:  event.CreatedAt,
	})

	logger.Info("Battery swap recorded",
		zap.Int64("swap_id", event.ID),
		zap.String("equipment_code", eq.Code),
		zap.String("user_id", actor.ID.String()),
		zap.String("event", "swap_recorded"),
	)

	return ToSwapResponse(event), nil
}

// TotalSwaps recomputes the running count on demand.
func (s *Service) TotalSwaps(ctx context.Context, actorID, equipmentID uuid.UUID) (*SwapTotalResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	eq, err := s.loadEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanReadLocation(actor, eq.LocationID); err != nil {
		return nil, err
	}

	total, err := s.swaps.CountByEquipment(ctx, eq.ID)
	if err != nil {
		return nil, appErrors.Upstream("failed to count swaps", err)
	}
	return &SwapTotalResponse{EquipmentID: eq.ID, Total: total}, nil
}

// ListRecent returns the latest swap events, newest first.
func (s *Service) ListRecent(ctx context.Context, actorID, equipmentID uuid.UUID, limit int) ([]SwapResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	eq, err := s.loadEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanReadLocation(actor, eq.LocationID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 5
	}
	events, err := s.swaps.ListRecentByEquipment(ctx, eq.ID, limit)
	if err != nil {
		return nil, appErrors.Upstream("failed to list swaps", err)
	}
	return ToSwapResponses(events), nil
}

func (s *Service) loadActor(ctx context.Context, actorID uuid.UUID) (*domainUser.Profile, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domainUser.ErrProfileNotFound) {
			return nil, appErrors.NotFound("PROFILE_NOT_FOUND", "acting profile not found")
		}
		return nil, appErrors.Upstream("failed to load acting profile", err)
	}
	return actor, nil
}

func (s *Service) loadEquipment(ctx context.Context, equipmentID uuid.UUID) (*domainEquipment.Equipment, error) {
	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, domainEquipment.ErrEquipmentNotFound) {
			return nil, appErrors.NotFound("EQUIPMENT_NOT_FOUND", "equipment not found")
		}
		return nil, appErrors.Upstream("failed to load equipment", err)
	}
	return eq, nil
}
