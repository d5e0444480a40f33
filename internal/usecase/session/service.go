package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainPoint "gse-tracker/internal/domain/chargingpoint"
	domainEquipment "gse-tracker/internal/domain/equipment"
	domainSession "gse-tracker/internal/domain/session"
	domainUser "gse-tracker/internal/domain/user"
	"gse-tracker/internal/logger"
	"gse-tracker/internal/notify"
	"gse-tracker/internal/policy"
	appErrors "gse-tracker/pkg/errors"
	"gse-tracker/pkg/utils"
)

// Service is the session controller: it owns the start/stop workflows
// and the enforcement of the one-open-session-per-equipment invariant.
type Service struct {
	sessions  domainSession.Repository
	equipment domainEquipment.Repository
	points    domainPoint.Repository
	users     domainUser.Repository
	notifier  notify.Publisher
}

func NewService(
	sessions domainSession.Repository,
	equipment domainEquipment.Repository,
	points domainPoint.Repository,
	users domainUser.Repository,
	notifier notify.Publisher,
) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Service{
		sessions:  sessions,
		equipment: equipment,
		points:    points,
		users:     users,
		notifier:  notifier,
	}
}

// StartCharging opens a session for one equipment unit. Preconditions
// are checked in order, each with a distinct failure mode: policy,
// equipment availability, charging point, meter reading, and finally a
// write-time re-check of the open-session slot. The re-check defends
// against stale client views; the storage-level unique index is the
// hard guarantee when two starts race past it.
func (s *Service) StartCharging(ctx context.Context, actorID uuid.UUID, req *StartChargingRequest) (*SessionResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	eq, err := s.loadEquipment(ctx, req.EquipmentID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanStartCharging(actor, eq.LocationID); err != nil {
		return nil, err
	}

	if !eq.IsOperational() {
		return nil, appErrors.Conflict("EQUIPMENT_UNAVAILABLE", "equipment is not operational")
	}

	if req.ChargingPointID == uuid.Nil {
		return nil, appErrors.Validation("charging_point", "charging point required")
	}
	point, err := s.points.GetByID(ctx, req.ChargingPointID)
	if err != nil {
		if errors.Is(err, domainPoint.ErrChargingPointNotFound) {
			return nil, appErrors.Validation("charging_point", "unknown charging point")
		}
		return nil, appErrors.Upstream("failed to load charging point", err)
	}
	if point.LocationID != eq.LocationID {
		return nil, appErrors.Validation("charging_point", "charging point belongs to another location")
	}

	if !utils.IsValidMeterReading(req.MeterReading) {
		return nil, appErrors.Validation("meter_reading", "invalid meter reading")
	}

	// Re-check at call time: another actor may have started a session
	// since the caller's view was last refreshed.
	open, err := s.sessions.GetOpenByEquipment(ctx, eq.ID)
	if err != nil {
		return nil, appErrors.Upstream("failed to check open session", err)
	}
	if open != nil {
		return nil, appErrors.Conflict("EQUIPMENT_ALREADY_CHARGING", "equipment is already charging")
	}

	newSession := &domainSession.ChargingSession{
		EquipmentID:         eq.ID,
		UserID:              actor.ID,
		LocationID:          eq.LocationID,
		ChargingPointID:     &point.ID,
		MeterReadingAtStart: &req.MeterReading,
		StartTime:           time.Now(),
	}

	if err := s.sessions.Insert(ctx, newSession); err != nil {
		if errors.Is(err, domainSession.ErrAlreadyCharging) {
			return nil, appErrors.Conflict("EQUIPMENT_ALREADY_CHARGING", "equipment is already charging")
		}
		return nil, appErrors.Upstream("failed to start charging session", err)
	}

	s.notifier.Publish(notify.Event{
		Table:       "charging_sessions",
		Action:      notify.ActionSessionStarted,
		EquipmentID: eq.ID,
		LocationID:  eq.LocationID,
		OccurredAt:  newSession.StartTime,
	})

	logger.Info("Charging session started",
		zap.String("session_id", newSession.ID.String()),
		zap.String("equipment_code", eq.Code),
		zap.String("user_id", actor.ID.String()),
		zap.String("event", "charging_started"),
	)

	return ToSessionResponse(newSession), nil
}

// StopCharging seals the session identified by its own id, not by
// equipment id, so a session created concurrently is never sealed by
// accident.
func (s *Service) StopCharging(ctx context.Context, actorID, sessionID uuid.UUID) (*SessionResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domainSession.ErrSessionNotFound) {
			return nil, appErrors.NotFound("SESSION_NOT_FOUND", "charging session not found")
		}
		return nil, appErrors.Upstream("failed to load charging session", err)
	}

	if err := policy.CanStopCharging(actor, sess.LocationID); err != nil {
		return nil, err
	}

	if !sess.IsOpen() {
		return nil, appErrors.Conflict("SESSION_ALREADY_CLOSED", "session already closed")
	}

	if err := s.sessions.Seal(ctx, sess.ID, time.Now()); err != nil {
		switch {
		case errors.Is(err, domainSession.ErrSessionClosed):
			return nil, appErrors.Conflict("SESSION_ALREADY_CLOSED", "session already closed")
		case errors.Is(err, domainSession.ErrSessionNotFound):
			return nil, appErrors.NotFound("SESSION_NOT_FOUND", "charging session not found")
		default:
			return nil, appErrors.Upstream("failed to stop charging session", err)
		}
	}

	sealed, err := s.sessions.GetByID(ctx, sess.ID)
	if err != nil {
		return nil, appErrors.Upstream("failed to reload charging session", err)
	}

	s.notifier.Publish(notify.Event{
		Table:       "charging_sessions",
		Action:      notify.ActionSessionStopped,
		EquipmentID: sealed.EquipmentID,
		LocationID:  sealed.LocationID,
		OccurredAt:  *sealed.EndTime,
	})

	logger.Info("Charging session stopped",
		zap.String("session_id", sealed.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.Duration("duration", sealed.Duration()),
		zap.String("event", "charging_stopped"),
	)

	return ToSessionResponse(sealed), nil
}

// GetOpenSession returns the open session for the equipment, or nil
// when the unit is idle.
func (s *Service) GetOpenSession(ctx context.Context, actorID, equipmentID uuid.UUID) (*SessionResponse, error) {
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

	open, err := s.sessions.GetOpenByEquipment(ctx, eq.ID)
	if err != nil {
		return nil, appErrors.Upstream("failed to get open session", err)
	}
	return ToSessionResponse(open), nil
}

// ListRecent returns the latest sessions for the operator history view,
// newest first. Not used for any invariant check.
func (s *Service) ListRecent(ctx context.Context, actorID, equipmentID uuid.UUID, limit int) ([]SessionResponse, error) {
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
	sessions, err := s.sessions.ListRecentByEquipment(ctx, eq.ID, limit)
	if err != nil {
		return nil, appErrors.Upstream("failed to list sessions", err)
	}
	return ToSessionResponses(sessions), nil
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
