package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for the session ledger. Sessions are
// appended on start and sealed on stop, never deleted.
type Repository interface {
	// Insert appends a new open session. Returns ErrAlreadyCharging if
	// the storage-level uniqueness constraint on open sessions rejects
	// the row.
	Insert(ctx context.Context, s *ChargingSession) error
	GetByID(ctx context.Context, sessionID uuid.UUID) (*ChargingSession, error)
	// GetOpenByEquipment returns the open session for the equipment, or
	// nil when the unit is idle. Most-recent start first if the
	// invariant was ever violated by a race.
	GetOpenByEquipment(ctx context.Context, equipmentID uuid.UUID) (*ChargingSession, error)
	// Seal sets EndTime on the exact row identified by sessionID,
	// guarded by end_time IS NULL. Returns ErrSessionClosed when the
	// row was already sealed.
	Seal(ctx context.Context, sessionID uuid.UUID, endTime time.Time) error
	ListRecentByEquipment(ctx context.Context, equipmentID uuid.UUID, limit int) ([]*ChargingSession, error)
}
