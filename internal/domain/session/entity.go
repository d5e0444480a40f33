package session

import (
	"time"

	"github.com/google/uuid"
)

// ChargingSession is one row of the per-equipment session ledger.
// Invariant: at most one session per equipment has EndTime == nil at
// any time; the open row is the "Charging" state token.
type ChargingSession struct {
	ID                  uuid.UUID
	EquipmentID         uuid.UUID
	UserID              uuid.UUID
	LocationID          uuid.UUID
	ChargingPointID     *uuid.UUID
	MeterReadingAtStart *string
	StartTime           time.Time
	EndTime             *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (s *ChargingSession) IsOpen() bool {
	return s.EndTime == nil
}

// Duration is derived from the two timestamps and is never
// authoritative over them. Zero while the session is open.
func (s *ChargingSession) Duration() time.Duration {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}
