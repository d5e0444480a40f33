package chargingpoint

import (
	"time"

	"github.com/google/uuid"
)

// ChargingPoint is an advisory label for the physical point a session
// used, not a lockable resource. Multiple open sessions may reference
// the same point; the open-session invariant lives on the equipment.
type ChargingPoint struct {
	ID         uuid.UUID
	Name       string
	LocationID uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
