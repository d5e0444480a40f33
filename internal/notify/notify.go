// Package notify delivers change events for session and swap rows to
// observers watching an equipment unit. Delivery is fire-and-forget and
// at-least-once: payloads are hints, and observers re-fetch
// authoritative state rather than trusting them.
package notify

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionSessionStarted Action = "session_started"
	ActionSessionStopped Action = "session_stopped"
	ActionSwapRecorded   Action = "swap_recorded"
)

// Event carries just enough for an observer to know what to re-fetch.
type Event struct {
	Table       string    `json:"table"`
	Action      Action    `json:"action"`
	EquipmentID uuid.UUID `json:"equipment_id"`
	LocationID  uuid.UUID `json:"location_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher fans an event out to observers. Implementations must not
// block the calling operation.
type Publisher interface {
	Publish(event Event)
}

// Fanout publishes to every configured sink.
type Fanout []Publisher

func (f Fanout) Publish(event Event) {
	for _, p := range f {
		p.Publish(event)
	}
}

// Noop is used where notification is not wired, e.g. in tests that only
// exercise ledger semantics.
type Noop struct{}

func (Noop) Publish(Event) {}
