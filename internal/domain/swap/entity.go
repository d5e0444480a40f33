package swap

import (
	"time"

	"github.com/google/uuid"
)

// Event is one battery replacement, recorded append-only. Count is
// always 1: the log doubles as an audit trail, so the total for an
// equipment unit is a row count rather than a mutable counter.
type Event struct {
	ID            int64
	UserID        uuid.UUID
	LocationID    uuid.UUID
	EquipmentID   uuid.UUID
	Count         int
	MeterReading  *string
	BatteryNumber *string
	CreatedAt     time.Time
}
