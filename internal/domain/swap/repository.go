package swap

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for the append-only swap ledger.
type Repository interface {
	Insert(ctx context.Context, event *Event) error
	// CountByEquipment recomputes the total on demand; correctness under
	// concurrent inserts is trivial for a pure count.
	CountByEquipment(ctx context.Context, equipmentID uuid.UUID) (int64, error)
	ListRecentByEquipment(ctx context.Context, equipmentID uuid.UUID, limit int) ([]*Event, error)
}
