package equipment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for equipment repository operations
type Repository interface {
	Create(ctx context.Context, eq *Equipment) error
	GetByID(ctx context.Context, equipmentID uuid.UUID) (*Equipment, error)
	// GetByCode resolves the human-visible code within one location.
	GetByCode(ctx context.Context, locationID uuid.UUID, code string) (*Equipment, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID) ([]*Equipment, error)
	Update(ctx context.Context, eq *Equipment) error
	Delete(ctx context.Context, equipmentID uuid.UUID) error
}
