package location

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for location repository operations
type Repository interface {
	Create(ctx context.Context, loc *Location) error
	GetByID(ctx context.Context, locationID uuid.UUID) (*Location, error)
	GetByCode(ctx context.Context, code string) (*Location, error)
	List(ctx context.Context) ([]*Location, error)
	SetActive(ctx context.Context, locationID uuid.UUID, active bool) error
	Update(ctx context.Context, loc *Location) error
}
