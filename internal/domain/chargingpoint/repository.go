package chargingpoint

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for charging-point repository operations
type Repository interface {
	Create(ctx context.Context, point *ChargingPoint) error
	GetByID(ctx context.Context, pointID uuid.UUID) (*ChargingPoint, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID) ([]*ChargingPoint, error)
	Update(ctx context.Context, point *ChargingPoint) error
	Delete(ctx context.Context, pointID uuid.UUID) error
}
