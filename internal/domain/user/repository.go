package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for profile repository operations
type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID) ([]*Profile, error)
	ListAll(ctx context.Context) ([]*Profile, error)
	Update(ctx context.Context, profile *Profile) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
}
