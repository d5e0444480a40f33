package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is a closed set; free-form role strings are rejected at the
// profile boundary.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// Profile represents a user account. Invariant: super_admin profiles
// have no location; admin and user profiles always have one.
type Profile struct {
	ID             uuid.UUID
	Email          string
	FullName       string
	PasswordHashed string
	Role           Role
	LocationID     *uuid.UUID
	IsActive       bool
	ChargingAccess bool
	SwappingAccess bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate enforces the role/location invariant.
func (p *Profile) Validate() error {
	if !p.Role.Valid() {
		return ErrInvalidRole
	}
	if p.Role == RoleSuperAdmin && p.LocationID != nil {
		return ErrSuperAdminHasLocation
	}
	if p.Role != RoleSuperAdmin && p.LocationID == nil {
		return ErrLocationRequired
	}
	return nil
}

// SameLocation reports whether the profile is assigned to locationID.
// Always false for profiles without a location.
func (p *Profile) SameLocation(locationID uuid.UUID) bool {
	return p.LocationID != nil && *p.LocationID == locationID
}
