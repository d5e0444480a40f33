package user

import "errors"

var (
	ErrProfileNotFound       = errors.New("profile not found")
	ErrProfileAlreadyExists  = errors.New("profile already exists")
	ErrInvalidRole           = errors.New("invalid role")
	ErrSuperAdminHasLocation = errors.New("super_admin profile must not have a location")
	ErrLocationRequired      = errors.New("admin and user profiles require a location")
)
