package user

import (
	"time"

	"github.com/google/uuid"

	domainUser "gse-tracker/internal/domain/user"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	ExpiresAt    int64            `json:"expires_at"`
	Profile      *ProfileResponse `json:"profile"`
}

type CreateProfileRequest struct {
	Email          string     `json:"email" validate:"required,email"`
	FullName       string     `json:"full_name" validate:"required,min=1,max=200"`
	Password       string     `json:"password" validate:"required"`
	Role           string     `json:"role" validate:"required,user_role"`
	LocationID     *uuid.UUID `json:"location_id"`
	ChargingAccess bool       `json:"charging_access"`
	SwappingAccess bool       `json:"swapping_access"`
}

type UpdateProfileRequest struct {
	FullName       *string    `json:"full_name" validate:"omitempty,min=1,max=200"`
	Role           *string    `json:"role" validate:"omitempty,user_role"`
	LocationID     *uuid.UUID `json:"location_id"`
	IsActive       *bool      `json:"is_active"`
	ChargingAccess *bool      `json:"charging_access"`
	SwappingAccess *bool      `json:"swapping_access"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

type ProfileResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	Role           string     `json:"role"`
	LocationID     *uuid.UUID `json:"location_id"`
	IsActive       bool       `json:"is_active"`
	ChargingAccess bool       `json:"charging_access"`
	SwappingAccess bool       `json:"swapping_access"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func ToProfileResponse(p *domainUser.Profile) *ProfileResponse {
	if p == nil {
		return nil
	}
	return &ProfileResponse{
		ID:             p.ID,
		Email:          p.Email,
		FullName:       p.FullName,
		Role:           string(p.Role),
		LocationID:     p.LocationID,
		IsActive:       p.IsActive,
		ChargingAccess: p.ChargingAccess,
		SwappingAccess: p.SwappingAccess,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToProfileResponses(profiles []*domainUser.Profile) []ProfileResponse {
	responses := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		responses[i] = *ToProfileResponse(p)
	}
	return responses
}
