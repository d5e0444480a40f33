package location

import (
	"time"

	"github.com/google/uuid"

	domainLocation "gse-tracker/internal/domain/location"
)

type CreateLocationRequest struct {
	Code string `json:"code" validate:"required,min=2,max=10,uppercase"`
	Name string `json:"name" validate:"required,min=1,max=200"`
}

type LocationResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToLocationResponse(l *domainLocation.Location) *LocationResponse {
	if l == nil {
		return nil
	}
	return &LocationResponse{
		ID:        l.ID,
		Code:      l.Code,
		Name:      l.Name,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func ToLocationResponses(records []*domainLocation.Location) []LocationResponse {
	responses := make([]LocationResponse, len(records))
	for i, l := range records {
		responses[i] = *ToLocationResponse(l)
	}
	return responses
}
