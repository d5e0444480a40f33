package chargingpoint

import (
	"time"

	"github.com/google/uuid"

	domainPoint "gse-tracker/internal/domain/chargingpoint"
)

type CreateChargingPointRequest struct {
	Name       string    `json:"name" validate:"required,min=1,max=100"`
	LocationID uuid.UUID `json:"location_id" validate:"required"`
}

type UpdateChargingPointRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type ChargingPointResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	LocationID uuid.UUID `json:"location_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToChargingPointResponse(p *domainPoint.ChargingPoint) *ChargingPointResponse {
	if p == nil {
		return nil
	}
	return &ChargingPointResponse{
		ID:         p.ID,
		Name:       p.Name,
		LocationID: p.LocationID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func ToChargingPointResponses(points []*domainPoint.ChargingPoint) []ChargingPointResponse {
	responses := make([]ChargingPointResponse, len(points))
	for i, p := range points {
		responses[i] = *ToChargingPointResponse(p)
	}
	return responses
}
