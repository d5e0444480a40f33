package swap

import (
	"time"

	"github.com/google/uuid"

	domainSwap "gse-tracker/internal/domain/swap"
)

type RecordSwapRequest struct {
	EquipmentID   uuid.UUID `json:"equipment_id" validate:"required"`
	MeterReading  string    `json:"meter_reading"`
	BatteryNumber *string   `json:"battery_number" validate:"omitempty,max=100"`
}

type SwapResponse struct {
	ID            int64     `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	LocationID    uuid.UUID `json:"location_id"`
	EquipmentID   uuid.UUID `json:"equipment_id"`
	Count         int       `json:"count"`
	MeterReading  *string   `json:"meter_reading"`
	BatteryNumber *string   `json:"battery_number"`
	CreatedAt     time.Time `json:"created_at"`
}

type SwapTotalResponse struct {
	EquipmentID uuid.UUID `json:"equipment_id"`
	Total       int64     `json:"total"`
}

func ToSwapResponse(e *domainSwap.Event) *SwapResponse {
	if e == nil {
		return nil
	}
	return &SwapResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		LocationID:    e.LocationID,
		EquipmentID:   e.EquipmentID,
		Count:         e.Count,
		MeterReading:  e.MeterReading,
		BatteryNumber: e.BatteryNumber,
		CreatedAt:     e.CreatedAt,
	}
}

func ToSwapResponses(events []*domainSwap.Event) []SwapResponse {
	responses := make([]SwapResponse, len(events))
	for i, e := range events {
		responses[i] = *ToSwapResponse(e)
	}
	return responses
}
