package equipment

import (
	"time"

	"github.com/google/uuid"

	domainEquipment "gse-tracker/internal/domain/equipment"
)

type CreateEquipmentRequest struct {
	LocationID    uuid.UUID  `json:"location_id" validate:"required"`
	Code          string     `json:"code" validate:"required,min=2,max=50"`
	EquipmentType string     `json:"equipment_type" validate:"required,max=100"`
	Status        *string    `json:"status" validate:"omitempty,equipment_status"`
	Notes         string     `json:"notes" validate:"max=2000"`
	LastInspected *time.Time `json:"last_inspection_date"`
	NextInspected *time.Time `json:"next_inspection_date"`
}

type UpdateEquipmentRequest struct {
	EquipmentType *string    `json:"equipment_type" validate:"omitempty,max=100"`
	Status        *string    `json:"status" validate:"omitempty,equipment_status"`
	Notes         *string    `json:"notes" validate:"omitempty,max=2000"`
	LastInspected *time.Time `json:"last_inspection_date"`
	NextInspected *time.Time `json:"next_inspection_date"`
}

type EquipmentResponse struct {
	ID                 uuid.UUID  `json:"id"`
	LocationID         uuid.UUID  `json:"location_id"`
	Code               string     `json:"code"`
	EquipmentType      string     `json:"equipment_type"`
	Status             string     `json:"status"`
	LastInspectionDate *time.Time `json:"last_inspection_date"`
	NextInspectionDate *time.Time `json:"next_inspection_date"`
	Notes              string     `json:"notes"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func ToEquipmentResponse(e *domainEquipment.Equipment) *EquipmentResponse {
	if e == nil {
		return nil
	}
	return &EquipmentResponse{
		ID:                 e.ID,
		LocationID:         e.LocationID,
		Code:               e.Code,
		EquipmentType:      e.EquipmentType,
		Status:             string(e.Status),
		LastInspectionDate: e.LastInspectionDate,
		NextInspectionDate: e.NextInspectionDate,
		Notes:              e.Notes,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func ToEquipmentResponses(records []*domainEquipment.Equipment) []EquipmentResponse {
	responses := make([]EquipmentResponse, len(records))
	for i, e := range records {
		responses[i] = *ToEquipmentResponse(e)
	}
	return responses
}
