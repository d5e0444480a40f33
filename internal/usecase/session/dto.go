package session

import (
	"time"

	"github.com/google/uuid"

	domainSession "gse-tracker/internal/domain/session"
)

type StartChargingRequest struct {
	EquipmentID     uuid.UUID `json:"equipment_id" validate:"required"`
	ChargingPointID uuid.UUID `json:"charging_point_id"`
	MeterReading    string    `json:"meter_reading"`
}

type SessionResponse struct {
	ID                  uuid.UUID  `json:"id"`
	EquipmentID         uuid.UUID  `json:"equipment_id"`
	UserID              uuid.UUID  `json:"user_id"`
	LocationID          uuid.UUID  `json:"location_id"`
	ChargingPointID     *uuid.UUID `json:"charging_point_id"`
	MeterReadingAtStart *string    `json:"meter_reading_at_start"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             *time.Time `json:"end_time"`
	// DurationMinutes is a derived convenience, never authoritative
	// over the two timestamps. Nil while the session is open.
	DurationMinutes *int64    `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToSessionResponse(s *domainSession.ChargingSession) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:                  s.ID,
		EquipmentID:         s.EquipmentID,
		UserID:              s.UserID,
		LocationID:          s.LocationID,
		ChargingPointID:     s.ChargingPointID,
		MeterReadingAtStart: s.MeterReadingAtStart,
		StartTime:           s.StartTime,
		EndTime:             s.EndTime,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
	if s.EndTime != nil {
		minutes := int64(s.Duration().Minutes())
		resp.DurationMinutes = &minutes
	}
	return resp
}

func ToSessionResponses(sessions []*domainSession.ChargingSession) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		responses[i] = *ToSessionResponse(s)
	}
	return responses
}
