package equipment

import (
	"time"

	"github.com/google/uuid"
)

// Equipment represents one ground-support unit (battery-electric tug or
// belt-loader) assigned to a location.
type Equipment struct {
	ID                 uuid.UUID
	LocationID         uuid.UUID
	Code               string
	EquipmentType      string
	Status             Status
	LastInspectionDate *time.Time
	NextInspectionDate *time.Time
	Notes              string
	CreatedBy          uuid.UUID
	UpdatedBy          uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Status gates charging eligibility: only operational equipment may
// start a session.
type Status string

const (
	StatusOperational Status = "operational"
	StatusMaintenance Status = "maintenance"
	StatusFaulty      Status = "faulty"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOperational, StatusMaintenance, StatusFaulty:
		return true
	}
	return false
}

func (e *Equipment) IsOperational() bool {
	return e.Status == StatusOperational
}
