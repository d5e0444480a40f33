package equipment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainEquipment "gse-tracker/internal/domain/equipment"
	domainUser "gse-tracker/internal/domain/user"
	"gse-tracker/internal/logger"
	"gse-tracker/internal/policy"
	appErrors "gse-tracker/pkg/errors"
	"gse-tracker/pkg/utils"
)

// Service implements the equipment directory use cases: admin CRUD on
// equipment records and the operator-facing code lookup.
type Service struct {
	equipment domainEquipment.Repository
	users     domainUser.Repository
}

func NewService(equipment domainEquipment.Repository, users domainUser.Repository) *Service {
	return &Service{equipment: equipment, users: users}
}

func (s *Service) CreateEquipment(ctx context.Context, actorID uuid.UUID, req *CreateEquipmentRequest) (*EquipmentResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("request", err.Error())
	}

	if err := policy.CanMutateEquipment(actor, req.LocationID); err != nil {
		return nil, err
	}

	status := domainEquipment.StatusOperational
	if req.Status != nil {
		status = domainEquipment.Status(*req.Status)
	}

	eq := &domainEquipment.Equipment{
		LocationID:         req.LocationID,
		Code:               req.Code,
		EquipmentType:      req.EquipmentType,
		Status:             status,
		LastInspectionDate: req.LastInspected,
		NextInspectionDate: req.NextInspected,
		Notes:              utils.SanitizeText(req.Notes),
		CreatedBy:          actor.ID,
		UpdatedBy:          actor.ID,
	}

	if err := s.equipment.Create(ctx, eq); err != nil {
		if errors.Is(err, domainEquipment.ErrEquipmentAlreadyExists) {
			return nil, appErrors.Conflict("EQUIPMENT_CODE_TAKEN", "equipment code already exists at this location")
		}
		return nil, appErrors.Upstream("failed to create equipment", err)
	}

	logger.Info("Equipment created",
		zap.String("equipment_id", eq.ID.String()),
		zap.String("code", eq.Code),
		zap.String("event", "equipment_created"),
	)

	return ToEquipmentResponse(eq), nil
}

func (s *Service) GetEquipment(ctx context.Context, actorID, equipmentID uuid.UUID) (*EquipmentResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	eq, err := s.loadEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanReadLocation(actor, eq.LocationID); err != nil {
		return nil, err
	}
	return ToEquipmentResponse(eq), nil
}

// ListByLocation lists every unit at the location, regardless of
// status; the availability gate applies only to the start-flow resolve.
func (s *Service) ListByLocation(ctx context.Context, actorID, locationID uuid.UUID) ([]EquipmentResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanReadLocation(actor, locationID); err != nil {
		return nil, err
	}

	records, err := s.equipment.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, appErrors.Upstream("failed to list equipment", err)
	}
	return ToEquipmentResponses(records), nil
}

// ResolveByCode resolves an equipment code to its record for the
// operator start-flow. Units under maintenance or faulty are not
// resolvable as charging targets even when the code matches; this is a
// deliberate availability gate, not a filter.
func (s *Service) ResolveByCode(ctx context.Context, actorID, locationID uuid.UUID, code string) (*EquipmentResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanReadLocation(actor, locationID); err != nil {
		return nil, err
	}

	eq, err := s.equipment.GetByCode(ctx, locationID, code)
	if err != nil {
		if errors.Is(err, domainEquipment.ErrEquipmentNotFound) {
			return nil, appErrors.NotFound("EQUIPMENT_NOT_FOUND", "equipment not found")
		}
		return nil, appErrors.Upstream("failed to resolve equipment", err)
	}
	if !eq.IsOperational() {
		return nil, appErrors.NotFound("EQUIPMENT_NOT_FOUND", "equipment not found")
	}
	return ToEquipmentResponse(eq), nil
}

func (s *Service) UpdateEquipment(ctx context.Context, actorID, equipmentID uuid.UUID, req *UpdateEquipmentRequest) (*EquipmentResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("request", err.Error())
	}

	eq, err := s.loadEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanMutateEquipment(actor, eq.LocationID); err != nil {
		return nil, err
	}

	if req.EquipmentType != nil {
		eq.EquipmentType = *req.EquipmentType
	}
	if req.Status != nil {
		eq.Status = domainEquipment.Status(*req.Status)
	}
	if req.Notes != nil {
		eq.Notes = utils.SanitizeText(*req.Notes)
	}
	if req.LastInspected != nil {
		eq.LastInspectionDate = req.LastInspected
	}
	if req.NextInspected != nil {
		eq.NextInspectionDate = req.NextInspected
	}
	eq.UpdatedBy = actor.ID

	if err := s.equipment.Update(ctx, eq); err != nil {
		if errors.Is(err, domainEquipment.ErrEquipmentNotFound) {
			return nil, appErrors.NotFound("EQUIPMENT_NOT_FOUND", "equipment not found")
		}
		return nil, appErrors.Upstream("failed to update equipment", err)
	}

	logger.Info("Equipment updated",
		zap.String("equipment_id", eq.ID.String()),
		zap.String("code", eq.Code),
		zap.String("event", "equipment_updated"),
	)

	return ToEquipmentResponse(eq), nil
}

func (s *Service) DeleteEquipment(ctx context.Context, actorID, equipmentID uuid.UUID) error {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return err
	}

	if err := policy.CanDeleteEquipment(actor); err != nil {
		return err
	}

	if err := s.equipment.Delete(ctx, equipmentID); err != nil {
		if errors.Is(err, domainEquipment.ErrEquipmentNotFound) {
			return appErrors.NotFound("EQUIPMENT_NOT_FOUND", "equipment not found")
		}
		return appErrors.Upstream("failed to delete equipment", err)
	}

	logger.Info("Equipment deleted",
		zap.String("equipment_id", equipmentID.String()),
		zap.String("event", "equipment_deleted"),
	)
	return nil
}

func (s *Service) loadActor(ctx context.Context, actorID uuid.UUID) (*domainUser.Profile, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domainUser.ErrProfileNotFound) {
			return nil, appErrors.NotFound("PROFILE_NOT_FOUND", "acting profile not found")
		}
		return nil, appErrors.Upstream("failed to load acting profile", err)
	}
	return actor, nil
}

func (s *Service) loadEquipment(ctx context.Context, equipmentID uuid.UUID) (*domainEquipment.Equipment, error) {
	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, domainEquipment.ErrEquipmentNotFound) {
			return nil, appErrors.NotFound("EQUIPMENT_NOT_FOUND", "equipment not found")
		}
		return nil, appErrors.Upstream("failed to load equipment", err)
	}
	return eq, nil
}
