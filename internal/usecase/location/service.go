package location

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainLocation "gse-tracker/internal/domain/location"
	domainUser "gse-tracker/internal/domain/user"
	"gse-tracker/internal/logger"
	"gse-tracker/internal/policy"
	appErrors "gse-tracker/pkg/errors"
	"gse-tracker/pkg/utils"
)

// Service manages the station directory. Locations are created and
// toggled by super admins only; they are never deleted, deactivation is
// the retirement path.
type Service struct {
	locations domainLocation.Repository
	users     domainUser.Repository
}

func NewService(locations domainLocation.Repository, users domainUser.Repository) *Service {
	return &Service{locations: locations, users: users}
}

func (s *Service) CreateLocation(ctx context.Context, actorID uuid.UUID, req *CreateLocationRequest) (*LocationResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanManageLocations(actor); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("request", err.Error())
	}

	loc := &domainLocation.Location{
		Code:     req.Code,
		Name:     utils.SanitizeText(req.Name),
		IsActive: true,
	}

	if err := s.locations.Create(ctx, loc); err != nil {
		if errors.Is(err, domainLocation.ErrLocationAlreadyExists) {
			return nil, appErrors.Conflict("LOCATION_CODE_TAKEN", "location code already exists")
		}
		return nil, appErrors.Upstream("failed to create location", err)
	}

	logger.Info("Location created",
		zap.String("location_id", loc.ID.String()),
		zap.String("code", loc.Code),
		zap.String("event", "location_created"),
	)

	return ToLocationResponse(loc), nil
}

func (s *Service) GetLocation(ctx context.Context, actorID, locationID uuid.UUID) (*LocationResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanReadLocation(actor, locationID); err != nil {
		return nil, err
	}

	loc, err := s.locations.GetByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, domainLocation.ErrLocationNotFound) {
			return nil, appErrors.NotFound("LOCATION_NOT_FOUND", "location not found")
		}
		return nil, appErrors.Upstream("failed to load location", err)
	}
	return ToLocationResponse(loc), nil
}

// ListLocations returns the full directory for super admins and the
// actor's own station for everyone else.
func (s *Service) ListLocations(ctx context.Context, actorID uuid.UUID) ([]LocationResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsActive {
		return nil, appErrors.PermissionDenied(policy.RuleActorInactive, "account is deactivated")
	}

	if actor.Role != domainUser.RoleSuperAdmin {
		if actor.LocationID == nil {
			return []LocationResponse{}, nil
		}
		loc, err := s.locations.GetByID(ctx, *actor.LocationID)
		if err != nil {
			return nil, appErrors.Upstream("failed to load location", err)
		}
		return []LocationResponse{*ToLocationResponse(loc)}, nil
	}

	records, err := s.locations.List(ctx)
	if err != nil {
		return nil, appErrors.Upstream("failed to list locations", err)
	}
	return ToLocationResponses(records), nil
}

func (s *Service) SetActive(ctx context.Context, actorID, locationID uuid.UUID, active bool) (*LocationResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanManageLocations(actor); err != nil {
		return nil, err
	}

	if err := s.locations.SetActive(ctx, locationID, active); err != nil {
		if errors.Is(err, domainLocation.ErrLocationNotFound) {
			return nil, appErrors.NotFound("LOCATION_NOT_FOUND", "location not found")
		}
		return nil, appErrors.Upstream("failed to update location", err)
	}

	loc, err := s.locations.GetByID(ctx, locationID)
	if err != nil {
		return nil, appErrors.Upstream("failed to reload location", err)
	}

	logger.Info("Location active flag changed",
		zap.String("location_id", locationID.String()),
		zap.Bool("active", active),
		zap.String("event", "location_toggled"),
	)

	return ToLocationResponse(loc), nil
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
