package chargingpoint

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainPoint "gse-tracker/internal/domain/chargingpoint"
	domainUser "gse-tracker/internal/domain/user"
	"gse-tracker/internal/logger"
	"gse-tracker/internal/policy"
	appErrors "gse-tracker/pkg/errors"
	"gse-tracker/pkg/utils"
)

// Service manages the charging-point registry. Points are advisory
// labels only; nothing here locks a point while a session is open.
type Service struct {
	points domainPoint.Repository
	users  domainUser.Repository
}

func NewService(points domainPoint.Repository, users domainUser.Repository) *Service {
	return &Service{points: points, users: users}
}

func (s *Service) CreateChargingPoint(ctx context.Context, actorID uuid.UUID, req *CreateChargingPointRequest) (*ChargingPointResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("request", err.Error())
	}

	if err := policy.CanMutateChargingPoint(actor, req.LocationID); err != nil {
		return nil, err
	}

	point := &domainPoint.ChargingPoint{
		Name:       utils.SanitizeText(req.Name),
		LocationID: req.LocationID,
	}

	if err := s.points.Create(ctx, point); err != nil {
		return nil, appErrors.Upstream("failed to create charging point", err)
	}

	logger.Info("Charging point created",
		zap.String("charging_point_id", point.ID.String()),
		zap.String("name", point.Name),
		zap.String("event", "charging_point_created"),
	)

	return ToChargingPointResponse(point), nil
}

func (s *Service) ListByLocation(ctx context.Context, actorID, locationID uuid.UUID) ([]ChargingPointResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanReadLocation(actor, locationID); err != nil {
		return nil, err
	}

	points, err := s.points.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, appErrors.Upstream("failed to list charging points", err)
	}
	return ToChargingPointResponses(points), nil
}

func (s *Service) UpdateChargingPoint(ctx context.Context, actorID, pointID uuid.UUID, req *UpdateChargingPointRequest) (*ChargingPointResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("request", err.Error())
	}

	point, err := s.loadPoint(ctx, pointID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanMutateChargingPoint(actor, point.LocationID); err != nil {
		return nil, err
	}

	point.Name = utils.SanitizeText(req.Name)
	if err := s.points.Update(ctx, point); err != nil {
		if errors.Is(err, domainPoint.ErrChargingPointNotFound) {
			return nil, appErrors.NotFound("CHARGING_POINT_NOT_FOUND", "charging point not found")
		}
		return nil, appErrors.Upstream("failed to update charging point", err)
	}

	logger.Info("Charging point updated",
		zap.String("charging_point_id", point.ID.String()),
		zap.String("event", "charging_point_updated"),
	)

	return ToChargingPointResponse(point), nil
}

// DeleteChargingPoint removes the point. Historical sessions keep their
// point reference as a nullable column, so deletion never rewrites the
// session ledger.
func (s *Service) DeleteChargingPoint(ctx context.Context, actorID, pointID uuid.UUID) error {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return err
	}

	if err := policy.CanDeleteChargingPoint(actor); err != nil {
		return err
	}

	if err := s.points.Delete(ctx, pointID); err != nil {
		if errors.Is(err, domainPoint.ErrChargingPointNotFound) {
			return appErrors.NotFound("CHARGING_POINT_NOT_FOUND", "charging point not found")
		}
		return appErrors.Upstream("failed to delete charging point", err)
	}

	logger.Info("Charging point deleted",
		zap.String("charging_point_id", pointID.String()),
		zap.String("event", "charging_point_deleted"),
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

func (s *Service) loadPoint(ctx context.Context, pointID uuid.UUID) (*domainPoint.ChargingPoint, error) {
	point, err := s.points.GetByID(ctx, pointID)
	if err != nil {
		if errors.Is(err, domainPoint.ErrChargingPointNotFound) {
			return nil, appErrors.NotFound("CHARGING_POINT_NOT_FOUND", "charging point not found")
		}
		return nil, appErrors.Upstream("failed to load charging point", err)
	}
	return point, nil
}
