package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainUser "gse-tracker/internal/domain/user"
	"gse-tracker/internal/logger"
	"gse-tracker/internal/policy"
	appErrors "gse-tracker/pkg/errors"
	"gse-tracker/pkg/utils"
)

// Service owns authentication and profile administration. Token claims
// are informational; every policy decision reloads the profile row so a
// deactivation or permission change applies on the next request, not at
// token expiry.
type Service struct {
	users              domainUser.Repository
	jwtSecret          string
	expiryHours        int
	refreshExpiryHours int
}

func NewService(users domainUser.Repository, jwtSecret string, expiryHours, refreshExpiryHours int) *Service {
	return &Service{
		users:              users,
		jwtSecret:          jwtSecret,
		expiryHours:        expiryHours,
		refreshExpiryHours: refreshExpiryHours,
	}
}

// Login verifies credentials and issues a token pair. Deactivated
// accounts fail with the same error as bad credentials so the response
// does not leak account state.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("request", err.Error())
	}

	email := utils.SanitizeEmail(req.Email)
	profile, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrProfileNotFound) {
			return nil, appErrors.PermissionDenied("INVALID_CREDENTIALS", "invalid email or password")
		}
		return nil, appErrors.Upstream("failed to load profile", err)
	}

	if !profile.IsActive || !utils.CheckPassword(profile.PasswordHashed, req.Password) {
		return nil, appErrors.PermissionDenied("INVALID_CREDENTIALS", "invalid email or password")
	}

	pair, err := utils.GenerateTokenPair(profile.ID, profile.Email, string(profile.Role),
		s.jwtSecret, s.expiryHours, s.refreshExpiryHours)
	if err != nil {
		return nil, appErrors.Upstream("failed to issue tokens", err)
	}

	logger.Info("User logged in",
		zap.String("user_id", profile.ID.String()),
		zap.String("event", "login"),
	)

	return &LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		Profile:      ToProfileResponse(profile),
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair. Refresh is
// stateless: validity comes from the signature and expiry alone, and
// the profile is reloaded so a deactivated account cannot refresh.
func (s *Service) Refresh(ctx context.Context, req *RefreshRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("request", err.Error())
	}

	claims, err := utils.ValidateToken(req.RefreshToken, s.jwtSecret)
	if err != nil {
		return nil, appErrors.PermissionDenied("INVALID_TOKEN", "invalid or expired token")
	}

	profile, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainUser.ErrProfileNotFound) {
			return nil, appErrors.PermissionDenied("INVALID_TOKEN", "invalid or expired token")
		}
		return nil, appErrors.Upstream("failed to load profile", err)
	}
	if !profile.IsActive {
		return nil, appErrors.PermissionDenied(policy.RuleActorInactive, "account is deactivated")
	}

	pair, err := utils.GenerateTokenPair(profile.ID, profile.Email, string(profile.Role),
		s.jwtSecret, s.expiryHours, s.refreshExpiryHours)
	if err != nil {
		return nil, appErrors.Upstream("failed to issue tokens", err)
	}

	return &LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		Profile:      ToProfileResponse(profile),
	}, nil
}

func (s *Service) CreateProfile(ctx context.Context, actorID uuid.UUID, req *CreateProfileRequest) (*ProfileResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("request", err.Error())
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.Validation("password", err.Error())
	}

	role := domainUser.Role(req.Role)
	if err := policy.CanCreateProfile(actor, role, req.LocationID); err != nil {
		return nil, err
	}

	profile := &domainUser.Profile{
		Email:          utils.SanitizeEmail(req.Email),
		FullName:       utils.SanitizeText(req.FullName),
		Role:           role,
		LocationID:     req.LocationID,
		IsActive:       true,
		ChargingAccess: req.ChargingAccess,
		SwappingAccess: req.SwappingAccess,
	}
	if err := profile.Validate(); err != nil {
		return nil, appErrors.Validation("profile", err.Error())
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.Upstream("failed to hash password", err)
	}
	profile.PasswordHashed = hashed

	if err := s.users.Create(ctx, profile); err != nil {
		if errors.Is(err, domainUser.ErrProfileAlreadyExists) {
			return nil, appErrors.Conflict("EMAIL_TAKEN", "email already registered")
		}
		return nil, appErrors.Upstream("failed to create profile", err)
	}

	logger.Info("Profile created",
		zap.String("user_id", profile.ID.String()),
		zap.String("role", string(profile.Role)),
		zap.String("event", "profile_created"),
	)

	return ToProfileResponse(profile), nil
}

func (s *Service) UpdateProfile(ctx context.Context, actorID, targetID uuid.UUID, req *UpdateProfileRequest) (*ProfileResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("request", err.Error())
	}

	target, err := s.loadTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}

	roleChanged := req.Role != nil && domainUser.Role(*req.Role) != target.Role
	locationChanged := req.LocationID != nil &&
		(target.LocationID == nil || *req.LocationID != *target.LocationID)

	if err := policy.CanEditProfile(actor, target, roleChanged, locationChanged); err != nil {
		return nil, err
	}

	if req.FullName != nil {
		target.FullName = utils.SanitizeText(*req.FullName)
	}
	if req.Role != nil {
		target.Role = domainUser.Role(*req.Role)
	}
	if req.LocationID != nil {
		target.LocationID = req.LocationID
	}
	if target.Role == domainUser.RoleSuperAdmin {
		target.LocationID = nil
	}
	if req.IsActive != nil {
		target.IsActive = *req.IsActive
	}
	if req.ChargingAccess != nil {
		target.ChargingAccess = *req.ChargingAccess
	}
	if req.SwappingAccess != nil {
		target.SwappingAccess = *req.SwappingAccess
	}

	if err := target.Validate(); err != nil {
		return nil, appErrors.Validation("profile", err.Error())
	}

	if err := s.users.Update(ctx, target); err != nil {
		if errors.Is(err, domainUser.ErrProfileNotFound) {
			return nil, appErrors.NotFound("PROFILE_NOT_FOUND", "profile not found")
		}
		return nil, appErrors.Upstream("failed to update profile", err)
	}

	logger.Info("Profile updated",
		zap.String("user_id", target.ID.String()),
		zap.String("event", "profile_updated"),
	)

	return ToProfileResponse(target), nil
}

// ChangePassword is self-service only; admins reset other accounts by
// deactivating and recreating them.
func (s *Service) ChangePassword(ctx context.Context, actorID uuid.UUID, req *ChangePasswordRequest) error {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.Validation("request", err.Error())
	}

	if !utils.CheckPassword(actor.PasswordHashed, req.CurrentPassword) {
		return appErrors.PermissionDenied("INVALID_CREDENTIALS", "current password is incorrect")
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.Validation("password", err.Error())
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return appErrors.Upstream("failed to hash password", err)
	}

	if err := s.users.UpdatePassword(ctx, actor.ID, hashed); err != nil {
		return appErrors.Upstream("failed to update password", err)
	}

	logger.Info("Password changed",
		zap.String("user_id", actor.ID.String()),
		zap.String("event", "password_changed"),
	)
	return nil
}

func (s *Service) GetProfile(ctx context.Context, actorID, targetID uuid.UUID) (*ProfileResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	target, err := s.loadTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanReadProfile(actor, target); err != nil {
		return nil, err
	}
	return ToProfileResponse(target), nil
}

// ListProfiles returns all accounts for super admins and the accounts
// at the actor's own location for admins; operators are denied.
func (s *Service) ListProfiles(ctx context.Context, actorID uuid.UUID) ([]ProfileResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsActive {
		return nil, appErrors.PermissionDenied(policy.RuleActorInactive, "account is deactivated")
	}

	switch actor.Role {
	case domainUser.RoleSuperAdmin:
		profiles, err := s.users.ListAll(ctx)
		if err != nil {
			return nil, appErrors.Upstream("failed to list profiles", err)
		}
		return ToProfileResponses(profiles), nil
	case domainUser.RoleAdmin:
		if actor.LocationID == nil {
			return []ProfileResponse{}, nil
		}
		profiles, err := s.users.ListByLocation(ctx, *actor.LocationID)
		if err != nil {
			return nil, appErrors.Upstream("failed to list profiles", err)
		}
		return ToProfileResponses(profiles), nil
	default:
		return nil, appErrors.PermissionDenied(policy.RuleProfileScope, "operators may only read their own profile")
	}
}

func (s *Service) SetActive(ctx context.Context, actorID, targetID uuid.UUID, active bool) (*ProfileResponse, error) {
	isActive := active
	return s.UpdateProfile(ctx, actorID, targetID, &UpdateProfileRequest{IsActive: &isActive})
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

func (s *Service) loadTarget(ctx context.Context, targetID uuid.UUID) (*domainUser.Profile, error) {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, domainUser.ErrProfileNotFound) {
			return nil, appErrors.NotFound("PROFILE_NOT_FOUND", "profile not found")
		}
		return nil, appErrors.Upstream("failed to load profile", err)
	}
	return target, nil
}
