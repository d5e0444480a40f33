package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainUser "gse-tracker/internal/domain/user"
	"gse-tracker/internal/infrastructure/database/postgres"
	"gse-tracker/internal/testutil"
	appErrors "gse-tracker/pkg/errors"
	"gse-tracker/pkg/utils"
)

const testSecret = "test-secret"

func newTestService(t *testing.T, db *postgres.DB) *Service {
	t.Helper()
	return NewService(postgres.NewUserRepository(db), testSecret, 1, 24)
}

func TestLogin(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "SYD")
	operator := testutil.SeedUser(t, db, "op@example.com", domainUser.RoleUser, &loc.ID, true, false)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(ctx, &LoginRequest{Email: "op@example.com", Password: "Sekret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, operator.ID, resp.Profile.ID)

		claims, err := utils.ValidateToken(resp.AccessToken, testSecret)
		require.NoError(t, err)
		assert.Equal(t, operator.ID, claims.UserID)
	})

	t.Run("email is normalized", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{Email: "  OP@Example.com ", Password: "Sekret123"})
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{Email: "op@example.com", Password: "Wrong123"})
		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIALS", appErrors.CodeOf(err))
	})

	t.Run("deactivated account indistinguishable from bad password", func(t *testing.T) {
		users := postgres.NewUserRepository(db)
		require.NoError(t, users.SetActive(ctx, operator.ID, false))
		defer func() { _ = users.SetActive(ctx, operator.ID, true) }()

		_, err := svc.Login(ctx, &LoginRequest{Email: "op@example.com", Password: "Sekret123"})
		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIALS", appErrors.CodeOf(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{Email: "ghost@example.com", Password: "Sekret123"})
		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIALS", appErrors.CodeOf(err))
	})
}

func TestRefresh(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "MEL")
	operator := testutil.SeedUser(t, db, "op@example.com", domainUser.RoleUser, &loc.ID, true, false)

	login, err := svc.Login(ctx, &LoginRequest{Email: "op@example.com", Password: "Sekret123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, &RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := svc.Refresh(ctx, &RefreshRequest{RefreshToken: "not-a-token"})
		require.Error(t, err)
		assert.Equal(t, "INVALID_TOKEN", appErrors.CodeOf(err))
	})

	t.Run("deactivated account cannot refresh", func(t *testing.T) {
		users := postgres.NewUserRepository(db)
		require.NoError(t, users.SetActive(ctx, operator.ID, false))

		_, err := svc.Refresh(ctx, &RefreshRequest{RefreshToken: login.RefreshToken})
		require.Error(t, err)
		assert.Equal(t, "ACTOR_INACTIVE", appErrors.CodeOf(err))
	})
}

func TestCreateProfile(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "BNE")
	otherLoc := testutil.SeedLocation(t, db, "PER")
	admin := testutil.SeedUser(t, db, "admin@example.com", domainUser.RoleAdmin, &loc.ID, false, false)
	root := testutil.SeedUser(t, db, "root@example.com", domainUser.RoleSuperAdmin, nil, false, false)

	t.Run("admin creates operator at own location", func(t *testing.T) {
		created, err := svc.CreateProfile(ctx, admin.ID, &CreateProfileRequest{
			Email:          "New.Op@Example.com",
			FullName:       "New Operator",
			Password:       "Sekret123",
			Role:           "user",
			LocationID:     &loc.ID,
			ChargingAccess: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "new.op@example.com", created.Email)
		assert.True(t, created.IsActive)
		assert.True(t, created.ChargingAccess)
		assert.False(t, created.SwappingAccess)
	})

	t.Run("admin cannot create admins", func(t *testing.T) {
		_, err := svc.CreateProfile(ctx, admin.ID, &CreateProfileRequest{
			Email:      "peer@example.com",
			FullName:   "Peer Admin",
			Password:   "Sekret123",
			Role:       "admin",
			LocationID: &loc.ID,
		})
		require.Error(t, err)
		assert.Equal(t, "ROLE_SCOPE", appErrors.CodeOf(err))
	})

	t.Run("admin cannot create at another location", func(t *testing.T) {
		_, err := svc.CreateProfile(ctx, admin.ID, &CreateProfileRequest{
			Email:      "remote@example.com",
			FullName:   "Remote Operator",
			Password:   "Sekret123",
			Role:       "user",
			LocationID: &otherLoc.ID,
		})
		require.Error(t, err)
		assert.Equal(t, "LOCATION_SCOPE", appErrors.CodeOf(err))
	})

	t.Run("super admin profile must not carry a location", func(t *testing.T) {
		_, err := svc.CreateProfile(ctx, root.ID, &CreateProfileRequest{
			Email:      "root2@example.com",
			FullName:   "Second Root",
			Password:   "Sekret123",
			Role:       "super_admin",
			LocationID: &loc.ID,
		})
		require.Error(t, err)
		assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.CreateProfile(ctx, root.ID, &CreateProfileRequest{
			Email:      "admin@example.com",
			FullName:   "Duplicate",
			Password:   "Sekret123",
			Role:       "user",
			LocationID: &loc.ID,
		})
		require.Error(t, err)
		assert.Equal(t, "EMAIL_TAKEN", appErrors.CodeOf(err))
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := svc.CreateProfile(ctx, root.ID, &CreateProfileRequest{
			Email:      "weak@example.com",
			FullName:   "Weak Password",
			Password:   "password",
			Role:       "user",
			LocationID: &loc.ID,
		})
		require.Error(t, err)
		assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
	})
}

func TestUpdateProfileBoundaries(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "ADL")
	admin := testutil.SeedUser(t, db, "admin@example.com", domainUser.RoleAdmin, &loc.ID, false, false)
	operator := testutil.SeedUser(t, db, "op@example.com", domainUser.RoleUser, &loc.ID, false, false)
	root := testutil.SeedUser(t, db, "root@example.com", domainUser.RoleSuperAdmin, nil, false, false)

	t.Run("admin toggles operator access flags", func(t *testing.T) {
		updated, err := svc.UpdateProfile(ctx, admin.ID, operator.ID, &UpdateProfileRequest{
			ChargingAccess: utils.BoolPtr(true),
			SwappingAccess: utils.BoolPtr(true),
		})
		require.NoError(t, err)
		assert.True(t, updated.ChargingAccess)
		assert.True(t, updated.SwappingAccess)
	})

	t.Run("admin cannot promote", func(t *testing.T) {
		role := "admin"
		_, err := svc.UpdateProfile(ctx, admin.ID, operator.ID, &UpdateProfileRequest{Role: &role})
		require.Error(t, err)
		assert.Equal(t, "ROLE_SCOPE", appErrors.CodeOf(err))
	})

	t.Run("super admin promotes and location is dropped", func(t *testing.T) {
		role := "super_admin"
		promoted, err := svc.UpdateProfile(ctx, root.ID, operator.ID, &UpdateProfileRequest{Role: &role})
		require.NoError(t, err)
		assert.Equal(t, "super_admin", promoted.Role)
		assert.Nil(t, promoted.LocationID)
	})
}

func TestChangePassword(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "HBA")
	operator := testutil.SeedUser(t, db, "op@example.com", domainUser.RoleUser, &loc.ID, false, false)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, operator.ID, &ChangePasswordRequest{
			CurrentPassword: "Wrong123",
			NewPassword:     "NewSekret1",
		})
		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIALS", appErrors.CodeOf(err))
	})

	t.Run("success and old password stops working", func(t *testing.T) {
		err := svc.ChangePassword(ctx, operator.ID, &ChangePasswordRequest{
			CurrentPassword: "Sekret123",
			NewPassword:     "NewSekret1",
		})
		require.NoError(t, err)

		_, err = svc.Login(ctx, &LoginRequest{Email: "op@example.com", Password: "Sekret123"})
		require.Error(t, err)

		_, err = svc.Login(ctx, &LoginRequest{Email: "op@example.com", Password: "NewSekret1"})
		require.NoError(t, err)
	})
}
