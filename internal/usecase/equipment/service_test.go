package equipment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainEquipment "gse-tracker/internal/domain/equipment"
	domainUser "gse-tracker/internal/domain/user"
	"gse-tracker/internal/infrastructure/database/postgres"
	"gse-tracker/internal/testutil"
	appErrors "gse-tracker/pkg/errors"
	"gse-tracker/pkg/utils"
)

func newTestService(t *testing.T, db *postgres.DB) *Service {
	t.Helper()
	return NewService(
		postgres.NewEquipmentRepository(db),
		postgres.NewUserRepository(db),
	)
}

func TestResolveByCodeAvailabilityGate(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "SYD")
	operator := testutil.SeedUser(t, db, "op@example.com", domainUser.RoleUser, &loc.ID, true, false)
	testutil.SeedEquipment(t, db, loc.ID, "GPU-17", domainEquipment.StatusOperational)
	testutil.SeedEquipment(t, db, loc.ID, "GPU-18", domainEquipment.StatusMaintenance)
	testutil.SeedEquipment(t, db, loc.ID, "GPU-19", domainEquipment.StatusFaulty)

	resolved, err := svc.ResolveByCode(ctx, operator.ID, loc.ID, "GPU-17")
	require.NoError(t, err)
	assert.Equal(t, "GPU-17", resolved.Code)

	// Units that exist but are not operational resolve the same as
	// missing ones.
	for _, code := range []string{"GPU-18", "GPU-19", "GPU-99"} {
		_, err := svc.ResolveByCode(ctx, operator.ID, loc.ID, code)
		require.Error(t, err, "code %s", code)
		assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound), "code %s", code)
		assert.Equal(t, "EQUIPMENT_NOT_FOUND", appErrors.CodeOf(err), "code %s", code)
	}
}

func TestCodeScopedPerLocation(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	locA := testutil.SeedLocation(t, db, "SYD")
	locB := testutil.SeedLocation(t, db, "MEL")
	root := testutil.SeedUser(t, db, "root@example.com", domainUser.RoleSuperAdmin, nil, false, false)

	// Same code at two locations is fine.
	a := testutil.SeedEquipment(t, db, locA.ID, "GPU-01", domainEquipment.StatusOperational)
	b := testutil.SeedEquipment(t, db, locB.ID, "GPU-01", domainEquipment.StatusOperational)
	assert.NotEqual(t, a.ID, b.ID)

	// The same code twice at one location is not.
	_, err := svc.CreateEquipment(ctx, root.ID, &CreateEquipmentRequest{
		LocationID:    locA.ID,
		Code:          "GPU-01",
		EquipmentType: "ground power unit",
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindConflict))
	assert.Equal(t, "EQUIPMENT_CODE_TAKEN", appErrors.CodeOf(err))

	resolved, err := svc.ResolveByCode(ctx, root.ID, locB.ID, "GPU-01")
	require.NoError(t, err)
	assert.Equal(t, b.ID, resolved.ID)
}

func TestEquipmentWriteAccess(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "BNE")
	otherLoc := testutil.SeedLocation(t, db, "PER")
	operator := testutil.SeedUser(t, db, "op@example.com", domainUser.RoleUser, &loc.ID, true, true)
	admin := testutil.SeedUser(t, db, "admin@example.com", domainUser.RoleAdmin, &loc.ID, false, false)
	root := testutil.SeedUser(t, db, "root@example.com", domainUser.RoleSuperAdmin, nil, false, false)

	t.Run("operator cannot create", func(t *testing.T) {
		_, err := svc.CreateEquipment(ctx, operator.ID, &CreateEquipmentRequest{
			LocationID:    loc.ID,
			Code:          "GPU-20",
			EquipmentType: "ground power unit",
		})
		require.Error(t, err)
		assert.Equal(t, "EQUIPMENT_WRITE", appErrors.CodeOf(err))
	})

	t.Run("admin creates at own location only", func(t *testing.T) {
		created, err := svc.CreateEquipment(ctx, admin.ID, &CreateEquipmentRequest{
			LocationID:    loc.ID,
			Code:          "GPU-21",
			EquipmentType: "belt loader",
		})
		require.NoError(t, err)
		assert.Equal(t, "operational", created.Status)

		_, err = svc.CreateEquipment(ctx, admin.ID, &CreateEquipmentRequest{
			LocationID:    otherLoc.ID,
			Code:          "GPU-22",
			EquipmentType: "belt loader",
		})
		require.Error(t, err)
		assert.Equal(t, "LOCATION_SCOPE", appErrors.CodeOf(err))
	})

	t.Run("delete is super admin only", func(t *testing.T) {
		eq := testutil.SeedEquipment(t, db, loc.ID, "GPU-30", domainEquipment.StatusOperational)

		err := svc.DeleteEquipment(ctx, admin.ID, eq.ID)
		require.Error(t, err)
		assert.Equal(t, "EQUIPMENT_DELETE", appErrors.CodeOf(err))

		require.NoError(t, svc.DeleteEquipment(ctx, root.ID, eq.ID))

		_, err = svc.GetEquipment(ctx, root.ID, eq.ID)
		require.Error(t, err)
		assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))
	})
}

func TestUpdateEquipmentStatus(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "DRW")
	admin := testutil.SeedUser(t, db, "admin@example.com", domainUser.RoleAdmin, &loc.ID, false, false)
	eq := testutil.SeedEquipment(t, db, loc.ID, "GPU-40", domainEquipment.StatusOperational)

	updated, err := svc.UpdateEquipment(ctx, admin.ID, eq.ID, &UpdateEquipmentRequest{
		Status: utils.StringPtr("maintenance"),
		Notes:  utils.StringPtr("hydraulics leak"),
	})
	require.NoError(t, err)
	assert.Equal(t, "maintenance", updated.Status)
	assert.Equal(t, "hydraulics leak", updated.Notes)

	_, err = svc.UpdateEquipment(ctx, admin.ID, eq.ID, &UpdateEquipmentRequest{
		Status: utils.StringPtr("retired"),
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
}
