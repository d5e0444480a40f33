package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainUser "gse-tracker/internal/domain/user"
	appErrors "gse-tracker/pkg/errors"
)

func profile(role domainUser.Role, locationID *uuid.UUID, charging, swapping bool) *domainUser.Profile {
	return &domainUser.Profile{
		ID:             uuid.New(),
		Role:           role,
		LocationID:     locationID,
		IsActive:       true,
		ChargingAccess: charging,
		SwappingAccess: swapping,
	}
}

func assertDenied(t *testing.T, err error, rule string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindPermissionDenied))
	assert.Equal(t, rule, appErrors.CodeOf(err))
}

func TestCanStartCharging(t *testing.T) {
	here := uuid.New()
	there := uuid.New()

	t.Run("flag based, not role based", func(t *testing.T) {
		for _, role := range []domainUser.Role{domainUser.RoleAdmin, domainUser.RoleUser} {
			withFlag := profile(role, &here, true, false)
			assert.NoError(t, CanStartCharging(withFlag, here), "role %s", role)

			withoutFlag := profile(role, &here, false, false)
			assertDenied(t, CanStartCharging(withoutFlag, here), RuleChargingAccess)
		}
	})

	t.Run("location scoped", func(t *testing.T) {
		actor := profile(domainUser.RoleUser, &here, true, false)
		assertDenied(t, CanStartCharging(actor, there), RuleLocationScope)
	})

	t.Run("super admin exempt from location", func(t *testing.T) {
		root := profile(domainUser.RoleSuperAdmin, nil, true, false)
		assert.NoError(t, CanStartCharging(root, there))

		// But not from the flag.
		rootNoFlag := profile(domainUser.RoleSuperAdmin, nil, false, false)
		assertDenied(t, CanStartCharging(rootNoFlag, there), RuleChargingAccess)
	})

	t.Run("inactive always denied", func(t *testing.T) {
		actor := profile(domainUser.RoleUser, &here, true, true)
		actor.IsActive = false
		assertDenied(t, CanStartCharging(actor, here), RuleActorInactive)
	})
}

func TestCanRecordSwap(t *testing.T) {
	here := uuid.New()

	withFlag := profile(domainUser.RoleUser, &here, false, true)
	assert.NoError(t, CanRecordSwap(withFlag, here))

	withoutFlag := profile(domainUser.RoleUser, &here, true, false)
	assertDenied(t, CanRecordSwap(withoutFlag, here), RuleSwappingAccess)
}

func TestEquipmentWriteRules(t *testing.T) {
	here := uuid.New()
	there := uuid.New()

	operator := profile(domainUser.RoleUser, &here, true, true)
	admin := profile(domainUser.RoleAdmin, &here, false, false)
	root := profile(domainUser.RoleSuperAdmin, nil, false, false)

	assertDenied(t, CanMutateEquipment(operator, here), RuleEquipmentWrite)
	assert.NoError(t, CanMutateEquipment(admin, here))
	assertDenied(t, CanMutateEquipment(admin, there), RuleLocationScope)
	assert.NoError(t, CanMutateEquipment(root, there))

	assertDenied(t, CanDeleteEquipment(admin), RuleEquipmentDelete)
	assert.NoError(t, CanDeleteEquipment(root))
}

func TestLocationAdminRules(t *testing.T) {
	here := uuid.New()

	admin := profile(domainUser.RoleAdmin, &here, false, false)
	root := profile(domainUser.RoleSuperAdmin, nil, false, false)

	assertDenied(t, CanManageLocations(admin), RuleLocationAdmin)
	assert.NoError(t, CanManageLocations(root))

	assertDenied(t, CanDeleteChargingPoint(admin), RulePointDelete)
	assert.NoError(t, CanDeleteChargingPoint(root))
}

func TestCanCreateProfile(t *testing.T) {
	here := uuid.New()
	there := uuid.New()

	admin := profile(domainUser.RoleAdmin, &here, false, false)
	root := profile(domainUser.RoleSuperAdmin, nil, false, false)
	operator := profile(domainUser.RoleUser, &here, true, true)

	assert.NoError(t, root.Validate())
	assert.NoError(t, CanCreateProfile(root, domainUser.RoleAdmin, &here))
	assert.NoError(t, CanCreateProfile(admin, domainUser.RoleUser, &here))

	assertDenied(t, CanCreateProfile(admin, domainUser.RoleAdmin, &here), RuleRoleScope)
	assertDenied(t, CanCreateProfile(admin, domainUser.RoleUser, &there), RuleLocationScope)
	assertDenied(t, CanCreateProfile(operator, domainUser.RoleUser, &here), RuleRoleScope)
}

func TestCanEditProfile(t *testing.T) {
	here := uuid.New()
	there := uuid.New()

	admin := profile(domainUser.RoleAdmin, &here, false, false)
	root := profile(domainUser.RoleSuperAdmin, nil, false, false)
	operator := profile(domainUser.RoleUser, &here, true, true)
	localTarget := profile(domainUser.RoleUser, &here, false, false)
	foreignTarget := profile(domainUser.RoleUser, &there, false, false)

	t.Run("self service without role change", func(t *testing.T) {
		assert.NoError(t, CanEditProfile(operator, operator, false, false))
		assertDenied(t, CanEditProfile(operator, operator, true, false), RuleRoleScope)
	})

	t.Run("admin edits local operators only", func(t *testing.T) {
		assert.NoError(t, CanEditProfile(admin, localTarget, false, false))
		assertDenied(t, CanEditProfile(admin, foreignTarget, false, false), RuleLocationScope)
		assertDenied(t, CanEditProfile(admin, root, false, false), RuleRoleScope)
		assertDenied(t, CanEditProfile(admin, localTarget, true, false), RuleRoleScope)
	})

	t.Run("operator cannot touch others", func(t *testing.T) {
		assertDenied(t, CanEditProfile(operator, localTarget, false, false), RuleProfileScope)
	})

	t.Run("super admin unrestricted", func(t *testing.T) {
		assert.NoError(t, CanEditProfile(root, foreignTarget, true, true))
	})
}

func TestCanReadProfile(t *testing.T) {
	here := uuid.New()
	there := uuid.New()

	admin := profile(domainUser.RoleAdmin, &here, false, false)
	operator := profile(domainUser.RoleUser, &here, true, true)
	localTarget := profile(domainUser.RoleUser, &here, false, false)
	foreignTarget := profile(domainUser.RoleUser, &there, false, false)

	t.Run("own profile readable even when inactive", func(t *testing.T) {
		inactive := profile(domainUser.RoleUser, &here, false, false)
		inactive.IsActive = false
		assert.NoError(t, CanReadProfile(inactive, inactive))
	})

	assert.NoError(t, CanReadProfile(admin, localTarget))
	assertDenied(t, CanReadProfile(admin, foreignTarget), RuleLocationScope)
	assertDenied(t, CanReadProfile(operator, localTarget), RuleProfileScope)
}
