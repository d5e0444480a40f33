// Package policy is the access-control engine: pure predicate functions
// consulted before every mutating or sensitive-read operation. Each
// denial names the violated rule so handlers can surface actionable
// messages. Rules are evaluated in precedence order: active flag,
// location scoping, role scoping, capability flags.
package policy

import (
	"github.com/google/uuid"

	domainUser "gse-tracker/internal/domain/user"
	appErrors "gse-tracker/pkg/errors"
)

// Rule codes carried in PermissionDenied errors.
const (
	RuleActorInactive   = "ACTOR_INACTIVE"
	RuleLocationScope   = "LOCATION_SCOPE"
	RuleRoleScope       = "ROLE_SCOPE"
	RuleChargingAccess  = "CHARGING_ACCESS"
	RuleSwappingAccess  = "SWAPPING_ACCESS"
	RuleEquipmentWrite  = "EQUIPMENT_WRITE"
	RuleEquipmentDelete = "EQUIPMENT_DELETE"
	RulePointWrite      = "CHARGING_POINT_WRITE"
	RulePointDelete     = "CHARGING_POINT_DELETE"
	RuleProfileScope    = "PROFILE_SCOPE"
	RuleLocationAdmin   = "LOCATION_ADMIN"
)

func requireActive(actor *domainUser.Profile) error {
	if !actor.IsActive {
		return appErrors.PermissionDenied(RuleActorInactive, "account is deactivated")
	}
	return nil
}

// requireLocation passes super_admin unconditionally; admin and user
// may only act on entities at their own location.
func requireLocation(actor *domainUser.Profile, locationID uuid.UUID) error {
	if actor.Role == domainUser.RoleSuperAdmin {
		return nil
	}
	if !actor.SameLocation(locationID) {
		return appErrors.PermissionDenied(RuleLocationScope, "entity belongs to another location")
	}
	return nil
}

// CanReadLocation gates listing and lookups of location-scoped data.
func CanReadLocation(actor *domainUser.Profile, locationID uuid.UUID) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	return requireLocation(actor, locationID)
}

// CanStartCharging gates the operator start flow. The rule is
// flag-based: any actor with charging access may start, regardless of
// role; location match still applies below super_admin.
func CanStartCharging(actor *domainUser.Profile, equipmentLocationID uuid.UUID) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	if !actor.ChargingAccess {
		return appErrors.PermissionDenied(RuleChargingAccess, "charging access is not enabled for this account")
	}
	return requireLocation(actor, equipmentLocationID)
}

// CanStopCharging applies the same rule as starting: the session's
// location, not the original actor, determines scope.
func CanStopCharging(actor *domainUser.Profile, sessionLocationID uuid.UUID) error {
	return CanStartCharging(actor, sessionLocationID)
}

// CanRecordSwap gates battery-swap recording.
func CanRecordSwap(actor *domainUser.Profile, equipmentLocationID uuid.UUID) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	if !actor.SwappingAccess {
		return appErrors.PermissionDenied(RuleSwappingAccess, "swapping access is not enabled for this account")
	}
	return requireLocation(actor, equipmentLocationID)
}

// CanMutateEquipment gates create/update of equipment records.
// super_admin unrestricted; admin limited to own location; user has no
// write access.
func CanMutateEquipment(actor *domainUser.Profile, locationID uuid.UUID) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	if actor.Role == domainUser.RoleUser {
		return appErrors.PermissionDenied(RuleEquipmentWrite, "operators cannot modify equipment records")
	}
	return requireLocation(actor, locationID)
}

// CanDeleteEquipment is super_admin only.
func CanDeleteEquipment(actor *domainUser.Profile) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	if actor.Role != domainUser.RoleSuperAdmin {
		return appErrors.PermissionDenied(RuleEquipmentDelete, "only a super admin may delete equipment")
	}
	return nil
}

// CanMutateChargingPoint gates create/update of charging points.
func CanMutateChargingPoint(actor *domainUser.Profile, locationID uuid.UUID) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	if actor.Role == domainUser.RoleUser {
		return appErrors.PermissionDenied(RulePointWrite, "operators cannot modify charging points")
	}
	return requireLocation(actor, locationID)
}

// CanDeleteChargingPoint additionally requires super_admin.
func CanDeleteChargingPoint(actor *domainUser.Profile) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	if actor.Role != domainUser.RoleSuperAdmin {
		return appErrors.PermissionDenied(RulePointDelete, "only a super admin may delete charging points")
	}
	return nil
}

// CanManageLocations gates location create/activate/deactivate.
func CanManageLocations(actor *domainUser.Profile) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	if actor.Role != domainUser.RoleSuperAdmin {
		return appErrors.PermissionDenied(RuleLocationAdmin, "only a super admin may manage locations")
	}
	return nil
}

// CanCreateProfile gates account creation. Only super_admin may create
// admin or super_admin accounts; admin may create role=user profiles
// within its own location.
func CanCreateProfile(actor *domainUser.Profile, newRole domainUser.Role, newLocationID *uuid.UUID) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	switch actor.Role {
	case domainUser.RoleSuperAdmin:
		return nil
	case domainUser.RoleAdmin:
		if newRole != domainUser.RoleUser {
			return appErrors.PermissionDenied(RuleRoleScope, "admins may only create operator accounts")
		}
		if newLocationID == nil || !actor.SameLocation(*newLocationID) {
			return appErrors.PermissionDenied(RuleLocationScope, "admins may only create accounts at their own location")
		}
		return nil
	default:
		return appErrors.PermissionDenied(RuleRoleScope, "operators cannot create accounts")
	}
}

// CanEditProfile gates mutation of an existing profile. roleChanged and
// locationChanged flag whether the request attempts to move the target
// across the role/location boundary, which is super_admin territory.
func CanEditProfile(actor, target *domainUser.Profile, roleChanged, locationChanged bool) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	if actor.Role == domainUser.RoleSuperAdmin {
		return nil
	}
	if actor.ID == target.ID {
		// Self-service edits (name, password) are allowed for everyone,
		// but role and location stay fixed.
		if roleChanged || locationChanged {
			return appErrors.PermissionDenied(RuleRoleScope, "only a super admin may change role or location")
		}
		return nil
	}
	if actor.Role != domainUser.RoleAdmin {
		return appErrors.PermissionDenied(RuleProfileScope, "operators cannot edit other accounts")
	}
	if target.Role != domainUser.RoleUser {
		return appErrors.PermissionDenied(RuleRoleScope, "admins may only edit operator accounts")
	}
	if target.LocationID == nil || !actor.SameLocation(*target.LocationID) {
		return appErrors.PermissionDenied(RuleLocationScope, "admins may only edit accounts at their own location")
	}
	if roleChanged || locationChanged {
		return appErrors.PermissionDenied(RuleRoleScope, "only a super admin may change role or location")
	}
	return nil
}

// CanReadProfile allows reading own profile even when deactivated; all
// other reads follow the location scope.
func CanReadProfile(actor, target *domainUser.Profile) error {
	if actor.ID == target.ID {
		return nil
	}
	if err := requireActive(actor); err != nil {
		return err
	}
	if actor.Role == domainUser.RoleSuperAdmin {
		return nil
	}
	if actor.Role == domainUser.RoleUser {
		return appErrors.PermissionDenied(RuleProfileScope, "operators may only read their own profile")
	}
	if target.LocationID == nil || !actor.SameLocation(*target.LocationID) {
		return appErrors.PermissionDenied(RuleLocationScope, "profile belongs to another location")
	}
	return nil
}
