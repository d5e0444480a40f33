package session

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainEquipment "gse-tracker/internal/domain/equipment"
	domainUser "gse-tracker/internal/domain/user"
	"gse-tracker/internal/infrastructure/database/postgres"
	"gse-tracker/internal/testutil"
	appErrors "gse-tracker/pkg/errors"
)

func newTestService(t *testing.T, db *postgres.DB) *Service {
	t.Helper()
	return NewService(
		postgres.NewSessionRepository(db),
		postgres.NewEquipmentRepository(db),
		postgres.NewChargingPointRepository(db),
		postgres.NewUserRepository(db),
		nil,
	)
}

func TestStartAndStopChargingFlow(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "SYD")
	operator := testutil.SeedUser(t, db, "op@example.com", domainUser.RoleUser, &loc.ID, true, true)
	eq := testutil.SeedEquipment(t, db, loc.ID, "GPU-17", domainEquipment.StatusOperational)
	point := testutil.SeedChargingPoint(t, db, loc.ID, "Bay 3")

	started, err := svc.StartCharging(ctx, operator.ID, &StartChargingRequest{
		EquipmentID:     eq.ID,
		ChargingPointID: point.ID,
		MeterReading:    "1204.5",
	})
	require.NoError(t, err)
	assert.Equal(t, eq.ID, started.EquipmentID)
	assert.Equal(t, operator.ID, started.UserID)
	assert.Equal(t, loc.ID, started.LocationID)
	require.NotNil(t, started.ChargingPointID)
	assert.Equal(t, point.ID, *started.ChargingPointID)
	require.NotNil(t, started.MeterReadingAtStart)
	assert.Equal(t, "1204.5", *started.MeterReadingAtStart)
	assert.Nil(t, started.EndTime)
	assert.Nil(t, started.DurationMinutes)

	open, err := svc.GetOpenSession(ctx, operator.ID, eq.ID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, started.ID, open.ID)

	// A second start on the same unit must lose to the open slot.
	_, err = svc.StartCharging(ctx, operator.ID, &StartChargingRequest{
		EquipmentID:     eq.ID,
		ChargingPointID: point.ID,
		MeterReading:    "1205",
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindConflict))
	assert.Equal(t, "EQUIPMENT_ALREADY_CHARGING", appErrors.CodeOf(err))

	stopped, err := svc.StopCharging(ctx, operator.ID, started.ID)
	require.NoError(t, err)
	require.NotNil(t, stopped.EndTime)
	require.NotNil(t, stopped.DurationMinutes)

	open, err = svc.GetOpenSession(ctx, operator.ID, eq.ID)
	require.NoError(t, err)
	assert.Nil(t, open)

	// Stopping twice is a conflict, not a silent no-op.
	_, err = svc.StopCharging(ctx, operator.ID, started.ID)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindConflict))
	assert.Equal(t, "SESSION_ALREADY_CLOSED", appErrors.CodeOf(err))

	// The slot is free again.
	_, err = svc.StartCharging(ctx, operator.ID, &StartChargingRequest{
		EquipmentID:     eq.ID,
		ChargingPointID: point.ID,
		MeterReading:    "1210",
	})
	require.NoError(t, err)
}

func TestStartChargingPreconditions(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "MEL")
	otherLoc := testutil.SeedLocation(t, db, "PER")
	operator := testutil.SeedUser(t, db, "op@example.com", domainUser.RoleUser, &loc.ID, true, false)
	eq := testutil.SeedEquipment(t, db, loc.ID, "BTU-02", domainEquipment.StatusOperational)
	point := testutil.SeedChargingPoint(t, db, loc.ID, "Bay 1")
	foreignPoint := testutil.SeedChargingPoint(t, db, otherLoc.ID, "Bay 9")

	t.Run("charging point required", func(t *testing.T) {
		_, err := svc.StartCharging(ctx, operator.ID, &StartChargingRequest{
			EquipmentID:  eq.ID,
			MeterReading: "10",
		})
		require.Error(t, err)
		assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
		assert.Equal(t, "charging_point", appErrors.CodeOf(err))
	})

	t.Run("unknown charging point", func(t *testing.T) {
		_, err := svc.StartCharging(ctx, operator.ID, &StartChargingRequest{
			EquipmentID:     eq.ID,
			ChargingPointID: uuid.New(),
			MeterReading:    "10",
		})
		require.Error(t, err)
		assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
		assert.Equal(t, "charging_point", appErrors.CodeOf(err))
	})

	t.Run("charging point at another location", func(t *testing.T) {
		_, err := svc.StartCharging(ctx, operator.ID, &StartChargingRequest{
			EquipmentID:     eq.ID,
			ChargingPointID: foreignPoint.ID,
			MeterReading:    "10",
		})
		require.Error(t, err)
		assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
		assert.Equal(t, "charging_point", appErrors.CodeOf(err))
	})

	t.Run("invalid meter reading", func(t *testing.T) {
		for _, reading := range []string{"", "12.3.4", "abc", "-5", "."} {
			_, err := svc.StartCharging(ctx, operator.ID, &StartChargingRequest{
				EquipmentID:     eq.ID,
				ChargingPointID: point.ID,
				MeterReading:    reading,
			})
			require.Error(t, err, "reading %q", reading)
			assert.Equal(t, "meter_reading", appErrors.CodeOf(err), "reading %q", reading)
		}
	})

	t.Run("equipment under maintenance", func(t *testing.T) {
		down := testutil.SeedEquipment(t, db, loc.ID, "BTU-03", domainEquipment.StatusMaintenance)
		_, err := svc.StartCharging(ctx, operator.ID, &StartChargingRequest{
			EquipmentID:     down.ID,
			ChargingPointID: point.ID,
			MeterReading:    "10",
		})
		require.Error(t, err)
		assert.True(t, appErrors.IsKind(err, appErrors.KindConflict))
		assert.Equal(t, "EQUIPMENT_UNAVAILABLE", appErrors.CodeOf(err))
	})

	t.Run("unknown equipment", func(t *testing.T) {
		_, err := svc.StartCharging(ctx, operator.ID, &StartChargingRequest{
			EquipmentID:     uuid.New(),
			ChargingPointID: point.ID,
			MeterReading:    "10",
		})
		require.Error(t, err)
		assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))
	})
}

func TestStartChargingAccessControl(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "BNE")
	otherLoc := testutil.SeedLocation(t, db, "ADL")
	eq := testutil.SeedEquipment(t, db, loc.ID, "GPU-01", domainEquipment.StatusOperational)
	point := testutil.SeedChargingPoint(t, db, loc.ID, "Bay 2")

	req := func() *StartChargingRequest {
		return &StartChargingRequest{
			EquipmentID:     eq.ID,
			ChargingPointID: point.ID,
			MeterReading:    "42",
		}
	}

	t.Run("no charging access", func(t *testing.T) {
		noFlag := testutil.SeedUser(t, db, "noflag@example.com", domainUser.RoleUser, &loc.ID, false, true)
		_, err := svc.StartCharging(ctx, noFlag.ID, req())
		require.Error(t, err)
		assert.True(t, appErrors.IsKind(err, appErrors.KindPermissionDenied))
		assert.Equal(t, "CHARGING_ACCESS", appErrors.CodeOf(err))
	})

	t.Run("wrong location", func(t *testing.T) {
		foreign := testutil.SeedUser(t, db, "foreign@example.com", domainUser.RoleUser, &otherLoc.ID, true, true)
		_, err := svc.StartCharging(ctx, foreign.ID, req())
		require.Error(t, err)
		assert.True(t, appErrors.IsKind(err, appErrors.KindPermissionDenied))
		assert.Equal(t, "LOCATION_SCOPE", appErrors.CodeOf(err))
	})

	t.Run("deactivated account", func(t *testing.T) {
		inactive := testutil.SeedUser(t, db, "inactive@example.com", domainUser.RoleUser, &loc.ID, true, true)
		users := postgres.NewUserRepository(db)
		require.NoError(t, users.SetActive(ctx, inactive.ID, false))

		_, err := svc.StartCharging(ctx, inactive.ID, req())
		require.Error(t, err)
		assert.Equal(t, "ACTOR_INACTIVE", appErrors.CodeOf(err))
	})

	t.Run("super admin crosses locations", func(t *testing.T) {
		root := testutil.SeedUser(t, db, "root@example.com", domainUser.RoleSuperAdmin, nil, true, true)
		started, err := svc.StartCharging(ctx, root.ID, req())
		require.NoError(t, err)

		// Any actor with access at the location may stop it, not just
		// the starter.
		local := testutil.SeedUser(t, db, "local@example.com", domainUser.RoleUser, &loc.ID, true, false)
		_, err = svc.StopCharging(ctx, local.ID, started.ID)
		require.NoError(t, err)
	})
}

// TestConcurrentStartSingleWinner races many starts against one unit.
// Exactly one must win; the rest fail with the already-charging
// conflict regardless of whether the pre-insert check or the unique
// index caught them.
func TestConcurrentStartSingleWinner(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "CBR")
	operator := testutil.SeedUser(t, db, "op@example.com", domainUser.RoleUser, &loc.ID, true, false)
	eq := testutil.SeedEquipment(t, db, loc.ID, "GPU-99", domainEquipment.StatusOperational)
	point := testutil.SeedChargingPoint(t, db, loc.ID, "Bay 4")

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.StartCharging(ctx, operator.ID, &StartChargingRequest{
				EquipmentID:     eq.ID,
				ChargingPointID: point.ID,
				MeterReading:    "100",
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.True(t, appErrors.IsKind(err, appErrors.KindConflict))
		assert.Equal(t, "EQUIPMENT_ALREADY_CHARGING", appErrors.CodeOf(err))
	}
	assert.Equal(t, 1, wins)

	open, err := svc.GetOpenSession(ctx, operator.ID, eq.ID)
	require.NoError(t, err)
	require.NotNil(t, open)
}

func TestListRecentNewestFirst(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "DRW")
	operator := testutil.SeedUser(t, db, "op@example.com", domainUser.RoleUser, &loc.ID, true, false)
	eq := testutil.SeedEquipment(t, db, loc.ID, "GPU-05", domainEquipment.StatusOperational)
	point := testutil.SeedChargingPoint(t, db, loc.ID, "Bay 1")

	var lastID uuid.UUID
	for i := 0; i < 3; i++ {
		started, err := svc.StartCharging(ctx, operator.ID, &StartChargingRequest{
			EquipmentID:     eq.ID,
			ChargingPointID: point.ID,
			MeterReading:    "50",
		})
		require.NoError(t, err)
		_, err = svc.StopCharging(ctx, operator.ID, started.ID)
		require.NoError(t, err)
		lastID = started.ID
	}

	recent, err := svc.ListRecent(ctx, operator.ID, eq.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, lastID, recent[0].ID)
}
