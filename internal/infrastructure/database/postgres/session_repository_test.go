package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainEquipment "gse-tracker/internal/domain/equipment"
	domainSession "gse-tracker/internal/domain/session"
	domainUser "gse-tracker/internal/domain/user"
	"gse-tracker/internal/infrastructure/database/postgres"
	"gse-tracker/internal/testutil"
)

func seedOpenSlot(t *testing.T, repo domainSession.Repository, equipmentID, userID, locationID uuid.UUID) *domainSession.ChargingSession {
	t.Helper()
	s := &domainSession.ChargingSession{
		EquipmentID: equipmentID,
		UserID:      userID,
		LocationID:  locationID,
		StartTime:   time.Now(),
	}
	require.NoError(t, repo.Insert(context.Background(), s))
	return s
}

// The partial unique index must reject a second open row for the same
// equipment while leaving closed history unconstrained.
func TestOpenSessionUniquePerEquipment(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := postgres.NewSessionRepository(db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "SYD")
	operator := testutil.SeedUser(t, db, "op@example.com", domainUser.RoleUser, &loc.ID, true, false)
	eq := testutil.SeedEquipment(t, db, loc.ID, "GPU-01", domainEquipment.StatusOperational)
	other := testutil.SeedEquipment(t, db, loc.ID, "GPU-02", domainEquipment.StatusOperational)

	first := seedOpenSlot(t, repo, eq.ID, operator.ID, loc.ID)

	err := repo.Insert(ctx, &domainSession.ChargingSession{
		EquipmentID: eq.ID,
		UserID:      operator.ID,
		LocationID:  loc.ID,
		StartTime:   time.Now(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainSession.ErrAlreadyCharging)

	// A different unit is unaffected.
	seedOpenSlot(t, repo, other.ID, operator.ID, loc.ID)

	// Closing the first row frees the slot.
	require.NoError(t, repo.Seal(ctx, first.ID, time.Now()))
	seedOpenSlot(t, repo, eq.ID, operator.ID, loc.ID)

	// Any number of closed rows may coexist.
	sessions, err := repo.ListRecentByEquipment(ctx, eq.ID, 10)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestSealSemantics(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := postgres.NewSessionRepository(db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "MEL")
	operator := testutil.SeedUser(t, db, "op@example.com", domainUser.RoleUser, &loc.ID, true, false)
	eq := testutil.SeedEquipment(t, db, loc.ID, "GPU-03", domainEquipment.StatusOperational)

	s := seedOpenSlot(t, repo, eq.ID, operator.ID, loc.ID)

	endTime := time.Now()
	require.NoError(t, repo.Seal(ctx, s.ID, endTime))

	sealed, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, sealed.EndTime)
	assert.False(t, sealed.IsOpen())

	// Sealing twice reports closed, not found.
	err = repo.Seal(ctx, s.ID, time.Now())
	assert.ErrorIs(t, err, domainSession.ErrSessionClosed)

	err = repo.Seal(ctx, uuid.New(), time.Now())
	assert.ErrorIs(t, err, domainSession.ErrSessionNotFound)
}

func TestGetOpenByEquipmentNilWhenIdle(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := postgres.NewSessionRepository(db)
	ctx := context.Background()

	loc := testutil.SeedLocation(t, db, "BNE")
	operator := testutil.SeedUser(t, db, "op@example.com", domainUser.RoleUser, &loc.ID, true, false)
	eq := testutil.SeedEquipment(t, db, loc.ID, "GPU-04", domainEquipment.StatusOperational)

	open, err := repo.GetOpenByEquipment(ctx, eq.ID)
	require.NoError(t, err)
	assert.Nil(t, open)

	s := seedOpenSlot(t, repo, eq.ID, operator.ID, loc.ID)

	open, err = repo.GetOpenByEquipment(ctx, eq.ID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, s.ID, open.ID)

	require.NoError(t, repo.Seal(ctx, s.ID, time.Now()))

	open, err = repo.GetOpenByEquipment(ctx, eq.ID)
	require.NoError(t, err)
	assert.Nil(t, open)
}
