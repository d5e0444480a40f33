// Package testutil provides the shared in-memory database and seed
// helpers used by repository and service tests.
package testutil

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	domainPoint "gse-tracker/internal/domain/chargingpoint"
	domainEquipment "gse-tracker/internal/domain/equipment"
	domainLocation "gse-tracker/internal/domain/location"
	domainUser "gse-tracker/internal/domain/user"
	"gse-tracker/internal/infrastructure/database/postgres"
	"gse-tracker/internal/logger"
	"gse-tracker/pkg/utils"
)

func init() {
	// Services log through the package-level logger; keep it quiet in
	// tests.
	logger.Logger = zap.NewNop()
}

// OpenDB returns a migrated in-memory database. A single connection is
// shared so concurrent goroutines interleave at the SQL layer and the
// unique index, not gorm, decides races.
func OpenDB(t *testing.T) *postgres.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db := postgres.Wrap(gdb)
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func SeedLocation(t *testing.T, db *postgres.DB, code string) *domainLocation.Location {
	t.Helper()

	loc := &domainLocation.Location{
		Code:     code,
		Name:     "Station " + code,
		IsActive: true,
	}
	if err := postgres.NewLocationRepository(db).Create(context.Background(), loc); err != nil {
		t.Fatalf("failed to seed location: %v", err)
	}
	return loc
}

// SeedUser creates an active profile. locationID must be nil for
// super_admin and set for every other role.
func SeedUser(t *testing.T, db *postgres.DB, email string, role domainUser.Role, locationID *uuid.UUID, charging, swapping bool) *domainUser.Profile {
	t.Helper()

	hashed, err := utils.HashPassword("Sekret123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	profile := &domainUser.Profile{
		Email:          email,
		FullName:       "Test " + email,
		PasswordHashed: hashed,
		Role:           role,
		LocationID:     locationID,
		IsActive:       true,
		ChargingAccess: charging,
		SwappingAccess: swapping,
	}
	if err := postgres.NewUserRepository(db).Create(context.Background(), profile); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return profile
}

func SeedEquipment(t *testing.T, db *postgres.DB, locationID uuid.UUID, code string, status domainEquipment.Status) *domainEquipment.Equipment {
	t.Helper()

	eq := &domainEquipment.Equipment{
		LocationID:    locationID,
		Code:          code,
		EquipmentType: "ground power unit",
		Status:        status,
	}
	if err := postgres.NewEquipmentRepository(db).Create(context.Background(), eq); err != nil {
		t.Fatalf("failed to seed equipment: %v", err)
	}
	return eq
}

func SeedChargingPoint(t *testing.T, db *postgres.DB, locationID uuid.UUID, name string) *domainPoint.ChargingPoint {
	t.Helper()

	point := &domainPoint.ChargingPoint{
		Name:       name,
		LocationID: locationID,
	}
	if err := postgres.NewChargingPointRepository(db).Create(context.Background(), point); err != nil {
		t.Fatalf("failed to seed charging point: %v", err)
	}
	return point
}
