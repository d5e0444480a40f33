package postgres

import (
	"gse-tracker/internal/infrastructure/database/postgres/models"
)

// Migrate creates or updates the schema, including the partial unique
// index guarding the one-open-session-per-equipment invariant.
func (d *DB) Migrate() error {
	return d.DB.AutoMigrate(
		&models.LocationModel{},
		&models.UserModel{},
		&models.EquipmentModel{},
		&models.ChargingPointModel{},
		&models.ChargingSessionModel{},
		&models.SwapEventModel{},
	)
}
