package db

import (
	"fmt"

	"gorm.io/gorm"

	"vehicle-service/internal/model"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_status') THEN
			CREATE TYPE vehicle_status AS ENUM ('IN_SERVICE', 'OUT_OF_SERVICE', 'IN_MAINTENANCE', 'RETIRED');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_type') THEN
			CREATE TYPE vehicle_type AS ENUM ('BUS', 'VAN', 'SHUTTLE', 'TRAM');
		END IF;
	END
	$$;`,
}

func RunMigrations(database *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := database.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i, err)
		}
	}
	if err := database.AutoMigrate(&model.Vehicle{}); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
