package database

import (
	"fmt"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashankj99/med-o-sys-api-auth/internal/infrastructure/repositories"
)

// Open creates a new database connection with production-ready settings.
// TranslateError lets repositories surface unique violations as typed
// domain errors.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate performs database migration for all required tables,
// including the Casbin policy table backing RBAC.
func AutoMigrate(db *gorm.DB) error {
	models := []any{
		&repositories.DBUser{},
		&repositories.DBOtp{},
		&repositories.DBVerificationToken{},
		&repositories.DBSessionToken{},
		&repositories.DBProvince{},
		&repositories.DBDistrict{},
		&repositories.DBCity{},
		&repositories.DBRole{},
		&repositories.DBPermission{},
		&repositories.DBHospitalUser{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	// The adapter creates the casbin_rule table if it doesn't exist.
	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}

	return nil
}
