// Package database opens the production database connection and runs
// automigration.
package database

import (
	"fmt"

	infrarepo "github.com/securebank/ledger/infra/repository"
	"github.com/securebank/ledger/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a postgres connection and migrates the schema.
func Connect(cfg config.DB) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table. Exposed so tests can migrate their
// own database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(infrarepo.Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
