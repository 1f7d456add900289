package database

import (
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrate applies all pending goose migrations from the given directory.
// The catalog schema (categories, products, variants, images, ratings,
// reviews, orders) is created additively so older deployments without the
// optional tables keep working.
func (s *Service) Migrate(migrationsDir string, logger *zap.Logger) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	logger.Info("Checking for pending migrations...", zap.String("dir", migrationsDir))

	if err := goose.Up(s.db, migrationsDir); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations completed successfully")
	return nil
}

// MigrationStatus prints the applied/pending state of each migration.
func (s *Service) MigrationStatus(migrationsDir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.Status(s.db, migrationsDir)
}
