package database

import (
	"fmt"

	"restaurant_backend/internal/logger"
	"restaurant_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config shared by every connection. TranslateError maps driver-specific
// uniqueness violations to gorm.ErrDuplicatedKey.
func GormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// Connect opens the PostgreSQL store
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("AutoMigrate completed", "tables", len(models.AllModels()))
	return nil
}
