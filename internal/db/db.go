package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"heartsupport/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to PostgreSQL. Driver errors are translated so that unique
// violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), Config())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	slog.Info("database connection established")
	return db, nil
}

// Config is shared by every dialector so tests get the same behaviour.
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// Migrate creates or updates every table. Safe to run repeatedly.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Report{},
		&models.ActivityLog{},
		&models.SiteSettings{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	slog.Info("database migration completed")
	return nil
}

// Init migrates and seeds. It reports whether demo data was inserted.
func Init(ctx context.Context, db *gorm.DB, opts SeedOptions) (bool, error) {
	if err := Migrate(ctx, db); err != nil {
		return false, err
	}
	return Seed(ctx, db, opts)
}
