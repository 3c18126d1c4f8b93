// Package postgres provides PostgreSQL database setup
package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	gormpkg "gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nugamoto/v2/internal/infrastructure/config"
	gormstore "github.com/nugamoto/v2/internal/infrastructure/persistence/gorm"
)

// SetupDatabase opens a PostgreSQL connection pool and runs migrations
func SetupDatabase(cfg *config.Config) (*gormpkg.DB, error) {
	logLevel := logger.Warn
	if cfg.App.Debug {
		logLevel = logger.Info
	}

	db, err := gormpkg.Open(postgres.Open(cfg.GetDSN()), &gormpkg.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if cfg.Database.AutoMigrate {
		if err := gormstore.Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}
