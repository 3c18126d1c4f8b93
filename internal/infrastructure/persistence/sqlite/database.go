// Package sqlite provides SQLite database setup
package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	gormpkg "gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormstore "github.com/nugamoto/v2/internal/infrastructure/persistence/gorm"
)

// SetupDatabase opens the SQLite database and runs migrations
func SetupDatabase(dbPath string, debug bool) (*gormpkg.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gormpkg.Open(sqlite.Open(dbPath), &gormpkg.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite does not enforce foreign keys unless asked.
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := gormstore.Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}
