package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnold/compass/internal/config"
	"github.com/arnold/compass/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the relational store behind the key/value table. PostgreSQL
// is used when the URL starts with "postgres", SQLite otherwise.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		if dir := filepath.Dir(cfg.DatabaseURL); dir != "." && cfg.DatabaseURL != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg)),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One local writer: a single connection keeps SQLite free of lock contention.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	slog.Debug("connected to database", slog.String("dialect", dialector.Name()))
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.KVEntry{})
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormLogLevel(cfg *config.Config) logger.LogLevel {
	switch cfg.LogLevel {
	case "debug":
		return logger.Info
	case "info", "warn":
		return logger.Warn
	default:
		return logger.Error
	}
}
