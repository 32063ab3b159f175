package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sales-service/pkg/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	mu     sync.RWMutex
	db     *gorm.DB
	dbConf config.DatabaseConfig
)

// sqliteHeader is the magic prefix of every SQLite database file.
const sqliteHeader = "SQLite format 3\x00"

// IsSQLiteStore reports whether data starts with the SQLite file header.
func IsSQLiteStore(data []byte) bool {
	return len(data) >= len(sqliteHeader) && string(data[:len(sqliteHeader)]) == sqliteHeader
}

// InitDB opens the store at the configured path, applies the schema
// migrations and installs the handle as the shared instance.
func InitDB(cfg *config.Config) error {
	handle, err := Open(cfg.Database)
	if err != nil {
		return err
	}

	mu.Lock()
	db = handle
	dbConf = cfg.Database
	mu.Unlock()

	return nil
}

// Open opens a migrated store handle at cfg.Path without touching the
// shared instance. Tests use it to run against throwaway stores.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	// Set up GORM logger configuration
	var logLevel logger.LogLevel
	switch cfg.LogLevel {
	case "silent":
		logLevel = logger.Silent
	case "error":
		logLevel = logger.Error
	case "info":
		logLevel = logger.Info
	default:
		logLevel = logger.Warn
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	handle, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Path, err)
	}

	// Configure connection pool settings
	sqlDB, err := handle.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := Migrate(handle); err != nil {
		return nil, err
	}

	return handle, nil
}

// GetDB returns the shared database instance
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}

// Close closes the shared database instance.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	db = nil
	return sqlDB.Close()
}

// ReplaceStore swaps the underlying storage file for raw restore. It
// validates the SQLite header, closes the active handle, replaces the
// file via rename and reopens a migrated handle. The previous store file
// is left untouched when validation fails.
func ReplaceStore(data []byte) error {
	if !IsSQLiteStore(data) {
		return fmt.Errorf("not a SQLite database file")
	}

	mu.Lock()
	defer mu.Unlock()

	if err := closeLocked(); err != nil {
		return fmt.Errorf("failed to close store before restore: %w", err)
	}

	dir := filepath.Dir(dbConf.Path)
	tmp, err := os.CreateTemp(dir, ".restore-*.db")
	if err != nil {
		return fmt.Errorf("failed to stage restore file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write restore file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write restore file: %w", err)
	}
	if err := os.Rename(tmpPath, dbConf.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	handle, err := Open(dbConf)
	if err != nil {
		return err
	}
	db = handle
	return nil
}

// StorePath returns the path of the active storage file.
func StorePath() string {
	mu.RLock()
	defer mu.RUnlock()
	return dbConf.Path
}
