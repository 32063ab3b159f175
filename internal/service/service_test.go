package service

import (
	"path/filepath"
	"testing"
	"time"

	"sales-service/internal/model"
	"sales-service/pkg/config"
	"sales-service/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a fresh migrated store in a per-test temp directory.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Path:         filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout:  5 * time.Second,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())
	})
	return db
}

// newTestDBPair opens two independent connections to one store file. The
// second gets a short busy timeout so lock contention surfaces quickly
// instead of stalling the test.
func newTestDBPair(t *testing.T) (*gorm.DB, *gorm.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	open := func(timeout time.Duration) *gorm.DB {
		db, err := database.Open(config.DatabaseConfig{
			Path:         path,
			BusyTimeout:  timeout,
			MaxIdleConns: 1,
			MaxOpenConns: 1,
			LogLevel:     "silent",
		})
		require.NoError(t, err)
		t.Cleanup(func() {
			sqlDB, err := db.DB()
			require.NoError(t, err)
			require.NoError(t, sqlDB.Close())
		})
		return db
	}
	return open(5 * time.Second), open(250 * time.Millisecond)
}

func seedMerchandise(t *testing.T, db *gorm.DB, name string, quantity int, price float64) *model.Merchandise {
	t.Helper()
	merch := model.Merchandise{Name: name, Quantity: quantity, Price: price}
	require.NoError(t, db.Create(&merch).Error)
	return &merch
}

func seedConsumer(t *testing.T, db *gorm.DB, name string) *model.Consumer {
	t.Helper()
	consumer := model.Consumer{Name: name}
	require.NoError(t, db.Create(&consumer).Error)
	return &consumer
}

func merchandiseQuantity(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var merch model.Merchandise
	require.NoError(t, db.First(&merch, id).Error)
	return merch.Quantity
}
