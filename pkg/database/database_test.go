package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"sales-service/internal/model"
	"sales-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDBConfig(path string) config.DatabaseConfig {
	return config.DatabaseConfig{
		Path:         path,
		BusyTimeout:  time.Second,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}
}

func TestIsSQLiteStore(t *testing.T) {
	assert.True(t, IsSQLiteStore([]byte("SQLite format 3\x00plus trailing data")))
	assert.False(t, IsSQLiteStore([]byte("{\"table\":\"sales\"}")))
	assert.False(t, IsSQLiteStore([]byte("SQLite")))
	assert.False(t, IsSQLiteStore(nil))
}

func TestReplaceStore(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Database: testDBConfig(filepath.Join(dir, "live.db"))}
	require.NoError(t, InitDB(cfg))
	t.Cleanup(func() { Close() })

	require.NoError(t, GetDB().Create(&model.Merchandise{Name: "Widget", Quantity: 1, Price: 10}).Error)

	// Build a second store to restore from.
	otherPath := filepath.Join(dir, "other.db")
	other, err := Open(testDBConfig(otherPath))
	require.NoError(t, err)
	require.NoError(t, other.Create(&model.Consumer{Name: "Bob"}).Error)
	otherSQL, err := other.DB()
	require.NoError(t, err)
	require.NoError(t, otherSQL.Close())

	data, err := os.ReadFile(otherPath)
	require.NoError(t, err)
	require.NoError(t, ReplaceStore(data))

	// The live handle now serves the restored store.
	var consumer model.Consumer
	require.NoError(t, GetDB().First(&consumer, "name = ?", "Bob").Error)

	var count int64
	require.NoError(t, GetDB().Model(&model.Merchandise{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReplaceStoreRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Database: testDBConfig(filepath.Join(dir, "live.db"))}
	require.NoError(t, InitDB(cfg))
	t.Cleanup(func() { Close() })

	require.NoError(t, GetDB().Create(&model.Consumer{Name: "Alice"}).Error)

	err := ReplaceStore([]byte("this is not a database"))
	require.Error(t, err)

	// The active store is untouched.
	var count int64
	require.NoError(t, GetDB().Model(&model.Consumer{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
