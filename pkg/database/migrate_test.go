package database

import (
	"path/filepath"
	"testing"

	"sales-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openBare opens a store without running migrations.
func openBare(t *testing.T, path string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())
	})
	return db
}

func TestMigrateFreshStore(t *testing.T) {
	db := openBare(t, filepath.Join(t.TempDir(), "fresh.db"))

	require.NoError(t, Migrate(db))

	m := db.Migrator()
	assert.True(t, m.HasTable(&model.Merchandise{}))
	assert.True(t, m.HasTable(&model.Consumer{}))
	assert.True(t, m.HasTable(&model.Sale{}))
	assert.True(t, m.HasColumn(&model.Consumer{}, "notes"))
	assert.True(t, m.HasColumn(&model.Sale{}, "consumer_id"))

	var applied int64
	require.NoError(t, db.Table("schema_migrations").Count(&applied).Error)
	assert.EqualValues(t, len(migrations), applied)
}

func TestMigrateLegacyStore(t *testing.T) {
	db := openBare(t, filepath.Join(t.TempDir(), "legacy.db"))

	// First-release layout: consumers with only id and name, sales
	// without a consumer reference.
	require.NoError(t, db.Exec(`CREATE TABLE merchandise (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		quantity INTEGER NOT NULL DEFAULT 0,
		price REAL NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE consumers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		merchandise_id INTEGER NOT NULL,
		quantity_sold INTEGER NOT NULL,
		unit_price REAL NOT NULL,
		total_price REAL NOT NULL,
		sale_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`).Error)

	require.NoError(t, db.Exec(`INSERT INTO merchandise (name, quantity, price) VALUES ('Widget', 8, 100)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO consumers (name) VALUES ('Alice')`).Error)
	require.NoError(t, db.Exec(`INSERT INTO sales (merchandise_id, quantity_sold, unit_price, total_price) VALUES (1, 2, 100, 200)`).Error)

	require.NoError(t, Migrate(db))

	m := db.Migrator()
	assert.True(t, m.HasColumn(&model.Consumer{}, "phone"))
	assert.True(t, m.HasColumn(&model.Consumer{}, "address"))
	assert.True(t, m.HasColumn(&model.Consumer{}, "notes"))
	assert.True(t, m.HasColumn(&model.Sale{}, "consumer_id"))

	// Legacy rows survive and read cleanly through the new schema.
	var consumer model.Consumer
	require.NoError(t, db.First(&consumer, 1).Error)
	assert.Equal(t, "Alice", consumer.Name)
	assert.Empty(t, consumer.Notes)

	var sale model.Sale
	require.NoError(t, db.First(&sale, 1).Error)
	assert.Nil(t, sale.ConsumerID)
	assert.Equal(t, 2, sale.QuantitySold)
}

func TestMigrateStepsUpgradeIncrementally(t *testing.T) {
	db := openBare(t, filepath.Join(t.TempDir(), "steps.db"))

	// The first two steps produce the first-release layout; the consumer
	// contact columns and the sales consumer reference only arrive with
	// the later steps.
	require.NoError(t, migrations[0].run(db))
	require.NoError(t, migrations[1].run(db))

	m := db.Migrator()
	assert.False(t, m.HasColumn(&model.Consumer{}, "phone"))
	assert.False(t, m.HasColumn(&model.Sale{}, "consumer_id"))

	require.NoError(t, Migrate(db))
	assert.True(t, m.HasColumn(&model.Consumer{}, "phone"))
	assert.True(t, m.HasColumn(&model.Sale{}, "consumer_id"))
}

func TestMigrateIdempotent(t *testing.T) {
	db := openBare(t, filepath.Join(t.TempDir(), "twice.db"))

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var applied int64
	require.NoError(t, db.Table("schema_migrations").Count(&applied).Error)
	assert.EqualValues(t, len(migrations), applied)
}
