package database

import (
	"fmt"
	"time"

	"sales-service/internal/model"

	"gorm.io/gorm"
)

// schemaMigration records an applied migration step.
type schemaMigration struct {
	ID        string `gorm:"primarykey;type:varchar(64)"`
	AppliedAt time.Time
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

type migration struct {
	id  string
	run func(tx *gorm.DB) error
}

// migrations is the ordered, versioned schema history. Every step must be
// idempotent: legacy stores (and stores arriving through raw restore)
// carry no schema_migrations table, so all steps run against whatever
// layout the file actually has.
var migrations = []migration{
	{
		// First-release layout: no consumers table and no consumer
		// reference on sales. Written out as DDL so later steps upgrade
		// fresh and legacy stores through the same history.
		id: "001_merchandise_and_sales_tables",
		run: func(tx *gorm.DB) error {
			stmts := []string{
				`CREATE TABLE IF NOT EXISTS merchandise (
					id integer PRIMARY KEY AUTOINCREMENT,
					name varchar(255) NOT NULL,
					description text,
					quantity integer NOT NULL DEFAULT 0,
					price real NOT NULL,
					created_at datetime,
					updated_at datetime
				)`,
				`CREATE INDEX IF NOT EXISTS idx_merchandise_name ON merchandise(name)`,
				`CREATE TABLE IF NOT EXISTS sales (
					id integer PRIMARY KEY AUTOINCREMENT,
					merchandise_id integer NOT NULL,
					quantity_sold integer NOT NULL,
					unit_price real NOT NULL,
					total_price real NOT NULL,
					sale_date datetime
				)`,
				`CREATE INDEX IF NOT EXISTS idx_sales_merchandise_id ON sales(merchandise_id)`,
				`CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales(sale_date)`,
			}
			for _, stmt := range stmts {
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		id: "002_consumers_table",
		run: func(tx *gorm.DB) error {
			stmts := []string{
				`CREATE TABLE IF NOT EXISTS consumers (
					id integer PRIMARY KEY AUTOINCREMENT,
					name varchar(255) NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_consumers_name ON consumers(name)`,
			}
			for _, stmt := range stmts {
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		id: "003_consumer_contact_columns",
		run: func(tx *gorm.DB) error {
			// Added after the first release; legacy consumer tables
			// only have id and name.
			for _, column := range []string{"phone", "address", "notes", "created_at", "updated_at"} {
				if tx.Migrator().HasColumn(&model.Consumer{}, column) {
					continue
				}
				if err := tx.Migrator().AddColumn(&model.Consumer{}, column); err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		id: "004_sales_consumer_reference",
		run: func(tx *gorm.DB) error {
			// Legacy sales rows predate the consumers table; the column
			// stays nullable so those rows keep reading as consumer-less.
			if tx.Migrator().HasColumn(&model.Sale{}, "consumer_id") {
				return nil
			}
			if err := tx.Migrator().AddColumn(&model.Sale{}, "consumer_id"); err != nil {
				return err
			}
			return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_sales_consumer_id ON sales(consumer_id)`).Error
		},
	},
}

// Migrate applies all pending schema migrations in order.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("failed to prepare migration table: %w", err)
	}

	for _, m := range migrations {
		var count int64
		if err := db.Model(&schemaMigration{}).Where("id = ?", m.id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration %s: %w", m.id, err)
		}
		if count > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.run(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{ID: m.id, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", m.id, err)
		}
	}
	return nil
}
