package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"sales-service/internal/model"

	"gorm.io/gorm"
)

// RestoreArchive replaces the store's contents with the rows of a
// columnar archive stream. The whole stream is decoded and validated
// before anything is mutated, and the table swap plus inserts run in one
// transaction, so a corrupt archive never damages the existing data.
//
// Row payloads are projected through an allow-list built from the live
// schema: fields the current columns don't know are dropped, fields the
// archive doesn't carry stay NULL. This keeps archives from older and
// newer schema versions restorable.
func RestoreArchive(db *gorm.DB, r io.Reader) error {
	grouped, err := decodeArchive(r)
	if err != nil {
		return err
	}

	columns := make(map[string]map[string]bool, len(archiveTables))
	for _, table := range archiveTables {
		types, err := db.Migrator().ColumnTypes(table.model)
		if err != nil {
			return fmt.Errorf("failed to inspect table %s: %w", table.name, err)
		}
		known := make(map[string]bool, len(types))
		for _, col := range types {
			known[col.Name()] = true
		}
		columns[table.name] = known
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// Discard and recreate the tables fresh; restore is a full
		// replacement, not a merge.
		for _, table := range archiveTables {
			if err := tx.Migrator().DropTable(table.model); err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table.name, err)
			}
		}
		if err := tx.AutoMigrate(&model.Merchandise{}, &model.Consumer{}, &model.Sale{}); err != nil {
			return fmt.Errorf("failed to recreate tables: %w", err)
		}

		for _, table := range archiveTables {
			known := columns[table.name]
			for _, row := range grouped[table.name] {
				projected := make(map[string]any, len(row))
				for field, value := range row {
					if known[field] {
						projected[field] = value
					}
				}
				if len(projected) == 0 {
					continue
				}
				if err := tx.Table(table.name).Create(projected).Error; err != nil {
					return fmt.Errorf("failed to restore %s row: %w", table.name, err)
				}
			}
		}
		return nil
	})
}

// decodeArchive reads the full stream and groups rows by table,
// rejecting anything malformed before the store is touched.
func decodeArchive(r io.Reader) (map[string][]map[string]any, error) {
	tables := make(map[string]bool, len(archiveTables))
	for _, table := range archiveTables {
		tables[table.name] = true
	}

	grouped := make(map[string][]map[string]any)
	dec := json.NewDecoder(r)
	for {
		var rec archiveRecord
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return grouped, nil
			}
			return nil, fmt.Errorf("%w: corrupt archive: %v", ErrInvalidArgument, err)
		}
		if !tables[rec.Table] {
			return nil, fmt.Errorf("%w: archive references unknown table %q", ErrInvalidArgument, rec.Table)
		}
		if rec.Row == nil {
			return nil, fmt.Errorf("%w: archive record for table %q has no row payload", ErrInvalidArgument, rec.Table)
		}
		grouped[rec.Table] = append(grouped[rec.Table], rec.Row)
	}
}
