package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sales-service/internal/model"

	"gorm.io/gorm"
)

// archiveRecord is one line of the columnar interchange stream: the
// originating table name plus a self-describing field/value row payload.
type archiveRecord struct {
	Table string         `json:"table"`
	Row   map[string]any `json:"row"`
}

type archiveTable struct {
	name  string
	model any
}

// archiveTables lists the exported tables in dependency order:
// merchandise and consumers first, sales (which references both) last.
// Restore inserts in this same order so foreign keys always resolve.
var archiveTables = []archiveTable{
	{name: "merchandise", model: &model.Merchandise{}},
	{name: "consumers", model: &model.Consumer{}},
	{name: "sales", model: &model.Sale{}},
}

// ExportArchive writes every row of all tables to w as a JSON-lines
// stream of (table, row) records. All tables are read in one transaction
// so the archive is a single point-in-time snapshot; a ledger write
// landing mid-export cannot split a sale from its stock decrement.
func ExportArchive(db *gorm.DB, w io.Writer) error {
	enc := json.NewEncoder(w)
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range archiveTables {
			var rows []map[string]any
			if err := tx.Table(table.name).Find(&rows).Error; err != nil {
				return fmt.Errorf("failed to read table %s: %w", table.name, err)
			}
			for _, row := range rows {
				if err := enc.Encode(archiveRecord{Table: table.name, Row: row}); err != nil {
					return fmt.Errorf("failed to encode %s row: %w", table.name, err)
				}
			}
		}
		return nil
	})
}

// ExportRaw streams a consistent byte-for-byte snapshot of the whole
// store to w. VACUUM INTO gives a point-in-time copy without blocking
// other readers.
func ExportRaw(db *gorm.DB, w io.Writer) error {
	tmpDir, err := os.MkdirTemp("", "salesmanager-backup-")
	if err != nil {
		return fmt.Errorf("failed to stage snapshot: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	snapshot := filepath.Join(tmpDir, "snapshot.db")
	if err := db.Exec("VACUUM INTO ?", snapshot).Error; err != nil {
		return fmt.Errorf("failed to snapshot store: %w", err)
	}

	f, err := os.Open(snapshot)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to stream snapshot: %w", err)
	}
	return nil
}
