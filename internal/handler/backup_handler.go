package handler

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"sales-service/internal/service"
	"sales-service/pkg/database"
	"sales-service/pkg/logger"
	"sales-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ExportBackup handles downloading the store, either as a columnar JSON
// archive (format=json, the default) or as the raw store file (format=db).
func ExportBackup(c echo.Context) error {
	log := logger.FromContext(c)
	format := c.QueryParam("format")
	if format == "" {
		format = "json"
	}
	log.Info("Exporting backup", zap.String("format", format))

	defer prometheus.TrackDBOperation("select")(time.Now())

	// Buffer the export so a mid-stream failure can still produce an
	// error response instead of a truncated download.
	var buf bytes.Buffer
	switch format {
	case "json":
		if err := service.ExportArchive(database.GetDB(), &buf); err != nil {
			prometheus.RecordBackupOperation("export_failed", format)
			return serviceError(c, log, err)
		}
		prometheus.RecordBackupOperation("export", format)
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="salesmanager-backup.json"`)
		return c.Blob(http.StatusOK, "application/x-ndjson", buf.Bytes())
	case "db":
		if err := service.ExportRaw(database.GetDB(), &buf); err != nil {
			prometheus.RecordBackupOperation("export_failed", format)
			return serviceError(c, log, err)
		}
		prometheus.RecordBackupOperation("export", format)
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="salesmanager-backup.db"`)
		return c.Blob(http.StatusOK, "application/octet-stream", buf.Bytes())
	default:
		log.Warn("Unsupported backup format requested", zap.String("format", format))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unsupported backup format, expected json or db"})
	}
}

// RestoreBackup handles replacing the store's contents from an uploaded
// backup file. The file extension decides the codec; unsupported
// extensions are rejected before anything is touched.
func RestoreBackup(c echo.Context) error {
	log := logger.FromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("Restore request without backup file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Backup file is required"})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	log.Info("Restoring backup",
		zap.String("filename", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size))

	src, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Failed to read backup file"})
	}
	defer src.Close()

	switch ext {
	case ".json", ".jsonl":
		if err := service.RestoreArchive(database.GetDB(), src); err != nil {
			prometheus.RecordBackupOperation("restore_failed", "json")
			return serviceError(c, log, err)
		}
		prometheus.RecordBackupOperation("restore", "json")
	case ".db", ".sqlite", ".sqlite3":
		data, err := io.ReadAll(src)
		if err != nil {
			log.Error("Failed to read uploaded file", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Failed to read backup file"})
		}
		if !database.IsSQLiteStore(data) {
			prometheus.RecordBackupOperation("restore_failed", "db")
			log.Warn("Uploaded file is not a SQLite store")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Uploaded file is not a valid database backup"})
		}
		if err := database.ReplaceStore(data); err != nil {
			prometheus.RecordBackupOperation("restore_failed", "db")
			return serviceError(c, log, err)
		}
		prometheus.RecordBackupOperation("restore", "db")
	default:
		log.Warn("Unsupported backup file extension", zap.String("extension", ext))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unsupported backup file type"})
	}

	log.Info("Backup restored successfully", zap.String("filename", fileHeader.Filename))
	return c.JSON(http.StatusOK, echo.Map{"message": "Backup restored successfully"})
}
