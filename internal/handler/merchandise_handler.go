package handler

import (
	"net/http"
	"strconv"
	"time"

	"sales-service/internal/service"
	"sales-service/pkg/database"
	"sales-service/pkg/logger"
	"sales-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// MerchandiseRequest defines the structure for merchandise creation/update requests
type MerchandiseRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// ListMerchandise handles retrieving the full catalog
func ListMerchandise(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing merchandise")
	prometheus.RecordMerchandiseOperation("list")

	defer prometheus.TrackDBOperation("select")(time.Now())

	items, err := service.ListMerchandise(database.GetDB())
	if err != nil {
		return serviceError(c, log, err)
	}

	log.Info("Merchandise retrieved successfully", zap.Int("count", len(items)))
	return c.JSON(http.StatusOK, items)
}

// CreateMerchandise handles adding a new item to the catalog
func CreateMerchandise(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new merchandise")
	prometheus.RecordMerchandiseOperation("create")

	var req MerchandiseRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	log.Info("Merchandise creation request",
		zap.String("name", req.Name),
		zap.Int("quantity", req.Quantity),
		zap.Float64("price", req.Price))

	defer prometheus.TrackDBOperation("insert")(time.Now())

	merch, err := service.CreateMerchandise(database.GetDB(), service.MerchandiseInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		return serviceError(c, log, err)
	}

	prometheus.UpdateMerchandiseInventory(
		strconv.FormatUint(uint64(merch.ID), 10), merch.Name, float64(merch.Quantity))

	log.Info("Merchandise created successfully",
		zap.Uint("merchandise_id", merch.ID),
		zap.String("name", merch.Name))
	return c.JSON(http.StatusCreated, merch)
}

// UpdateMerchandise handles replacing an item's fields
func UpdateMerchandise(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid merchandise id"})
	}
	log.Info("Updating merchandise", zap.Uint("merchandise_id", id))
	prometheus.RecordMerchandiseOperation("update")

	var req MerchandiseRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("merchandise_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	merch, err := service.UpdateMerchandise(database.GetDB(), id, service.MerchandiseInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		return serviceError(c, log, err)
	}

	prometheus.UpdateMerchandiseInventory(
		strconv.FormatUint(uint64(merch.ID), 10), merch.Name, float64(merch.Quantity))

	log.Info("Merchandise updated successfully",
		zap.Uint("merchandise_id", merch.ID),
		zap.String("name", merch.Name),
		zap.Int("quantity", merch.Quantity),
		zap.Float64("price", merch.Price))
	return c.JSON(http.StatusOK, merch)
}

// DeleteMerchandise handles removing an item that has no sales records
func DeleteMerchandise(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid merchandise id"})
	}
	log.Info("Deleting merchandise", zap.Uint("merchandise_id", id))
	prometheus.RecordMerchandiseOperation("delete")

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := service.DeleteMerchandise(database.GetDB(), id); err != nil {
		return serviceError(c, log, err)
	}

	log.Info("Merchandise deleted successfully", zap.Uint("merchandise_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Merchandise deleted successfully"})
}
