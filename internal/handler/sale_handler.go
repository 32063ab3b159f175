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

// SaleRequest defines the structure for sale recording/amendment requests
type SaleRequest struct {
	MerchandiseID uint `json:"merchandise_id" validate:"required"`
	ConsumerID    uint `json:"consumer_id" validate:"required"`
	QuantitySold  int  `json:"quantity_sold" validate:"required,gt=0"`
}

// ListSales handles retrieving the sales history with optional filtering
func ListSales(c echo.Context) error {
	log := logger.FromContext(c)
	filter := service.SalesFilter{
		Period:    c.QueryParam("period"),
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
	}
	log.Info("Listing sales",
		zap.String("period", filter.Period),
		zap.String("start_date", filter.StartDate),
		zap.String("end_date", filter.EndDate))
	prometheus.RecordSaleOperation("list")

	defer prometheus.TrackDBOperation("select")(time.Now())

	records, err := service.ListSales(database.GetDB(), filter, time.Now())
	if err != nil {
		return serviceError(c, log, err)
	}

	log.Info("Sales retrieved successfully", zap.Int("count", len(records)))
	return c.JSON(http.StatusOK, records)
}

// CreateSale handles recording a sale against merchandise stock
func CreateSale(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Recording sale")
	prometheus.RecordSaleOperation("record")

	var req SaleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	log.Info("Sale recording request",
		zap.Uint("merchandise_id", req.MerchandiseID),
		zap.Uint("consumer_id", req.ConsumerID),
		zap.Int("quantity_sold", req.QuantitySold))

	defer prometheus.TrackDBOperation("transaction")(time.Now())

	sale, err := service.RecordSale(database.GetDB(), service.RecordSaleInput{
		MerchandiseID: req.MerchandiseID,
		ConsumerID:    req.ConsumerID,
		QuantitySold:  req.QuantitySold,
	})
	if err != nil {
		return serviceError(c, log, err)
	}

	refreshInventoryGauge(sale.MerchandiseID)

	log.Info("Sale recorded successfully",
		zap.Uint("sale_id", sale.ID),
		zap.Uint("merchandise_id", sale.MerchandiseID),
		zap.Float64("total_price", sale.TotalPrice))
	return c.JSON(http.StatusCreated, sale)
}

// UpdateSale handles amending a sale's quantity and consumer
func UpdateSale(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid sale id"})
	}
	log.Info("Amending sale", zap.Uint("sale_id", id))
	prometheus.RecordSaleOperation("amend")

	var req SaleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("sale_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("transaction")(time.Now())

	sale, err := service.AmendSale(database.GetDB(), id, service.AmendSaleInput{
		ConsumerID:   req.ConsumerID,
		QuantitySold: req.QuantitySold,
	})
	if err != nil {
		return serviceError(c, log, err)
	}

	refreshInventoryGauge(sale.MerchandiseID)

	log.Info("Sale amended successfully",
		zap.Uint("sale_id", sale.ID),
		zap.Int("quantity_sold", sale.QuantitySold),
		zap.Float64("total_price", sale.TotalPrice))
	return c.JSON(http.StatusOK, sale)
}

// DeleteSale handles reversing a sale and restoring its stock
func DeleteSale(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid sale id"})
	}
	log.Info("Reversing sale", zap.Uint("sale_id", id))
	prometheus.RecordSaleOperation("reverse")

	defer prometheus.TrackDBOperation("transaction")(time.Now())

	if err := service.ReverseSale(database.GetDB(), id); err != nil {
		return serviceError(c, log, err)
	}

	log.Info("Sale reversed successfully", zap.Uint("sale_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Sale deleted successfully"})
}

// refreshInventoryGauge pushes the item's post-operation stock level to
// the inventory gauge. Gauge staleness is acceptable, so lookup errors
// are ignored here.
func refreshInventoryGauge(merchandiseID uint) {
	merch, err := service.GetMerchandise(database.GetDB(), merchandiseID)
	if err != nil {
		return
	}
	prometheus.UpdateMerchandiseInventory(
		strconv.FormatUint(uint64(merch.ID), 10), merch.Name, float64(merch.Quantity))
}
