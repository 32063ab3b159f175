package handler

import (
	"net/http"
	"time"

	"sales-service/internal/service"
	"sales-service/pkg/database"
	"sales-service/pkg/logger"
	"sales-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ConsumerRequest defines the structure for consumer creation requests
type ConsumerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// ListConsumers handles retrieving the full directory
func ListConsumers(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing consumers")
	prometheus.RecordConsumerOperation("list")

	defer prometheus.TrackDBOperation("select")(time.Now())

	consumers, err := service.ListConsumers(database.GetDB())
	if err != nil {
		return serviceError(c, log, err)
	}

	log.Info("Consumers retrieved successfully", zap.Int("count", len(consumers)))
	return c.JSON(http.StatusOK, consumers)
}

// CreateConsumer handles adding a new consumer to the directory
func CreateConsumer(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new consumer")
	prometheus.RecordConsumerOperation("create")

	var req ConsumerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	consumer, err := service.CreateConsumer(database.GetDB(), service.ConsumerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		return serviceError(c, log, err)
	}

	log.Info("Consumer created successfully",
		zap.Uint("consumer_id", consumer.ID),
		zap.String("name", consumer.Name))
	return c.JSON(http.StatusCreated, consumer)
}

// DeleteConsumer handles removing a consumer that has no sales records
func DeleteConsumer(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid consumer id"})
	}
	log.Info("Deleting consumer", zap.Uint("consumer_id", id))
	prometheus.RecordConsumerOperation("delete")

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := service.DeleteConsumer(database.GetDB(), id); err != nil {
		return serviceError(c, log, err)
	}

	log.Info("Consumer deleted successfully", zap.Uint("consumer_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Consumer deleted successfully"})
}
