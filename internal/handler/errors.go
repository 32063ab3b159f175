package handler

import (
	"errors"
	"net/http"
	"strconv"

	"sales-service/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// serviceError translates a service-layer failure into the matching HTTP
// response. Unrecognized errors become a 500 with a generic body so
// internals never leak to the client.
func serviceError(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		log.Error("Internal error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err == nil
}
