package main

import (
	"net/http"

	"sales-service/internal/handler"
	mid "sales-service/internal/middleware"
	"sales-service/pkg/config"
	"sales-service/pkg/database"
	"sales-service/pkg/jwtutil"
	"sales-service/pkg/logger"
	"sales-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env when present)
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting sales-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database (opens the store and applies migrations)
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database ready", zap.String("path", database.StorePath()))

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Bearer-token auth is optional; without a signing key the API runs
	// open like the original deployment.
	guards := []echo.MiddlewareFunc{}
	if appConfig.Auth.Enabled() {
		jwtutil.Initialize(&appConfig.Auth)
		guards = append(guards, mid.AuthMiddleware)
		log.Info("Bearer-token authentication enabled")
	}

	// Routes
	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Merchandise API routes
	merchandiseAPI := e.Group("/api/merchandise", guards...)
	merchandiseAPI.GET("", handler.ListMerchandise)
	merchandiseAPI.POST("", handler.CreateMerchandise)
	merchandiseAPI.PUT("/:id", handler.UpdateMerchandise)
	merchandiseAPI.DELETE("/:id", handler.DeleteMerchandise)

	// Sales API routes
	salesAPI := e.Group("/api/sales", guards...)
	salesAPI.GET("", handler.ListSales)
	salesAPI.POST("", handler.CreateSale)
	salesAPI.PUT("/:id", handler.UpdateSale)
	salesAPI.DELETE("/:id", handler.DeleteSale)

	// Consumer API routes
	consumerAPI := e.Group("/api/consumers", guards...)
	consumerAPI.GET("", handler.ListConsumers)
	consumerAPI.POST("", handler.CreateConsumer)
	consumerAPI.DELETE("/:id", handler.DeleteConsumer)

	// Backup and restore routes
	backupAPI := e.Group("/api", guards...)
	backupAPI.GET("/backup", handler.ExportBackup)
	backupAPI.POST("/restore", handler.RestoreBackup)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
