package prometheus

import (
	"time"

	"sales-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Entity operation metrics
	SaleOperationsCounter        prometheus.CounterVec
	MerchandiseOperationsCounter prometheus.CounterVec
	ConsumerOperationsCounter    prometheus.CounterVec

	// Inventory metrics
	MerchandiseInventoryGauge prometheus.GaugeVec

	// Backup/restore metrics
	BackupOperationsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful authentications",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Sale ledger metrics
	SaleOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_sale_operations_total",
			Help: "Total number of sale ledger operations",
		},
		[]string{"operation"},
	)

	// Merchandise catalog metrics
	MerchandiseOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_merchandise_operations_total",
			Help: "Total number of merchandise operations",
		},
		[]string{"operation"},
	)

	// Consumer directory metrics
	ConsumerOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_consumer_operations_total",
			Help: "Total number of consumer operations",
		},
		[]string{"operation"},
	)

	// Merchandise inventory metrics
	MerchandiseInventoryGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_merchandise_inventory",
			Help: "Current inventory level for merchandise items",
		},
		[]string{"merchandise_id", "merchandise_name"},
	)

	// Backup/restore metrics
	BackupOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_backup_operations_total",
			Help: "Total number of backup and restore operations",
		},
		[]string{"operation", "format"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordSaleOperation increments the counter for sale ledger operations
func RecordSaleOperation(operation string) {
	SaleOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordMerchandiseOperation increments the counter for merchandise operations
func RecordMerchandiseOperation(operation string) {
	MerchandiseOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordConsumerOperation increments the counter for consumer operations
func RecordConsumerOperation(operation string) {
	ConsumerOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordBackupOperation increments the counter for backup/restore operations
func RecordBackupOperation(operation string, format string) {
	BackupOperationsCounter.WithLabelValues(operation, format).Inc()
}

// UpdateMerchandiseInventory updates the gauge for merchandise inventory
func UpdateMerchandiseInventory(merchandiseID string, merchandiseName string, count float64) {
	MerchandiseInventoryGauge.WithLabelValues(merchandiseID, merchandiseName).Set(count)
}
