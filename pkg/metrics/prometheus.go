package metrics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsCollector struct {
	registry            *prometheus.Registry
	operationsProcessed *prometheus.CounterVec
	operationsFailed    *prometheus.CounterVec
	operationDuration   *prometheus.HistogramVec
	accountBalance      *prometheus.GaugeVec
	logger              *slog.Logger
}

func NewMetricsCollector(logger *slog.Logger) *MetricsCollector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()

	return &MetricsCollector{
		registry: registry,
		operationsProcessed: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "account_operations_processed_total",
			Help: "Total number of account operations applied or ignored",
		}, []string{"type"}),
		operationsFailed: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "account_operations_failed_total",
			Help: "Total number of account operations rejected",
		}, []string{"type"}),
		operationDuration: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "account_operation_duration_seconds",
			Help:    "Time taken to process an account operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"type"}),
		accountBalance: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "account_balance",
			Help: "Current account balance",
		}, []string{"account_number"}),
		logger: logger,
	}
}

func (m *MetricsCollector) RecordOperation(opType string, duration time.Duration, success bool) {
	if success {
		m.operationsProcessed.WithLabelValues(opType).Inc()
	} else {
		m.operationsFailed.WithLabelValues(opType).Inc()
	}
	m.operationDuration.WithLabelValues(opType).Observe(duration.Seconds())
}

func (m *MetricsCollector) UpdateAccountBalance(accountNumber string, balance float64) {
	m.accountBalance.WithLabelValues(accountNumber).Set(balance)
}

func (m *MetricsCollector) GetHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartMetricsServer serves /metrics on addr in the background. The caller
// owns the returned server and must shut it down.
func (m *MetricsCollector) StartMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.GetHandler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		m.logger.Info("Starting metrics server", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.logger.Error("Metrics server failed", slog.String("error", err.Error()))
		}
	}()

	return server
}
