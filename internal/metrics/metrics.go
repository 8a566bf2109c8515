// Package metrics provides the centralized Prometheus metrics registry for the service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bad_bets"

// Calculation outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Calculator metrics
var (
	CalculationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calculations_total",
		Help:      "Total number of calculator requests by calculator and outcome",
	}, []string{"calculator", "outcome"})

	CalculationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "calculation_duration_seconds",
		Help:      "Duration of calculator requests in seconds, cache lookups included",
		Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	}, []string{"calculator"})

	CalculationCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calculation_cache_hits_total",
		Help:      "Total number of calculator requests answered from cache",
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(CalculationsTotal)
		registry.MustRegister(CalculationDuration)
		registry.MustRegister(CalculationCacheHitsTotal)

		registry.MustRegister(LeadsCapturedTotal)
		registry.MustRegister(AffiliateRedirectsTotal)
		registry.MustRegister(OddsFeedRefreshesTotal)
		registry.MustRegister(OddsFeedBreakerOpen)
		registry.MustRegister(CircuitBreakerTripsTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordCalculation records a calculator request and its duration.
func RecordCalculation(calculator, outcome string, durationSeconds float64) {
	CalculationsTotal.WithLabelValues(calculator, outcome).Inc()
	CalculationDuration.WithLabelValues(calculator).Observe(durationSeconds)
}

// RecordCacheHit records a calculation served from cache.
func RecordCacheHit() {
	CalculationCacheHitsTotal.Inc()
}
