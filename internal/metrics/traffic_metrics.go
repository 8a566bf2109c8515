package metrics

import "github.com/prometheus/client_golang/prometheus"

// Odds feed refresh statuses.
const (
	RefreshOK       = "ok"
	RefreshFailed   = "failed"
	RefreshFallback = "fallback"
)

// Lead, affiliate and odds feed metrics
var (
	LeadsCapturedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_captured_total",
		Help:      "Total number of alert subscriptions by source",
	}, []string{"source"})

	AffiliateRedirectsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "affiliate_redirects_total",
		Help:      "Total number of affiliate redirects by provider",
	}, []string{"provider"})

	OddsFeedRefreshesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "odds_feed_refreshes_total",
		Help:      "Total number of comparison refreshes by status",
	}, []string{"status"})

	OddsFeedBreakerOpen = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "odds_feed_breaker_open",
		Help:      "1 while the odds feed circuit breaker is open",
	})

	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of odds feed circuit breaker trips",
	})
)

// RecordLeadCaptured records a new subscription.
func RecordLeadCaptured(source string) {
	LeadsCapturedTotal.WithLabelValues(source).Inc()
}

// RecordAffiliateRedirect records an outbound affiliate redirect.
func RecordAffiliateRedirect(provider string) {
	AffiliateRedirectsTotal.WithLabelValues(provider).Inc()
}

// RecordOddsFeedRefresh records the status of one comparison refresh.
func RecordOddsFeedRefresh(status string) {
	OddsFeedRefreshesTotal.WithLabelValues(status).Inc()
}

// RecordCircuitBreakerTrip records the breaker opening.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
	OddsFeedBreakerOpen.Set(1)
}

// RecordCircuitBreakerReset records the breaker closing again.
func RecordCircuitBreakerReset() {
	OddsFeedBreakerOpen.Set(0)
}
