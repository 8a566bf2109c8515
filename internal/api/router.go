// Package api exposes the calculators, the catalogue, alert subscriptions and
// affiliate redirects over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/bad-bets/internal/affiliate"
	"github.com/yourusername/bad-bets/internal/catalog"
	"github.com/yourusername/bad-bets/internal/health"
	"github.com/yourusername/bad-bets/internal/logger"
	"github.com/yourusername/bad-bets/internal/metrics"
	"github.com/yourusername/bad-bets/internal/service"
)

// Deps holds everything the handlers need.
type Deps struct {
	Calculators    *service.CalculatorService
	Leads          *service.LeadService
	Comparisons    *service.ComparisonService
	Catalog        *catalog.Catalog
	Links          *affiliate.Builder
	Health         *health.Checker
	Audit          *logger.AuditLogger
	Logger         *logrus.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
	MetricsPath    string // empty disables the metrics endpoint
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	calculators *service.CalculatorService
	leads       *service.LeadService
	comparisons *service.ComparisonService
	catalog     *catalog.Catalog
	links       *affiliate.Builder
	audit       *logger.AuditLogger
	logger      *logrus.Entry
	upgrader    *originUpgrader
}

// NewRouter builds the HTTP handler tree.
func NewRouter(d Deps) http.Handler {
	h := &Handler{
		calculators: d.Calculators,
		leads:       d.Leads,
		comparisons: d.Comparisons,
		catalog:     d.Catalog,
		links:       d.Links,
		audit:       d.Audit,
		logger:      d.Logger.WithField("component", "api"),
		upgrader:    newOriginUpgrader(d.AllowedOrigins),
	}

	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if d.Health != nil {
		d.Health.Routes(r)
	}
	if d.MetricsPath != "" {
		r.Handle(d.MetricsPath, metrics.Handler())
	}

	// Long-lived; must not sit behind the request timeout.
	r.Get("/ws/calculate", h.CalculateStream)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(timeout))

		r.Get("/go/{provider}", h.Redirect)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/calculators", h.ListCalculators)
			r.Post("/calculators/{kind}", h.Calculate)

			r.Get("/providers", h.ListProviders)
			r.Get("/providers/{id}", h.GetProvider)

			r.Get("/bad-bets", h.ListBadBets)
			r.Get("/bad-bets/{id}", h.GetBadBet)
			r.Get("/sports", h.ListSports)

			r.Get("/comparisons", h.ListComparisons)

			r.Post("/leads", h.Subscribe)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
