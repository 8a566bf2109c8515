// Package health serves the liveness and readiness endpoints.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Pinger is a dependency that can report its connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// Checker answers health probes for the service and its dependencies.
type Checker struct {
	serviceName  string
	version      string
	logger       *logrus.Entry
	pingTimeout  time.Duration
	mu           sync.RWMutex
	ready        bool
	dependencies map[string]Pinger
}

// NewChecker creates a checker. It reports not ready until SetReady(true).
func NewChecker(serviceName, version string, log *logrus.Logger) *Checker {
	return &Checker{
		serviceName:  serviceName,
		version:      version,
		logger:       log.WithField("component", "health"),
		pingTimeout:  3 * time.Second,
		dependencies: make(map[string]Pinger),
	}
}

// AddDependency registers a dependency checked by /ready.
func (c *Checker) AddDependency(name string, p Pinger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dependencies[name] = p
}

// SetReady marks the service as ready to accept traffic.
func (c *Checker) SetReady(ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = ready
}

// IsReady returns whether the service is ready.
func (c *Checker) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Routes mounts /health, /live and /ready.
func (c *Checker) Routes(r chi.Router) {
	r.Get("/health", c.handleHealth)
	r.Get("/live", c.handleLive)
	r.Get("/ready", c.handleReady)
}

func (c *Checker) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   c.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   c.version,
	})
}

func (c *Checker) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: c.serviceName})
}

func (c *Checker) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	allHealthy := true

	if c.IsReady() {
		checks["service"] = "ok"
	} else {
		allHealthy = false
		checks["service"] = "not_ready"
	}

	c.mu.RLock()
	names := make([]string, 0, len(c.dependencies))
	for name := range c.dependencies {
		names = append(names, name)
	}
	deps := make(map[string]Pinger, len(c.dependencies))
	for name, p := range c.dependencies {
		deps[name] = p
	}
	c.mu.RUnlock()
	sort.Strings(names)

	for _, name := range names {
		ctx, cancel := context.WithTimeout(r.Context(), c.pingTimeout)
		err := deps[name].Ping(ctx)
		cancel()
		if err != nil {
			allHealthy = false
			checks[name] = "error: " + err.Error()
			c.logger.WithError(err).WithField("dependency", name).Warn("Readiness check failed")
			continue
		}
		checks[name] = "ok"
	}

	response := ReadyResponse{
		Status:   "ok",
		Service:  c.serviceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}
	status := http.StatusOK
	if !allHealthy {
		response.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
