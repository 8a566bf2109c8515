package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/bad-bets/internal/affiliate"
	"github.com/yourusername/bad-bets/internal/calculator"
	"github.com/yourusername/bad-bets/internal/models"
	"github.com/yourusername/bad-bets/internal/service"
)

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, calculator.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, calculator.ErrUnknownCalculator),
		errors.Is(err, affiliate.ErrUnknownProvider),
		errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidLead):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrDuplicateLead):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondErr writes err with its mapped status. Internal errors are logged
// and replaced by a generic message.
func (h *Handler) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"path":       r.URL.Path,
			"request_id": middleware.GetReqID(r.Context()),
		}).Error("Request failed")
		respondError(w, status, "internal server error")
		return
	}
	respondError(w, status, err.Error())
}

// requestLogger logs one line per request through logrus.
func requestLogger(log *logrus.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				entry := log.WithFields(logrus.Fields{
					"method":      r.Method,
					"path":        r.URL.Path,
					"status":      ww.Status(),
					"bytes":       ww.BytesWritten(),
					"duration_ms": time.Since(start).Milliseconds(),
					"remote_addr": r.RemoteAddr,
					"request_id":  middleware.GetReqID(r.Context()),
				})
				if ww.Status() >= http.StatusInternalServerError {
					entry.Warn("HTTP request")
					return
				}
				entry.Debug("HTTP request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
