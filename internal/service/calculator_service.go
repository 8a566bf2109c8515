// Package service composes the calculators, catalogue, lead store, cache and
// odds feed into the operations served by the API and CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/bad-bets/internal/cache"
	"github.com/yourusername/bad-bets/internal/calculator"
	"github.com/yourusername/bad-bets/internal/config"
	"github.com/yourusername/bad-bets/internal/logger"
	"github.com/yourusername/bad-bets/internal/metrics"
)

// Calculation is a calculator result in its display form.
type Calculation struct {
	Kind   calculator.Kind   `json:"kind"`
	Fields map[string]string `json:"fields"`
	Cached bool              `json:"cached,omitempty"`
}

// CalculatorService runs calculators with optional result caching.
type CalculatorService struct {
	cache   cache.Cache
	ttl     time.Duration
	enabled map[calculator.Kind]bool
	logger  *logger.CalculatorLogger
}

// NewCalculatorService creates a calculator service. A nil cache, or
// cfg.CacheResults set to false, disables caching. An empty enabled list
// serves every registered calculator.
func NewCalculatorService(c cache.Cache, cfg config.CalculatorsConfig, ttl time.Duration, log *logger.CalculatorLogger) *CalculatorService {
	s := &CalculatorService{ttl: ttl, logger: log}
	if cfg.CacheResults {
		s.cache = c
	}
	if len(cfg.Enabled) > 0 {
		s.enabled = make(map[calculator.Kind]bool, len(cfg.Enabled))
		for _, kind := range cfg.Enabled {
			s.enabled[calculator.Kind(kind)] = true
		}
	}
	return s
}

func (s *CalculatorService) isEnabled(kind calculator.Kind) bool {
	return s.enabled == nil || s.enabled[kind]
}

// List returns the descriptors of the enabled calculators.
func (s *CalculatorService) List() []calculator.Descriptor {
	all := calculator.Descriptors()
	out := make([]calculator.Descriptor, 0, len(all))
	for _, d := range all {
		if s.isEnabled(d.Kind) {
			out = append(out, d)
		}
	}
	return out
}

// Calculate runs the calculator named kind on the given inputs. Fields the
// calculator does not read are ignored. Failed calculations are never cached.
func (s *CalculatorService) Calculate(ctx context.Context, kind calculator.Kind, in calculator.Inputs) (Calculation, error) {
	desc, ok := calculator.Lookup(kind)
	if !ok || !s.isEnabled(kind) {
		return Calculation{}, fmt.Errorf("%w: %q", calculator.ErrUnknownCalculator, kind)
	}

	start := time.Now()
	inputs := in.Only(desc.Fields...)

	normalized, err := calculator.Normalize(kind, inputs)
	if err != nil {
		return Calculation{}, s.rejected(kind, inputs, err, start)
	}
	key := cacheKey(kind, normalized)

	if s.cache != nil {
		var cached Calculation
		hit, err := cache.GetJSON(ctx, s.cache, key, &cached)
		if err != nil {
			s.logger.LogCacheError("get", key, err)
		} else if hit {
			cached.Cached = true
			metrics.RecordCacheHit()
			metrics.RecordCalculation(string(kind), metrics.OutcomeOK, time.Since(start).Seconds())
			s.logger.LogCalculation(string(kind), normalized, true, time.Since(start))
			return cached, nil
		}
	}

	result, err := calculator.Compute(kind, inputs)
	if err != nil {
		return Calculation{}, s.rejected(kind, inputs, err, start)
	}

	calc := Calculation{Kind: result.Kind(), Fields: result.Fields()}
	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, calc, s.ttl); err != nil {
			s.logger.LogCacheError("set", key, err)
		}
	}

	metrics.RecordCalculation(string(kind), metrics.OutcomeOK, time.Since(start).Seconds())
	s.logger.LogCalculation(string(kind), normalized, false, time.Since(start))
	return calc, nil
}

// rejected records a failed calculation and returns err.
func (s *CalculatorService) rejected(kind calculator.Kind, inputs calculator.Inputs, err error, start time.Time) error {
	outcome := metrics.OutcomeError
	if errors.Is(err, calculator.ErrInvalidInput) {
		outcome = metrics.OutcomeInvalid
	}
	metrics.RecordCalculation(string(kind), outcome, time.Since(start).Seconds())
	s.logger.LogRejectedInput(string(kind), inputs.Canonical(), err)
	return err
}

func cacheKey(kind calculator.Kind, normalized string) string {
	return "calc:" + string(kind) + ":" + normalized
}
