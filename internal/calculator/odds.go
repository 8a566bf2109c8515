// Package calculator implements the betting-math calculators behind the
// Bad Bets tools: bad-bet severity, expected value, Kelly stake sizing,
// two-way arbitrage and bookmaker margin normalisation.
//
// Every calculator is a pure function from a typed input record to an
// immutable result record. Inputs that are not finite numbers, or that fall
// outside a calculator's domain, produce ErrInvalidInput and no result.
package calculator

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput is returned when an input is missing, non-numeric or out of domain.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownCalculator is returned when no calculator is registered for a kind.
	ErrUnknownCalculator = errors.New("unknown calculator")
)

// ImpliedProbability returns the implied probability of decimal odds in percent.
func ImpliedProbability(odds float64) float64 {
	return 100 / odds
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func invalid(field, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, fmt.Sprintf(format, args...))
}

// requireOdds accepts finite decimal odds above 1.0.
func requireOdds(field string, odds float64) error {
	if !isFinite(odds) {
		return invalid(field, "must be a finite number")
	}
	if odds <= 1 {
		return invalid(field, "must be greater than 1.0, got %v", odds)
	}
	return nil
}

// requireAmount accepts finite, non-negative monetary amounts.
func requireAmount(field string, amount float64) error {
	if !isFinite(amount) {
		return invalid(field, "must be a finite number")
	}
	if amount < 0 {
		return invalid(field, "must not be negative, got %v", amount)
	}
	return nil
}

// requirePercent accepts a probability expressed in percent.
func requirePercent(field string, p float64) error {
	if !isFinite(p) {
		return invalid(field, "must be a finite number")
	}
	if p < 0 || p > 100 {
		return invalid(field, "must be between 0 and 100, got %v", p)
	}
	return nil
}

// ValidateOdds returns ErrInvalidInput unless odds are finite and above 1.0.
func ValidateOdds(field string, odds float64) error {
	return requireOdds(field, odds)
}

// ValidateAmount returns ErrInvalidInput unless amount is finite and not negative.
func ValidateAmount(field string, amount float64) error {
	return requireAmount(field, amount)
}
