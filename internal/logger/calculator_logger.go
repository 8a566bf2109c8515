package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// CalculatorLogger provides dedicated logging for calculator requests.
type CalculatorLogger struct {
	*logrus.Entry
}

// NewCalculatorLogger creates a new calculator logger.
func NewCalculatorLogger(baseLogger *logrus.Logger) *CalculatorLogger {
	return &CalculatorLogger{
		Entry: baseLogger.WithField("component", "calculator"),
	}
}

// LogCalculation logs a completed calculation.
func (cl *CalculatorLogger) LogCalculation(kind, inputs string, cached bool, duration time.Duration) {
	cl.WithFields(logrus.Fields{
		"calculator":  kind,
		"inputs":      inputs,
		"cached":      cached,
		"duration_us": duration.Microseconds(),
	}).Debug("Calculation completed")
}

// LogRejectedInput logs input that a calculator refused.
func (cl *CalculatorLogger) LogRejectedInput(kind, inputs string, err error) {
	cl.WithFields(logrus.Fields{
		"calculator": kind,
		"inputs":     inputs,
	}).WithError(err).Debug("Calculation input rejected")
}

// LogCacheError logs a cache failure that was bypassed.
func (cl *CalculatorLogger) LogCacheError(operation, key string, err error) {
	cl.WithFields(logrus.Fields{
		"operation": operation,
		"cache_key": key,
	}).WithError(err).Warn("Calculation cache unavailable")
}
