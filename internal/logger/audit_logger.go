package logger

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogLeadCaptured logs a new alert subscription. Only the email domain is
// recorded.
func (al *AuditLogger) LogLeadCaptured(leadID, email, source, sport string, createdAt time.Time) {
	al.WithFields(logrus.Fields{
		"lead_id":      leadID,
		"email_domain": emailDomain(email),
		"source":       source,
		"sport":        sport,
		"timestamp":    createdAt.Unix(),
	}).Info("Lead captured")
}

// LogAffiliateRedirect logs an outbound affiliate redirect.
func (al *AuditLogger) LogAffiliateRedirect(providerID, source, campaign, medium, remoteAddr string) {
	al.WithFields(logrus.Fields{
		"provider_id": providerID,
		"source":      source,
		"campaign":    campaign,
		"medium":      medium,
		"remote_addr": remoteAddr,
	}).Info("Affiliate redirect issued")
}

// LogCircuitBreakerEvent logs circuit breaker events.
func (al *AuditLogger) LogCircuitBreakerEvent(eventType, reason string, consecutiveErrors int) {
	al.WithFields(logrus.Fields{
		"event_type":         eventType,
		"reason":             reason,
		"consecutive_errors": consecutiveErrors,
	}).Warn("Circuit breaker event recorded")
}

func emailDomain(email string) string {
	if i := strings.LastIndexByte(email, '@'); i >= 0 {
		return email[i+1:]
	}
	return ""
}
