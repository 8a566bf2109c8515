package oddsfeed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/bad-bets/internal/config"
	"github.com/yourusername/bad-bets/internal/logger"
	"github.com/yourusername/bad-bets/internal/metrics"
)

// ErrCircuitOpen is returned while the breaker rejects requests.
var ErrCircuitOpen = errors.New("circuit breaker open")

// HTTPClientConfig holds configuration for the feed HTTP client
type HTTPClientConfig struct {
	Timeout           time.Duration
	MaxRetries        int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	RateLimit         float64 // requests per second
	Burst             int
	CircuitBreakerMax int           // consecutive failures before the breaker opens
	CircuitCooldown   time.Duration // how long the breaker stays open before a probe
}

// DefaultHTTPClientConfig returns recommended defaults
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:           10 * time.Second,
		MaxRetries:        3,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      5 * time.Second,
		RateLimit:         2.0,
		Burst:             1,
		CircuitBreakerMax: 5,
		CircuitCooldown:   time.Minute,
	}
}

// HTTPClientConfigFrom overlays the non-zero feed settings on the defaults.
func HTTPClientConfigFrom(cfg config.OddsFeedConfig) HTTPClientConfig {
	out := DefaultHTTPClientConfig()
	if cfg.TimeoutSeconds > 0 {
		out.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if cfg.RetryAttempts > 0 {
		out.MaxRetries = cfg.RetryAttempts
	}
	if cfg.RequestsPerSecond > 0 {
		out.RateLimit = cfg.RequestsPerSecond
	}
	if cfg.Burst > 0 {
		out.Burst = cfg.Burst
	}
	if cfg.MaxConsecutiveErrors > 0 {
		out.CircuitBreakerMax = cfg.MaxConsecutiveErrors
	}
	return out
}

// RateLimitedHTTPClient wraps retryablehttp.Client with rate limiting and a
// consecutive-error circuit breaker.
type RateLimitedHTTPClient struct {
	client     *retryablehttp.Client
	limiter    *rate.Limiter
	breakerMax int
	cooldown   time.Duration
	log        *logrus.Entry
	audit      *logger.AuditLogger
	now        func() time.Time

	mu                sync.Mutex
	consecutiveErrors int
	isOpen            bool
	openedAt          time.Time
	lastError         error
}

// NewRateLimitedHTTPClient creates a new rate-limited HTTP client. audit may be nil.
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, log *logrus.Logger, audit *logger.AuditLogger) *RateLimitedHTTPClient {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	entry := log.WithField("component", "oddsfeed")

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = customRetryPolicy()
	retryClient.Logger = retryLogger{entry: entry}

	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &RateLimitedHTTPClient{
		client:     retryClient,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
		breakerMax: cfg.CircuitBreakerMax,
		cooldown:   cfg.CircuitCooldown,
		log:        entry,
		audit:      audit,
		now:        time.Now,
	}
}

// Do executes an HTTP request with rate limiting and circuit breaker
func (c *RateLimitedHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.allow(); err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	retryReq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap request: %w", err)
	}
	resp, err := c.client.Do(retryReq.WithContext(ctx))
	if err != nil {
		c.recordFailure(err)
		return nil, err
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		c.recordFailure(fmt.Errorf("upstream status %d", resp.StatusCode))
		return resp, nil
	}

	c.recordSuccess()
	return resp, nil
}

// allow rejects requests while the breaker is open. Once the cooldown has
// elapsed a single probe request is let through.
func (c *RateLimitedHTTPClient) allow() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isOpen {
		return nil
	}
	if c.cooldown > 0 && c.now().Sub(c.openedAt) >= c.cooldown {
		// Re-arm so concurrent callers keep failing fast until the probe returns.
		c.openedAt = c.now()
		return nil
	}
	return fmt.Errorf("%w: %v", ErrCircuitOpen, c.lastError)
}

func (c *RateLimitedHTTPClient) recordFailure(err error) {
	c.mu.Lock()
	c.consecutiveErrors++
	c.lastError = err
	tripped := !c.isOpen && c.breakerMax > 0 && c.consecutiveErrors >= c.breakerMax
	if tripped {
		c.isOpen = true
		c.openedAt = c.now()
	}
	count := c.consecutiveErrors
	c.mu.Unlock()

	if !tripped {
		return
	}
	c.log.WithError(err).WithField("consecutive_errors", count).Warn("Circuit breaker opened")
	metrics.RecordCircuitBreakerTrip()
	if c.audit != nil {
		c.audit.LogCircuitBreakerEvent("opened", err.Error(), count)
	}
}

func (c *RateLimitedHTTPClient) recordSuccess() {
	c.mu.Lock()
	wasOpen := c.isOpen
	c.consecutiveErrors = 0
	c.isOpen = false
	c.lastError = nil
	c.mu.Unlock()

	if !wasOpen {
		return
	}
	c.log.Info("Circuit breaker closed")
	metrics.RecordCircuitBreakerReset()
	if c.audit != nil {
		c.audit.LogCircuitBreakerEvent("closed", "probe succeeded", 0)
	}
}

// IsOpen reports whether the breaker is currently open.
func (c *RateLimitedHTTPClient) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}

// Get executes a GET request
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	return c.Do(ctx, req)
}

// Close closes any resources held by the client
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// customRetryPolicy retries network errors, 429 and the transient 5xx codes.
func customRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, err
		}

		switch resp.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true, nil
		}
		return false, nil
	}
}

// retryLogger routes retryablehttp output to logrus at debug level.
type retryLogger struct {
	entry *logrus.Entry
}

func (l retryLogger) fields(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.entry.WithFields(fields)
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Warn(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Warn(msg)
}
