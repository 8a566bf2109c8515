// Package config provides configuration management for the Bad Bets service.
package config

import (
	"fmt"
	"time"
)

// Lead store backends.
const (
	LeadStoreMemory   = "memory"
	LeadStorePostgres = "postgres"
)

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Cache       CacheConfig       `mapstructure:"cache" validate:"required"`
	Leads       LeadsConfig       `mapstructure:"leads" validate:"required"`
	OddsFeed    OddsFeedConfig    `mapstructure:"odds_feed"`
	Affiliate   AffiliateConfig   `mapstructure:"affiliate"`
	Calculators CalculatorsConfig `mapstructure:"calculators"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
	Secrets     SecretsConfig     `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the HTTP listener configuration
type ServerConfig struct {
	Host                   string   `mapstructure:"host"`
	Port                   int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds     int      `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds    int      `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	RequestTimeoutSeconds  int      `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
	AllowedOrigins         []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig represents database connection configuration. It is only
// required when leads are stored in PostgreSQL.
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"gte=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"gte=0"`
}

// CacheConfig represents the calculation and odds snapshot cache
type CacheConfig struct {
	Backend                string `mapstructure:"backend" validate:"required,cachebackend"`
	TTLSeconds             int    `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	CleanupIntervalSeconds int    `mapstructure:"cleanup_interval_seconds" validate:"required,gt=0"`
	KeyPrefix              string `mapstructure:"key_prefix"`
	RedisAddr              string `mapstructure:"redis_addr"`
	RedisPassword          string `mapstructure:"redis_password"`
	RedisDB                int    `mapstructure:"redis_db" validate:"gte=0"`
}

// LeadsConfig represents alert subscription storage
type LeadsConfig struct {
	Store string `mapstructure:"store" validate:"required,leadstore"`
}

// OddsFeedConfig represents the live odds feed used for comparisons
type OddsFeedConfig struct {
	Enabled              bool    `mapstructure:"enabled"`
	BaseURL              string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey               string  `mapstructure:"api_key"`
	RequestsPerSecond    float64 `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst                int     `mapstructure:"burst" validate:"gte=0"`
	TimeoutSeconds       int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	RetryAttempts        int     `mapstructure:"retry_attempts" validate:"gte=0"`
	MaxConsecutiveErrors int     `mapstructure:"max_consecutive_errors" validate:"gte=0"`
	RefreshSchedule      string  `mapstructure:"refresh_schedule"`
}

// AffiliateConfig represents tracking defaults and partner codes per provider
type AffiliateConfig struct {
	DefaultSource string            `mapstructure:"default_source"`
	DefaultMedium string            `mapstructure:"default_medium"`
	Codes         map[string]string `mapstructure:"codes"`
}

// CalculatorsConfig selects the calculators exposed over HTTP. An empty list
// exposes all of them.
type CalculatorsConfig struct {
	Enabled      []string `mapstructure:"enabled" validate:"omitempty,dive,calculatorkind"`
	CacheResults bool     `mapstructure:"cache_results"`
}

// CatalogConfig points at an optional catalogue file replacing the embedded one
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// SecretsConfig locates the AWS Secrets Manager overlay
type SecretsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Region     string `mapstructure:"region"`
	SecretName string `mapstructure:"secret_name"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ListenAddr returns the host:port the HTTP server binds to
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// CacheTTL returns the cache entry lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// RequestTimeout returns the per-request handler deadline
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns how long in-flight requests get on shutdown
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}
