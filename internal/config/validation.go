package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"

	"github.com/yourusername/bad-bets/internal/calculator"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("cachebackend", validateCacheBackend)
	_ = v.RegisterValidation("leadstore", validateLeadStore)
	_ = v.RegisterValidation("calculatorkind", validateCalculatorKind)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validateCacheBackend(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case CacheBackendMemory, CacheBackendRedis:
		return true
	default:
		return false
	}
}

func validateLeadStore(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case LeadStoreMemory, LeadStorePostgres:
		return true
	default:
		return false
	}
}

func validateCalculatorKind(fl validator.FieldLevel) bool {
	_, ok := calculator.Lookup(calculator.Kind(fl.Field().String()))
	return ok
}

// validateCrossField performs checks that depend on more than one section
func validateCrossField(cfg *Config) error {
	if cfg.Leads.Store == LeadStorePostgres {
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" || cfg.Database.Port == 0 {
			return fmt.Errorf("leads store 'postgres' requires database host, port, name and user")
		}
		if cfg.Database.MaxConnections <= 0 {
			return fmt.Errorf("database max_connections must be positive")
		}
		if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
			return fmt.Errorf("max_idle_connections cannot exceed max_connections")
		}
		if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
		}
	}

	if cfg.Cache.Backend == CacheBackendRedis && cfg.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend 'redis' requires redis_addr")
	}

	if cfg.OddsFeed.Enabled {
		if cfg.OddsFeed.BaseURL == "" {
			return fmt.Errorf("odds_feed base_url is required when the feed is enabled")
		}
		if cfg.OddsFeed.RequestsPerSecond <= 0 {
			return fmt.Errorf("odds_feed requests_per_second must be positive when the feed is enabled")
		}
		if _, err := cron.ParseStandard(cfg.OddsFeed.RefreshSchedule); err != nil {
			return fmt.Errorf("invalid odds_feed refresh_schedule %q: %w", cfg.OddsFeed.RefreshSchedule, err)
		}
	}

	if cfg.Secrets.Enabled && (cfg.Secrets.Region == "" || cfg.Secrets.SecretName == "") {
		return fmt.Errorf("secrets overlay requires region and secret_name")
	}

	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/', got %q", cfg.Metrics.Path)
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var b strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.Namespace()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			fmt.Fprintf(&b, "- Field '%s' is required\n", field)
		case "url":
			fmt.Fprintf(&b, "- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			fmt.Fprintf(&b, "- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			fmt.Fprintf(&b, "- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			fmt.Fprintf(&b, "- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			fmt.Fprintf(&b, "- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "cachebackend":
			fmt.Fprintf(&b, "- Field '%s' must be one of: memory, redis\n", field)
		case "leadstore":
			fmt.Fprintf(&b, "- Field '%s' must be one of: memory, postgres\n", field)
		case "calculatorkind":
			fmt.Fprintf(&b, "- Field '%s' names an unknown calculator '%v'\n", field, value)
		case "oneof":
			fmt.Fprintf(&b, "- Field '%s' has invalid value '%v'\n", field, value)
		default:
			fmt.Fprintf(&b, "- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", b.String())
}

var testCredentialPattern = regexp.MustCompile(`(?i)test|demo|example|placeholder|YOUR_`)

// ValidateEnvironment validates environment-specific requirements
func ValidateEnvironment(cfg *Config) error {
	if !cfg.IsProduction() {
		return nil
	}
	if cfg.Leads.Store == LeadStorePostgres && isTestCredential(cfg.Database.Password) {
		return fmt.Errorf("production environment should not use test database credentials")
	}
	for provider, code := range cfg.Affiliate.Codes {
		if isTestCredential(code) {
			return fmt.Errorf("production environment should not use test affiliate code for %s", provider)
		}
	}
	return nil
}

// isTestCredential checks if a credential looks like a test credential
func isTestCredential(credential string) bool {
	return testCredentialPattern.MatchString(credential)
}
