// Package main provides the entry point for the Bad Bets HTTP service.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/bad-bets/internal/affiliate"
	"github.com/yourusername/bad-bets/internal/api"
	"github.com/yourusername/bad-bets/internal/cache"
	"github.com/yourusername/bad-bets/internal/catalog"
	"github.com/yourusername/bad-bets/internal/config"
	"github.com/yourusername/bad-bets/internal/database"
	"github.com/yourusername/bad-bets/internal/health"
	"github.com/yourusername/bad-bets/internal/logger"
	"github.com/yourusername/bad-bets/internal/metrics"
	"github.com/yourusername/bad-bets/internal/oddsfeed"
	"github.com/yourusername/bad-bets/internal/repository"
	"github.com/yourusername/bad-bets/internal/scheduler"
	"github.com/yourusername/bad-bets/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to configuration file")
	flag.Parse()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	if err := config.LoadSecretsFromAWS(startCtx, cfg); err != nil {
		log.Fatalf("Failed to load secrets: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := config.ValidateEnvironment(cfg); err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"commit":      GitCommit,
	}).Info("Bad Bets service starting")

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}
	audit := logger.NewAuditLogger(appLog)
	checker := health.NewChecker(cfg.App.Name, Version, appLog)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to load catalog")
	}

	var db *database.DB
	if cfg.Leads.Store == config.LeadStorePostgres {
		db, err = database.Initialize(startCtx, cfg)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize database")
		}
		defer db.Close()
		appLog.Info("Database connection established")
	}

	repos, err := repository.NewRepositories(cfg.Leads.Store, db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}
	checker.AddDependency("leads", repos.Lead)

	store, err := newCache(startCtx, cfg.Cache)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize cache")
	}
	defer store.Close()
	checker.AddDependency("cache", store)

	var feed service.QuoteSource
	var feedClient *oddsfeed.Client
	if cfg.OddsFeed.Enabled {
		httpClient := oddsfeed.NewRateLimitedHTTPClient(oddsfeed.HTTPClientConfigFrom(cfg.OddsFeed), appLog, audit)
		feedClient = oddsfeed.NewClient(httpClient, cfg.OddsFeed.BaseURL, cfg.OddsFeed.APIKey)
		defer feedClient.Close()
		feed = feedClient
	}

	calculators := service.NewCalculatorService(store, cfg.Calculators, cfg.CacheTTL(), logger.NewCalculatorLogger(appLog))
	leads := service.NewLeadService(repos.Lead, audit)
	comparisons := service.NewComparisonService(cat, store, feed, cfg.CacheTTL(), appLog)
	links := affiliate.NewBuilder(cat, cfg.Affiliate.Codes, affiliate.Tracking{
		Source: cfg.Affiliate.DefaultSource,
		Medium: cfg.Affiliate.DefaultMedium,
	})

	var sched *scheduler.Scheduler
	if feedClient != nil {
		sched = scheduler.NewScheduler(appLog)
		if _, err := sched.ScheduleRefresh("comparisons", cfg.OddsFeed.RefreshSchedule, comparisons, time.Minute); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule odds refresh")
		}
		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
		appLog.WithField("next_run", sched.NextRun()).Info("Odds refresh scheduled")
		go func() {
			if err := sched.RunNow("comparisons"); err != nil {
				appLog.WithError(err).Warn("Initial comparison refresh failed to start")
			}
		}()
	}

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	server := &http.Server{
		Addr: cfg.ListenAddr(),
		Handler: api.NewRouter(api.Deps{
			Calculators:    calculators,
			Leads:          leads,
			Comparisons:    comparisons,
			Catalog:        cat,
			Links:          links,
			Health:         checker,
			Audit:          audit,
			Logger:         appLog,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RequestTimeout: cfg.RequestTimeout(),
			MetricsPath:    metricsPath,
		}),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLog.WithField("addr", server.Addr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	checker.SetReady(true)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		appLog.WithField("signal", sig).Info("Shutdown signal received")
	case err := <-serverErr:
		appLog.WithError(err).Error("HTTP server failed")
	}

	checker.SetReady(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("HTTP server shutdown failed")
	}
	if sched != nil {
		if err := sched.Stop(); err != nil {
			appLog.WithError(err).Error("Scheduler shutdown failed")
		}
	}

	appLog.Info("Bad Bets service stopped")
}

// newCache creates the configured cache backend.
func newCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if cfg.Backend == config.CacheBackendRedis {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:        cfg.RedisAddr,
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			Prefix:      cfg.KeyPrefix,
			DialTimeout: 5 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	return cache.NewMemoryCache(ttl, time.Duration(cfg.CleanupIntervalSeconds)*time.Second, cfg.KeyPrefix, 10000), nil
}
