package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/bad-bets/internal/cache"
	"github.com/yourusername/bad-bets/internal/catalog"
	"github.com/yourusername/bad-bets/internal/comparison"
	"github.com/yourusername/bad-bets/internal/metrics"
	"github.com/yourusername/bad-bets/internal/models"
)

// QuoteSource supplies live quotes for a bet.
type QuoteSource interface {
	FetchQuotes(ctx context.Context, match, bet string) ([]models.Quote, error)
}

// ComparisonService serves the worst-odds comparisons, preferring live
// snapshots refreshed from the odds feed over the catalogue quotes.
type ComparisonService struct {
	catalog *catalog.Catalog
	cache   cache.Cache
	feed    QuoteSource
	ttl     time.Duration
	logger  *logrus.Entry
	now     func() time.Time
}

// NewComparisonService creates a comparison service. A nil feed or cache
// serves the catalogue only.
func NewComparisonService(cat *catalog.Catalog, c cache.Cache, feed QuoteSource, ttl time.Duration, log *logrus.Logger) *ComparisonService {
	return &ComparisonService{
		catalog: cat,
		cache:   c,
		feed:    feed,
		ttl:     ttl,
		logger:  log.WithField("component", "comparison"),
		now:     time.Now,
	}
}

func snapshotKey(id string) string {
	return "cmp:" + id
}

// List returns every comparison in catalogue order.
func (s *ComparisonService) List(ctx context.Context) []models.Comparison {
	base := s.catalog.Comparisons()
	if s.cache == nil || s.feed == nil {
		return base
	}

	out := make([]models.Comparison, len(base))
	for i, cmp := range base {
		out[i] = cmp
		var snapshot models.Comparison
		hit, err := cache.GetJSON(ctx, s.cache, snapshotKey(cmp.ID), &snapshot)
		if err != nil {
			s.logger.WithError(err).WithField("comparison_id", cmp.ID).Warn("Failed to read comparison snapshot")
			continue
		}
		if hit {
			out[i] = snapshot
		}
	}
	return out
}

// Refresh pulls live quotes for every catalogue comparison and stores the
// rated snapshots. Comparisons that fail keep serving catalogue quotes.
func (s *ComparisonService) Refresh(ctx context.Context) error {
	if s.feed == nil || s.cache == nil {
		return nil
	}

	var errs []error
	refreshed := 0
	for _, cmp := range s.catalog.Comparisons() {
		if err := s.refreshOne(ctx, cmp); err != nil {
			errs = append(errs, err)
			continue
		}
		refreshed++
	}

	s.logger.WithFields(logrus.Fields{
		"refreshed": refreshed,
		"failed":    len(errs),
	}).Info("Comparison refresh finished")
	return errors.Join(errs...)
}

func (s *ComparisonService) refreshOne(ctx context.Context, cmp models.Comparison) error {
	log := s.logger.WithField("comparison_id", cmp.ID)

	quotes, err := s.feed.FetchQuotes(ctx, cmp.Match, cmp.Bet)
	if err != nil {
		metrics.RecordOddsFeedRefresh(metrics.RefreshFailed)
		log.WithError(err).Warn("Failed to fetch live quotes")
		return fmt.Errorf("comparison %s: %w", cmp.ID, err)
	}

	rated, err := comparison.Compare(cmp.Stake, quotes)
	if err != nil {
		metrics.RecordOddsFeedRefresh(metrics.RefreshFallback)
		log.WithError(err).Warn("Live quotes unusable, serving catalogue quotes")
		return fmt.Errorf("comparison %s: %w", cmp.ID, err)
	}

	snapshot := cmp
	snapshot.Quotes = rated.Quotes
	snapshot.Loss = rated.Loss
	snapshot.Source = models.SourceFeed
	snapshot.UpdatedAt = s.now().UTC()

	if err := cache.SetJSON(ctx, s.cache, snapshotKey(cmp.ID), snapshot, s.ttl); err != nil {
		metrics.RecordOddsFeedRefresh(metrics.RefreshFailed)
		return fmt.Errorf("comparison %s: %w", cmp.ID, err)
	}

	metrics.RecordOddsFeedRefresh(metrics.RefreshOK)
	log.WithField("loss", rated.Loss).Debug("Comparison refreshed")
	return nil
}
