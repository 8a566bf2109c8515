// Package affiliate builds tracked partner links for listed providers.
package affiliate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/yourusername/bad-bets/internal/models"
)

// ErrUnknownProvider is returned for a provider without an affiliate program.
var ErrUnknownProvider = errors.New("unknown provider")

// codePlaceholder marks where a partner code goes in an affiliate URL.
const codePlaceholder = "DEIN_CODE"

// Tracking carries the campaign attribution appended to a link.
type Tracking struct {
	Source   string `json:"source,omitempty"`
	Campaign string `json:"campaign,omitempty"`
	Medium   string `json:"medium,omitempty"`
}

// ProviderSource looks up providers by id.
type ProviderSource interface {
	Provider(id string) (models.Provider, error)
}

// Builder renders affiliate links from the provider catalogue.
type Builder struct {
	providers ProviderSource
	codes     map[string]string
	defaults  Tracking
}

// NewBuilder creates a link builder. codes maps provider ids to partner codes
// substituted for the placeholder in the configured URL; defaults fill
// tracking dimensions the caller leaves empty.
func NewBuilder(providers ProviderSource, codes map[string]string, defaults Tracking) *Builder {
	return &Builder{providers: providers, codes: codes, defaults: defaults}
}

// Link returns the provider's affiliate URL with tracking parameters set under
// the provider's own parameter names. Empty tracking values are omitted.
func (b *Builder) Link(providerID string, tracking Tracking) (string, error) {
	provider, err := b.providers.Provider(providerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrUnknownProvider, providerID)
		}
		return "", err
	}
	program := provider.Affiliate
	if program.AffiliateURL == "" {
		return "", fmt.Errorf("%w: %s has no affiliate program", ErrUnknownProvider, providerID)
	}

	raw := program.AffiliateURL
	if code, ok := b.codes[providerID]; ok && code != "" {
		raw = strings.ReplaceAll(raw, codePlaceholder, url.QueryEscape(code))
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid affiliate url for %s: %w", providerID, err)
	}

	tracking = b.withDefaults(tracking)
	query := u.Query()
	set := func(param, value string) {
		if param != "" && value != "" {
			query.Set(param, value)
		}
	}
	set(program.TrackingParams.Source, tracking.Source)
	set(program.TrackingParams.Campaign, tracking.Campaign)
	set(program.TrackingParams.Medium, tracking.Medium)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

func (b *Builder) withDefaults(t Tracking) Tracking {
	if t.Source == "" {
		t.Source = b.defaults.Source
	}
	if t.Campaign == "" {
		t.Campaign = b.defaults.Campaign
	}
	if t.Medium == "" {
		t.Medium = b.defaults.Medium
	}
	return t
}
