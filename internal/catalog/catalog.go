// Package catalog holds the read-only site content: the provider ranking,
// the bad bets of the day and the worst-odds comparisons.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/bad-bets/internal/calculator"
	"github.com/yourusername/bad-bets/internal/comparison"
	"github.com/yourusername/bad-bets/internal/models"
)

// AllSports selects every bad bet regardless of sport.
const AllSports = "all"

// ErrInvalidCatalog is returned when catalogue content fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

//go:embed catalog.yaml
var defaultCatalog []byte

type document struct {
	Providers   []models.Provider   `yaml:"providers"`
	BadBets     []models.BadBet     `yaml:"bad_bets"`
	Comparisons []models.Comparison `yaml:"comparisons"`
}

// Catalog is immutable after loading and safe for concurrent use. Returned
// values share nested slices with the catalog and must not be modified.
type Catalog struct {
	providers   []models.Provider
	providerIdx map[string]int
	badBets     []models.BadBet
	badBetIdx   map[string]int
	comparisons []models.Comparison
	sports      []string
}

// Default returns the catalogue compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalogue file, or the compiled-in default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalogue YAML and derives the computed fields.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{
		providerIdx: make(map[string]int, len(doc.Providers)),
		badBetIdx:   make(map[string]int, len(doc.BadBets)),
	}

	providers := append([]models.Provider(nil), doc.Providers...)
	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].Rank < providers[j].Rank
	})
	for i, p := range providers {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: provider %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.providerIdx[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate provider %q", ErrInvalidCatalog, p.ID)
		}
		c.providerIdx[p.ID] = i
	}
	c.providers = providers

	seenSport := make(map[string]bool)
	c.sports = []string{AllSports}
	for i, b := range doc.BadBets {
		if b.ID == "" {
			return nil, fmt.Errorf("%w: bad bet %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.badBetIdx[b.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate bad bet %q", ErrInvalidCatalog, b.ID)
		}
		derived, err := deriveBadBet(b)
		if err != nil {
			return nil, fmt.Errorf("%w: bad bet %q: %v", ErrInvalidCatalog, b.ID, err)
		}
		c.badBetIdx[b.ID] = len(c.badBets)
		c.badBets = append(c.badBets, derived)

		if !seenSport[b.Sport] {
			seenSport[b.Sport] = true
			c.sports = append(c.sports, b.Sport)
		}
	}

	for _, cmp := range doc.Comparisons {
		rated, err := comparison.Rate(cmp)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		rated.Source = models.SourceCatalog
		c.comparisons = append(c.comparisons, rated)
	}

	return c, nil
}

// deriveBadBet fills the fields computed from odds and stake.
func deriveBadBet(b models.BadBet) (models.BadBet, error) {
	check, err := calculator.CheckBadBet(calculator.BadBetInput{Odds: b.Odds, Stake: b.Stake})
	if err != nil {
		return b, err
	}
	b.PotentialWin = check.PotentialWin
	b.Payout = b.Stake * b.Odds
	b.ImpliedProbability = check.ImpliedProbability
	b.WinsNeeded = check.WinsNeeded
	b.Message = check.Message
	if b.Severity == "" {
		b.Severity = string(check.Severity)
	}

	if b.RealProbability > 0 {
		value, err := calculator.ExpectedValue(calculator.ValueInput{Odds: b.Odds, TrueProbability: b.RealProbability})
		if err != nil {
			return b, err
		}
		ev := value.ExpectedValue
		b.ExpectedValue = &ev
	}

	alternatives := make([]models.Alternative, len(b.Alternatives))
	for i, alt := range b.Alternatives {
		if err := calculator.ValidateOdds("alternative odds", alt.Odds); err != nil {
			return b, err
		}
		alt.Payout = b.Stake * alt.Odds
		alt.Profit = b.Stake * (alt.Odds - 1)
		alternatives[i] = alt
	}
	b.Alternatives = alternatives

	return b, nil
}

// Providers returns all providers ordered by rank.
func (c *Catalog) Providers() []models.Provider {
	return append([]models.Provider(nil), c.providers...)
}

// Provider returns the provider with the given id.
func (c *Catalog) Provider(id string) (models.Provider, error) {
	i, ok := c.providerIdx[id]
	if !ok {
		return models.Provider{}, fmt.Errorf("provider %q: %w", id, models.ErrNotFound)
	}
	return c.providers[i], nil
}

// BadBets returns the bad bets for sport; "" or AllSports returns every one.
func (c *Catalog) BadBets(sport string) []models.BadBet {
	sport = strings.TrimSpace(sport)
	if sport == "" || strings.EqualFold(sport, AllSports) {
		return append([]models.BadBet(nil), c.badBets...)
	}
	out := make([]models.BadBet, 0, len(c.badBets))
	for _, b := range c.badBets {
		if strings.EqualFold(b.Sport, sport) {
			out = append(out, b)
		}
	}
	return out
}

// BadBet returns the bad bet with the given id.
func (c *Catalog) BadBet(id string) (models.BadBet, error) {
	i, ok := c.badBetIdx[id]
	if !ok {
		return models.BadBet{}, fmt.Errorf("bad bet %q: %w", id, models.ErrNotFound)
	}
	return c.badBets[i], nil
}

// Sports lists AllSports followed by each sport in order of first appearance.
func (c *Catalog) Sports() []string {
	return append([]string(nil), c.sports...)
}

// Comparisons returns the rated catalogue comparisons.
func (c *Catalog) Comparisons() []models.Comparison {
	return append([]models.Comparison(nil), c.comparisons...)
}
