package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bad-bets/internal/models"
)

func mustDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c
}

func TestProvidersOrderedByRank(t *testing.T) {
	providers := mustDefault(t).Providers()
	require.Len(t, providers, 3)

	ids := []string{providers[0].ID, providers[1].ID, providers[2].ID}
	assert.Equal(t, []string{"bet365", "betano", "bwin"}, ids)
	for i := 1; i < len(providers); i++ {
		assert.Less(t, providers[i-1].Rank, providers[i].Rank)
	}
}

func TestProvider(t *testing.T) {
	c := mustDefault(t)

	p, err := c.Provider("betano")
	require.NoError(t, err)
	assert.Equal(t, "Betano", p.Name)
	assert.Equal(t, 4.75, p.Rating)
	assert.Equal(t, "https://www.betano.de?affiliate=DEIN_CODE", p.Affiliate.AffiliateURL)
	assert.True(t, p.HasSport("Fußball"))
	assert.False(t, p.HasSport("Handball"))

	_, err = c.Provider("tipico")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestBadBetDerivedFields(t *testing.T) {
	b, err := mustDefault(t).BadBet("1")
	require.NoError(t, err)

	assert.Equal(t, "Bayern München gewinnt", b.Bet)
	assert.InDelta(t, 15.0, b.PotentialWin, 1e-6)
	assert.InDelta(t, 115.0, b.Payout, 1e-6)
	assert.Equal(t, 7, b.WinsNeeded)
	assert.Equal(t, "critical", b.Severity)
	assert.InDelta(t, 86.96, b.ImpliedProbability, 0.01)

	require.NotNil(t, b.ExpectedValue)
	assert.InDelta(t, -13.75, *b.ExpectedValue, 1e-9)

	require.Len(t, b.Alternatives, 3)
	assert.InDelta(t, 65.0, b.Alternatives[0].Profit, 1e-9)
	assert.InDelta(t, 165.0, b.Alternatives[0].Payout, 1e-9)
}

func TestBadBetAuthoredSeverityWins(t *testing.T) {
	b, err := mustDefault(t).BadBet("3")
	require.NoError(t, err)
	assert.Equal(t, "high", b.Severity)
	assert.Equal(t, 1, b.WinsNeeded)
}

func TestBadBetsBySport(t *testing.T) {
	c := mustDefault(t)

	assert.Len(t, c.BadBets(""), 3)
	assert.Len(t, c.BadBets(AllSports), 3)
	assert.Len(t, c.BadBets("Fußball"), 3)
	assert.Empty(t, c.BadBets("Tennis"))

	_, err := c.BadBet("99")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSports(t *testing.T) {
	assert.Equal(t, []string{AllSports, "Fußball"}, mustDefault(t).Sports())
}

func TestComparisonsRated(t *testing.T) {
	comparisons := mustDefault(t).Comparisons()
	require.Len(t, comparisons, 2)

	assert.Equal(t, 25.0, comparisons[0].Loss)
	assert.Equal(t, 20.0, comparisons[1].Loss)
	assert.Equal(t, models.SourceCatalog, comparisons[0].Source)
	assert.Equal(t, models.RatingBad, comparisons[0].Quotes[2].Rating)
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := mustDefault(t)
	providers := c.Providers()
	providers[0].Name = "changed"

	p, err := c.Provider(providers[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", p.Name)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "providers:\n  - id: a\n    colour: red\n"},
		{"duplicate provider", "providers:\n  - id: a\n  - id: a\n"},
		{"provider without id", "providers:\n  - name: Anonymous\n"},
		{"bad odds", "bad_bets:\n  - id: x\n    odds: 1.0\n    stake: 10\n"},
		{"short comparison", "comparisons:\n  - id: c\n    stake: 100\n    quotes:\n      - {provider: a, odds: 2.0}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "bad_bets:\n  - id: t1\n    match: A vs. B\n    bet: A gewinnt\n    odds: 1.4\n    stake: 50\n    sport: Tennis\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{AllSports, "Tennis"}, c.Sports())

	b, err := c.BadBet("t1")
	require.NoError(t, err)
	assert.Equal(t, "high", b.Severity)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
