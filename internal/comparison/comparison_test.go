package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bad-bets/internal/calculator"
	"github.com/yourusername/bad-bets/internal/models"
)

func quotes(pairs ...interface{}) []models.Quote {
	out := make([]models.Quote, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, models.Quote{Provider: pairs[i].(string), Odds: pairs[i+1].(float64)})
	}
	return out
}

func ratings(qs []models.Quote) []models.QuoteRating {
	out := make([]models.QuoteRating, len(qs))
	for i, q := range qs {
		out[i] = q.Rating
	}
	return out
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		quotes   []models.Quote
		ratings  []models.QuoteRating
		loss     float64
		provider string
	}{
		{
			name:     "real madrid win",
			quotes:   quotes("bet365", 2.10, "Betano", 2.05, "bwin", 1.95, "Tipico", 1.85),
			ratings:  []models.QuoteRating{models.RatingBest, models.RatingOK, models.RatingBad, models.RatingWorst},
			loss:     25,
			provider: "bet365",
		},
		{
			name:     "over 2.5 goals",
			quotes:   quotes("Interwetten", 1.75, "bet365", 1.70, "bwin", 1.62, "Tipico", 1.55),
			ratings:  []models.QuoteRating{models.RatingBest, models.RatingOK, models.RatingBad, models.RatingWorst},
			loss:     20,
			provider: "Interwetten",
		},
		{
			name:     "unsorted input",
			quotes:   quotes("Tipico", 1.85, "bet365", 2.10),
			ratings:  []models.QuoteRating{models.RatingBest, models.RatingWorst},
			loss:     25,
			provider: "bet365",
		},
		{
			name:     "midpoint counts as ok",
			quotes:   quotes("a", 3.0, "b", 2.5, "c", 2.0),
			ratings:  []models.QuoteRating{models.RatingBest, models.RatingOK, models.RatingWorst},
			loss:     100,
			provider: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compare(100, tt.quotes)
			require.NoError(t, err)

			assert.Equal(t, tt.ratings, ratings(result.Quotes))
			assert.Equal(t, tt.loss, result.Loss)
			assert.Equal(t, tt.provider, result.Quotes[0].Provider)
			assert.Zero(t, result.Quotes[0].Shortfall)
		})
	}
}

func TestCompareDoesNotModifyInput(t *testing.T) {
	in := quotes("Tipico", 1.85, "bet365", 2.10)
	_, err := Compare(100, in)
	require.NoError(t, err)

	assert.Equal(t, "Tipico", in[0].Provider)
	assert.Empty(t, in[0].Rating)
}

func TestCompareQuoteDetails(t *testing.T) {
	result, err := Compare(50, quotes("bet365", 2.10, "bwin", 1.95, "Tipico", 1.85))
	require.NoError(t, err)

	assert.InDelta(t, 100/1.95, result.Quotes[1].ImpliedProbability, 1e-9)
	assert.Equal(t, 0.15, result.Quotes[1].Shortfall)
	assert.Equal(t, 12.5, result.Loss)
	assert.Equal(t, 2.10, result.Best)
	assert.Equal(t, 1.85, result.Worst)
}

func TestCompareRejects(t *testing.T) {
	tests := []struct {
		name   string
		stake  float64
		quotes []models.Quote
	}{
		{"single quote", 100, quotes("bet365", 2.10)},
		{"no quotes", 100, nil},
		{"odds of one", 100, quotes("bet365", 2.10, "bwin", 1.0)},
		{"negative stake", -5, quotes("bet365", 2.10, "bwin", 1.9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compare(tt.stake, tt.quotes)
			assert.ErrorIs(t, err, calculator.ErrInvalidInput)
		})
	}
}

func TestRate(t *testing.T) {
	rated, err := Rate(models.Comparison{
		ID:     "liverpool-city",
		Stake:  100,
		Quotes: quotes("bwin", 1.62, "Interwetten", 1.75),
	})
	require.NoError(t, err)
	assert.Equal(t, "liverpool-city", rated.ID)
	assert.Equal(t, 13.0, rated.Loss)
	assert.Equal(t, models.RatingBest, rated.Quotes[0].Rating)

	_, err = Rate(models.Comparison{ID: "broken", Stake: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
