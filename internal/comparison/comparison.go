// Package comparison rates providers' quotes on the same bet against each
// other and prices the cost of taking a worse quote.
package comparison

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yourusername/bad-bets/internal/calculator"
	"github.com/yourusername/bad-bets/internal/models"
)

// Result is a rated set of quotes, best first.
type Result struct {
	Quotes []models.Quote `json:"quotes"`
	Best   float64        `json:"best"`
	Worst  float64        `json:"worst"`
	Loss   float64        `json:"loss"`
}

// Compare sorts quotes by odds descending and rates them. The first quote is
// best and the last worst; quotes in between are ok when at or above the
// midpoint of best and worst and bad otherwise. Loss is (best − worst)·stake
// rounded to cents. The input slice is not modified.
func Compare(stake float64, quotes []models.Quote) (Result, error) {
	if err := calculator.ValidateAmount("stake", stake); err != nil {
		return Result{}, err
	}
	if len(quotes) < 2 {
		return Result{}, fmt.Errorf("%w: quotes need at least two providers, got %d", calculator.ErrInvalidInput, len(quotes))
	}

	rated := make([]models.Quote, len(quotes))
	copy(rated, quotes)
	for i, q := range rated {
		if err := calculator.ValidateOdds(fmt.Sprintf("quotes[%d].odds", i), q.Odds); err != nil {
			return Result{}, err
		}
	}

	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Odds > rated[j].Odds
	})

	best := rated[0].Odds
	worst := rated[len(rated)-1].Odds
	midpoint := (best + worst) / 2
	bestDec := decimal.NewFromFloat(best)

	for i := range rated {
		q := &rated[i]
		switch {
		case i == 0:
			q.Rating = models.RatingBest
		case i == len(rated)-1:
			q.Rating = models.RatingWorst
		case q.Odds >= midpoint:
			q.Rating = models.RatingOK
		default:
			q.Rating = models.RatingBad
		}
		q.ImpliedProbability = calculator.ImpliedProbability(q.Odds)
		q.Shortfall = bestDec.Sub(decimal.NewFromFloat(q.Odds)).Round(2).InexactFloat64()
	}

	loss := bestDec.Sub(decimal.NewFromFloat(worst)).
		Mul(decimal.NewFromFloat(stake)).
		Round(2).
		InexactFloat64()

	return Result{Quotes: rated, Best: best, Worst: worst, Loss: loss}, nil
}

// Rate returns a copy of c with its quotes rated and its loss filled in.
func Rate(c models.Comparison) (models.Comparison, error) {
	result, err := Compare(c.Stake, c.Quotes)
	if err != nil {
		return models.Comparison{}, fmt.Errorf("comparison %q: %w", c.ID, err)
	}
	c.Quotes = result.Quotes
	c.Loss = result.Loss
	return c, nil
}
