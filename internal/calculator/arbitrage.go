package calculator

import "math"

const (
	arbitrageFoundMessage = "ARBITRAGE GEFUNDEN! Risikofreier Gewinn möglich!"
	noArbitrageMessage    = "KEINE ARBITRAGE! Kein risikofreier Gewinn möglich."
)

// ArbitrageInput holds two providers' odds on the two outcomes of one event.
type ArbitrageInput struct {
	Odds1      float64 `json:"odds1"`
	Odds2      float64 `json:"odds2"`
	TotalStake float64 `json:"total_stake"`
}

// ArbitrageResult reports the combined book percentage and the stake split.
type ArbitrageResult struct {
	ArbPercentage    float64 `json:"arb_percentage"`
	IsArbitrage      bool    `json:"is_arbitrage"`
	Stake1           float64 `json:"stake1"`
	Stake2           float64 `json:"stake2"`
	GuaranteedProfit float64 `json:"guaranteed_profit"`
	Message          string  `json:"message"`
}

// Arbitrage checks a two-way market for arbitrage. Stake1 is
// T / (1 + o1/(o2−1)), so both odds must exceed 1.
func Arbitrage(in ArbitrageInput) (ArbitrageResult, error) {
	if err := requireOdds("odds1", in.Odds1); err != nil {
		return ArbitrageResult{}, err
	}
	if err := requireOdds("odds2", in.Odds2); err != nil {
		return ArbitrageResult{}, err
	}
	if err := requireAmount("totalStake", in.TotalStake); err != nil {
		return ArbitrageResult{}, err
	}

	total := in.TotalStake
	pct := (1/in.Odds1 + 1/in.Odds2) * 100
	isArb := pct < 100

	stake1 := total / (1 + in.Odds1/(in.Odds2-1))
	stake2 := total - stake1
	profit := math.Min(stake1*in.Odds1-total, stake2*in.Odds2-total)

	msg := noArbitrageMessage
	if isArb {
		msg = arbitrageFoundMessage
	}

	return ArbitrageResult{
		ArbPercentage:    pct,
		IsArbitrage:      isArb,
		Stake1:           stake1,
		Stake2:           stake2,
		GuaranteedProfit: profit,
		Message:          msg,
	}, nil
}

// Kind implements Result.
func (r ArbitrageResult) Kind() Kind { return KindArbitrage }

// Fields implements Result.
func (r ArbitrageResult) Fields() map[string]string {
	return map[string]string{
		"arbPercentage":    fixed(r.ArbPercentage, 2),
		"isArbitrage":      btoa(r.IsArbitrage),
		"stake1":           fixed(r.Stake1, 2),
		"stake2":           fixed(r.Stake2, 2),
		"guaranteedProfit": fixed(r.GuaranteedProfit, 2),
		"message":          r.Message,
	}
}
