package calculator

import "math"

// KellyAdvice is the recommendation attached to a Kelly calculation.
type KellyAdvice string

const (
	AdviceNoBet         KellyAdvice = "no_bet"
	AdviceUseFractional KellyAdvice = "use_fractional"
	AdviceRecommended   KellyAdvice = "recommended"
)

const (
	// FractionalKelly is the conservative share of the full Kelly stake.
	FractionalKelly = 0.25

	// highKellyFraction is the bankroll fraction above which full Kelly is discouraged.
	highKellyFraction = 0.2
)

var kellyMessages = map[KellyAdvice]string{
	AdviceNoBet:         "NICHT WETTEN! Negative Expected Value.",
	AdviceUseFractional: "VORSICHT! Sehr hoher Kelly-Wert. Nutze 1/4 Kelly!",
	AdviceRecommended:   "Empfohlener Einsatz berechnet.",
}

// KellyInput is the input of the stake sizer. Probability is in percent.
type KellyInput struct {
	Bankroll    float64 `json:"bankroll"`
	Odds        float64 `json:"odds"`
	Probability float64 `json:"probability"`
}

// KellyResult holds the Kelly fraction of the bankroll together with the
// full and quarter Kelly stakes.
type KellyResult struct {
	Fraction     float64     `json:"fraction"`
	FullStake    float64     `json:"full_stake"`
	QuarterStake float64     `json:"quarter_stake"`
	Advice       KellyAdvice `json:"advice"`
	Message      string      `json:"message"`
}

// KellyFraction returns ((o−1)·p − (1−p)) / (o−1) for p given as a fraction.
// It may be negative; callers floor stakes at zero.
func KellyFraction(odds, p float64) float64 {
	b := odds - 1
	return (b*p - (1 - p)) / b
}

// Kelly sizes a stake with the Kelly criterion.
func Kelly(in KellyInput) (KellyResult, error) {
	if err := requireAmount("bankroll", in.Bankroll); err != nil {
		return KellyResult{}, err
	}
	if err := requireOdds("odds", in.Odds); err != nil {
		return KellyResult{}, err
	}
	if err := requirePercent("probability", in.Probability); err != nil {
		return KellyResult{}, err
	}

	f := KellyFraction(in.Odds, in.Probability/100)
	full := math.Max(0, f*in.Bankroll)

	var advice KellyAdvice
	switch {
	case f <= 0:
		advice = AdviceNoBet
	case f > highKellyFraction:
		advice = AdviceUseFractional
	default:
		advice = AdviceRecommended
	}

	return KellyResult{
		Fraction:     f,
		FullStake:    full,
		QuarterStake: full * FractionalKelly,
		Advice:       advice,
		Message:      kellyMessages[advice],
	}, nil
}

// Kind implements Result.
func (r KellyResult) Kind() Kind { return KindKelly }

// Fields implements Result. The fraction is shown in percent.
func (r KellyResult) Fields() map[string]string {
	return map[string]string{
		"kellyFraction":   fixed(r.Fraction*100, 2),
		"fullKelly":       fixed(r.FullStake, 2),
		"fractionalKelly": fixed(r.QuarterStake, 2),
		"advice":          string(r.Advice),
		"message":         r.Message,
	}
}
