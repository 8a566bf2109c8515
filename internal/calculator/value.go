package calculator

// ValueRating classifies the expected value of a bet.
type ValueRating string

const (
	RatingValueBet    ValueRating = "value_bet"
	RatingSlightValue ValueRating = "slight_value"
	RatingNoValue     ValueRating = "no_value"
)

// valueBetThreshold is the EV fraction above which a bet counts as a clear value bet.
const valueBetThreshold = 0.05

var valueMessages = map[ValueRating]string{
	RatingValueBet:    "VALUE BET! Positive Expected Value.",
	RatingSlightValue: "Leichter Value, aber Vorsicht.",
	RatingNoValue:     "KEIN VALUE! Negative Expected Value.",
}

// ValueInput is the input of the expected-value calculator. TrueProbability
// is the bettor's own estimate in percent.
type ValueInput struct {
	Odds            float64 `json:"odds"`
	TrueProbability float64 `json:"true_probability"`
}

// ValueResult holds the expected value of a unit stake in percent.
type ValueResult struct {
	ImpliedProbability float64     `json:"implied_probability"`
	ExpectedValue      float64     `json:"expected_value"`
	Rating             ValueRating `json:"rating"`
	IsValue            bool        `json:"is_value"`
	Message            string      `json:"message"`
}

// ExpectedValue computes p·(o−1) − (1−p) for a unit stake.
func ExpectedValue(in ValueInput) (ValueResult, error) {
	if err := requireOdds("odds", in.Odds); err != nil {
		return ValueResult{}, err
	}
	if err := requirePercent("trueProbability", in.TrueProbability); err != nil {
		return ValueResult{}, err
	}

	p := in.TrueProbability / 100
	ev := p*(in.Odds-1) - (1 - p)

	var rating ValueRating
	switch {
	case ev > valueBetThreshold:
		rating = RatingValueBet
	case ev > 0:
		rating = RatingSlightValue
	default:
		rating = RatingNoValue
	}

	return ValueResult{
		ImpliedProbability: ImpliedProbability(in.Odds),
		ExpectedValue:      ev * 100,
		Rating:             rating,
		IsValue:            rating != RatingNoValue,
		Message:            valueMessages[rating],
	}, nil
}

// Kind implements Result.
func (r ValueResult) Kind() Kind { return KindValue }

// Fields implements Result.
func (r ValueResult) Fields() map[string]string {
	return map[string]string{
		"impliedProbability": fixed(r.ImpliedProbability, 1),
		"expectedValue":      fixed(r.ExpectedValue, 2),
		"rating":             string(r.Rating),
		"isValue":            btoa(r.IsValue),
		"message":            r.Message,
	}
}
