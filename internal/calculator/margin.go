package calculator

// MarginBand classifies a bookmaker margin.
type MarginBand string

const (
	BandVeryHigh MarginBand = "very_high"
	BandHigh     MarginBand = "high"
	BandNormal   MarginBand = "normal"
	BandLow      MarginBand = "low"
)

var marginMessages = map[MarginBand]string{
	BandVeryHigh: "SEHR HOHE MARGE! Finger weg!",
	BandHigh:     "HOHE MARGE! Vorsicht!",
	BandNormal:   "NORMALE MARGE",
	BandLow:      "NIEDRIGE MARGE! Gute Quoten!",
}

// ClassifyMargin maps a margin in percent onto a band.
func ClassifyMargin(margin float64) MarginBand {
	switch {
	case margin > 10:
		return BandVeryHigh
	case margin > 5:
		return BandHigh
	case margin > 2:
		return BandNormal
	default:
		return BandLow
	}
}

// Outcome is one priced outcome of a market after de-margining.
type Outcome struct {
	Label              string  `json:"label"`
	Odds               float64 `json:"odds"`
	ImpliedProbability float64 `json:"implied_probability"`
	FairProbability    float64 `json:"fair_probability"`
	FairOdds           float64 `json:"fair_odds"`
}

// MarginResult holds the overround of a market and its fair odds.
type MarginResult struct {
	Outcomes         []Outcome  `json:"outcomes"`
	TotalProbability float64    `json:"total_probability"`
	Margin           float64    `json:"margin"`
	Band             MarginBand `json:"band"`
	Message          string     `json:"message"`
}

// TwoWayMargin normalises a two-outcome market labelled 1 and 2.
func TwoWayMargin(odds1, odds2 float64) (MarginResult, error) {
	return Margin([]string{"1", "2"}, []float64{odds1, odds2})
}

// ThreeWayMargin normalises a win/draw/loss market labelled 1, X and 2.
func ThreeWayMargin(odds1, oddsX, odds2 float64) (MarginResult, error) {
	return Margin([]string{"1", "X", "2"}, []float64{odds1, oddsX, odds2})
}

// Margin normalises a market of mutually exclusive, exhaustive outcomes.
// labels and odds must have the same length of at least two.
func Margin(labels []string, odds []float64) (MarginResult, error) {
	if len(odds) < 2 || len(labels) != len(odds) {
		return MarginResult{}, invalid("odds", "need one label per outcome and at least two outcomes")
	}

	outcomes := make([]Outcome, len(odds))
	total := 0.0
	for i, o := range odds {
		if err := requireOdds("odds"+labels[i], o); err != nil {
			return MarginResult{}, err
		}
		implied := ImpliedProbability(o)
		outcomes[i] = Outcome{Label: labels[i], Odds: o, ImpliedProbability: implied}
		total += implied
	}

	for i := range outcomes {
		fair := outcomes[i].ImpliedProbability / total * 100
		outcomes[i].FairProbability = fair
		outcomes[i].FairOdds = 100 / fair
	}

	margin := total - 100
	band := ClassifyMargin(margin)

	return MarginResult{
		Outcomes:         outcomes,
		TotalProbability: total,
		Margin:           margin,
		Band:             band,
		Message:          marginMessages[band],
	}, nil
}

// Kind implements Result.
func (r MarginResult) Kind() Kind {
	switch len(r.Outcomes) {
	case 2:
		return KindMargin2
	case 3:
		return KindMargin3
	default:
		return KindMargin
	}
}

// Fields implements Result. Per-outcome keys are suffixed with the outcome
// label, e.g. prob1, fairProbX, fairOdds2.
func (r MarginResult) Fields() map[string]string {
	fields := map[string]string{
		"totalProb": fixed(r.TotalProbability, 2),
		"margin":    fixed(r.Margin, 2),
		"band":      string(r.Band),
		"message":   r.Message,
	}
	for _, o := range r.Outcomes {
		fields["prob"+o.Label] = fixed(o.ImpliedProbability, 2)
		fields["fairProb"+o.Label] = fixed(o.FairProbability, 2)
		fields["fairOdds"+o.Label] = fixed(o.FairOdds, 2)
	}
	return fields
}
