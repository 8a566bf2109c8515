package calculator

import "math"

// Severity grades how poor a bet's risk/reward ratio is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severity tier boundaries on decimal odds.
const (
	criticalOddsBelow = 1.3
	highOddsBelow     = 1.5
	mediumOddsBelow   = 2.0
)

var severityMessages = map[Severity]string{
	SeverityCritical: "KRITISCHER BAD BET! Finger weg!",
	SeverityHigh:     "HOHES RISIKO! Sehr schlechtes Risiko-Rendite-Verhältnis.",
	SeverityMedium:   "VORSICHT! Überlege dir bessere Alternativen.",
	SeverityLow:      "Akzeptables Risiko-Rendite-Verhältnis.",
}

// Message returns the fixed advisory text for the tier.
func (s Severity) Message() string {
	return severityMessages[s]
}

// ClassifySeverity maps decimal odds onto a severity tier.
func ClassifySeverity(odds float64) Severity {
	switch {
	case odds < criticalOddsBelow:
		return SeverityCritical
	case odds < highOddsBelow:
		return SeverityHigh
	case odds < mediumOddsBelow:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// BadBetInput is the input of the bad-bet checker.
type BadBetInput struct {
	Odds  float64 `json:"odds"`
	Stake float64 `json:"stake"`
}

// BadBetResult reports what a stake at the given odds can win and how many
// wins it takes to recover one lost stake.
type BadBetResult struct {
	Odds               float64  `json:"odds"`
	Stake              float64  `json:"stake"`
	PotentialWin       float64  `json:"potential_win"`
	ImpliedProbability float64  `json:"implied_probability"`
	WinsNeeded         int      `json:"wins_needed"`
	Severity           Severity `json:"severity"`
	Message            string   `json:"message"`
}

// CheckBadBet grades a single bet. A zero stake is accepted and needs zero
// wins to break even.
func CheckBadBet(in BadBetInput) (BadBetResult, error) {
	if err := requireOdds("odds", in.Odds); err != nil {
		return BadBetResult{}, err
	}
	if err := requireAmount("stake", in.Stake); err != nil {
		return BadBetResult{}, err
	}

	potentialWin := in.Stake * (in.Odds - 1)
	winsNeeded := 0
	if potentialWin > 0 {
		winsNeeded = int(math.Ceil(in.Stake / potentialWin))
	}
	severity := ClassifySeverity(in.Odds)

	return BadBetResult{
		Odds:               in.Odds,
		Stake:              in.Stake,
		PotentialWin:       potentialWin,
		ImpliedProbability: ImpliedProbability(in.Odds),
		WinsNeeded:         winsNeeded,
		Severity:           severity,
		Message:            severity.Message(),
	}, nil
}

// Kind implements Result.
func (r BadBetResult) Kind() Kind { return KindBadBet }

// Fields implements Result.
func (r BadBetResult) Fields() map[string]string {
	return map[string]string{
		"potentialWin":       fixed(r.PotentialWin, 2),
		"impliedProbability": fixed(r.ImpliedProbability, 1),
		"winsNeeded":         itoa(r.WinsNeeded),
		"severity":           string(r.Severity),
		"message":            r.Message,
	}
}
