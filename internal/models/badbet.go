package models

// ReasonSeverity grades a single reason against a bet
type ReasonSeverity string

const (
	ReasonHigh   ReasonSeverity = "high"
	ReasonMedium ReasonSeverity = "medium"
	ReasonLow    ReasonSeverity = "low"
)

// BadBet is a curated "bad bet of the day". Fields tagged yaml are authored;
// the rest are derived from the odds when the catalogue is loaded. An
// authored Severity overrides the one derived from the odds.
type BadBet struct {
	ID              string        `yaml:"id" json:"id"`
	Match           string        `yaml:"match" json:"match"`
	Bet             string        `yaml:"bet" json:"bet"`
	Odds            float64       `yaml:"odds" json:"odds"`
	Stake           float64       `yaml:"stake" json:"stake"`
	Provider        string        `yaml:"provider" json:"provider,omitempty"`
	Sport           string        `yaml:"sport" json:"sport"`
	League          string        `yaml:"league" json:"league"`
	Date            string        `yaml:"date" json:"date,omitempty"`
	Severity        string        `yaml:"severity" json:"severity"`
	RealProbability float64       `yaml:"real_probability" json:"real_probability,omitempty"`
	Reasons         []Reason      `yaml:"reasons" json:"reasons"`
	Alternatives    []Alternative `yaml:"alternatives" json:"better_alternatives"`

	PotentialWin       float64  `yaml:"-" json:"potential_win"`
	Payout             float64  `yaml:"-" json:"payout"`
	ImpliedProbability float64  `yaml:"-" json:"implied_probability"`
	WinsNeeded         int      `yaml:"-" json:"wins_needed"`
	Message            string   `yaml:"-" json:"message"`
	ExpectedValue      *float64 `yaml:"-" json:"expected_value,omitempty"`
}

// Reason explains one way a bet is bad
type Reason struct {
	Title       string         `yaml:"title" json:"title"`
	Description string         `yaml:"description" json:"description"`
	Severity    ReasonSeverity `yaml:"severity" json:"severity"`
}

// Alternative is a better bet on the same match
type Alternative struct {
	Bet       string  `yaml:"bet" json:"bet"`
	Odds      float64 `yaml:"odds" json:"odds"`
	Provider  string  `yaml:"provider" json:"provider"`
	EVLabel   string  `yaml:"ev" json:"ev,omitempty"`
	Reasoning string  `yaml:"reasoning" json:"reasoning,omitempty"`

	Payout float64 `yaml:"-" json:"payout"`
	Profit float64 `yaml:"-" json:"profit"`
}
