package models

import "time"

// QuoteRating ranks a provider's quote within a comparison
type QuoteRating string

const (
	RatingBest  QuoteRating = "best"
	RatingOK    QuoteRating = "ok"
	RatingBad   QuoteRating = "bad"
	RatingWorst QuoteRating = "worst"
)

// Comparison sources.
const (
	SourceCatalog = "catalog"
	SourceFeed    = "feed"
)

// Quote is one provider's odds for a bet
type Quote struct {
	Provider           string      `yaml:"provider" json:"provider"`
	Odds               float64     `yaml:"odds" json:"odds"`
	Rating             QuoteRating `yaml:"-" json:"rating"`
	ImpliedProbability float64     `yaml:"-" json:"implied_probability"`
	Shortfall          float64     `yaml:"-" json:"shortfall"`
}

// Comparison lines up providers' odds on the same bet. Loss is what taking the
// worst quote instead of the best costs at Stake.
type Comparison struct {
	ID        string    `yaml:"id" json:"id"`
	Match     string    `yaml:"match" json:"match"`
	Bet       string    `yaml:"bet" json:"bet"`
	Stake     float64   `yaml:"stake" json:"stake"`
	Quotes    []Quote   `yaml:"quotes" json:"quotes"`
	Loss      float64   `yaml:"-" json:"loss"`
	Source    string    `yaml:"-" json:"source"`
	UpdatedAt time.Time `yaml:"-" json:"updated_at"`
}
