package models

// Provider is a licensed bookmaker listed in the provider ranking
type Provider struct {
	ID             string           `yaml:"id" json:"id"`
	Name           string           `yaml:"name" json:"name"`
	Logo           string           `yaml:"logo" json:"logo"`
	Rank           int              `yaml:"rank" json:"rank"`
	Rating         float64          `yaml:"rating" json:"rating"`
	RatingCount    int              `yaml:"rating_count" json:"rating_count"`
	Bonus          Bonus            `yaml:"bonus" json:"bonus"`
	License        License          `yaml:"license" json:"license"`
	Ratings        ProviderRatings  `yaml:"ratings" json:"ratings"`
	MinDeposit     string           `yaml:"min_deposit" json:"min_deposit"`
	Payout         string           `yaml:"payout" json:"payout"`
	Features       []string         `yaml:"features" json:"features"`
	Highlights     []string         `yaml:"highlights" json:"highlights"`
	Pros           []string         `yaml:"pros" json:"pros"`
	Cons           []string         `yaml:"cons" json:"cons"`
	PaymentMethods []string         `yaml:"payment_methods" json:"payment_methods"`
	Badge          string           `yaml:"badge" json:"badge"`
	BadgeColor     string           `yaml:"badge_color" json:"badge_color"`
	Sports         []string         `yaml:"sports" json:"sports"`
	Affiliate      AffiliateProgram `yaml:"affiliate" json:"-"`
}

// Bonus describes a provider's welcome offer
type Bonus struct {
	Description string  `yaml:"description" json:"description"`
	Type        string  `yaml:"type" json:"type"`
	Value       float64 `yaml:"value" json:"value"`
	Rating      float64 `yaml:"rating" json:"rating"`
}

// License describes the provider's gambling license
type License struct {
	Name   string  `yaml:"name" json:"name"`
	Since  string  `yaml:"since" json:"since"`
	Rating float64 `yaml:"rating" json:"rating"`
}

// ProviderRatings holds the partial ratings behind the overall rating
type ProviderRatings struct {
	Quotes  float64 `yaml:"quotes" json:"quotes"`
	App     float64 `yaml:"app" json:"app"`
	Service float64 `yaml:"service" json:"service"`
}

// AffiliateProgram holds the partner link of a provider and the query
// parameter names its tracking expects.
type AffiliateProgram struct {
	BaseURL        string         `yaml:"base_url" json:"base_url"`
	AffiliateURL   string         `yaml:"affiliate_url" json:"affiliate_url"`
	TrackingParams TrackingParams `yaml:"tracking_params" json:"tracking_params"`
}

// TrackingParams maps tracking dimensions to provider query parameter names
type TrackingParams struct {
	Source   string `yaml:"source" json:"source"`
	Campaign string `yaml:"campaign" json:"campaign"`
	Medium   string `yaml:"medium" json:"medium"`
}

// HasSport reports whether the provider offers the given sport
func (p *Provider) HasSport(sport string) bool {
	for _, s := range p.Sports {
		if s == sport {
			return true
		}
	}
	return false
}
