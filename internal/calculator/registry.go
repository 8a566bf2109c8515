package calculator

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a calculator.
type Kind string

const (
	KindBadBet    Kind = "badbet"
	KindValue     Kind = "value"
	KindKelly     Kind = "kelly"
	KindArbitrage Kind = "arbitrage"
	KindMargin2   Kind = "margin2"
	KindMargin3   Kind = "margin3"

	// KindMargin labels margin results with more than three outcomes; it has
	// no registered calculator.
	KindMargin Kind = "margin"
)

// Result is the record produced by any calculator.
type Result interface {
	Kind() Kind
	// Fields renders the result as named display strings.
	Fields() map[string]string
}

// Descriptor describes a registered calculator and the input fields it reads.
type Descriptor struct {
	Kind   Kind     `json:"kind"`
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

type entry struct {
	Descriptor
	compute func(v []float64) (Result, error)
}

// registry is ordered as the tools are presented.
var registry = []entry{
	{
		Descriptor: Descriptor{Kind: KindBadBet, Name: "Bad-Bet-Checker", Fields: []string{"odds", "stake"}},
		compute: func(v []float64) (Result, error) {
			return CheckBadBet(BadBetInput{Odds: v[0], Stake: v[1]})
		},
	},
	{
		Descriptor: Descriptor{Kind: KindValue, Name: "Value-Rechner", Fields: []string{"odds", "trueProbability"}},
		compute: func(v []float64) (Result, error) {
			return ExpectedValue(ValueInput{Odds: v[0], TrueProbability: v[1]})
		},
	},
	{
		Descriptor: Descriptor{Kind: KindKelly, Name: "Bankroll-Manager", Fields: []string{"bankroll", "odds", "probability"}},
		compute: func(v []float64) (Result, error) {
			return Kelly(KellyInput{Bankroll: v[0], Odds: v[1], Probability: v[2]})
		},
	},
	{
		Descriptor: Descriptor{Kind: KindArbitrage, Name: "Arbitrage-Rechner", Fields: []string{"odds1", "odds2", "totalStake"}},
		compute: func(v []float64) (Result, error) {
			return Arbitrage(ArbitrageInput{Odds1: v[0], Odds2: v[1], TotalStake: v[2]})
		},
	},
	{
		Descriptor: Descriptor{Kind: KindMargin2, Name: "Quotenschlüssel 2-Weg", Fields: []string{"odds1", "odds2"}},
		compute: func(v []float64) (Result, error) {
			return TwoWayMargin(v[0], v[1])
		},
	},
	{
		Descriptor: Descriptor{Kind: KindMargin3, Name: "Quotenschlüssel 3-Weg", Fields: []string{"odds1", "oddsX", "odds2"}},
		compute: func(v []float64) (Result, error) {
			return ThreeWayMargin(v[0], v[1], v[2])
		},
	},
}

func lookup(kind Kind) (entry, bool) {
	for _, e := range registry {
		if e.Kind == kind {
			return e, true
		}
	}
	return entry{}, false
}

// Lookup returns the descriptor registered for kind.
func Lookup(kind Kind) (Descriptor, bool) {
	e, ok := lookup(kind)
	return e.Descriptor, ok
}

// Descriptors lists every registered calculator in presentation order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(registry))
	for i, e := range registry {
		out[i] = e.Descriptor
		out[i].Fields = append([]string(nil), e.Fields...)
	}
	return out
}

// Normalize parses the fields kind reads from in and renders the parsed
// values as "field=value&..." in descriptor order. Inputs that read as the
// same numbers ("1,15", "1.150", " 1.15") normalize identically; any field
// that fails to parse yields ErrInvalidInput.
func Normalize(kind Kind, in Inputs) (string, error) {
	e, ok := lookup(kind)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCalculator, kind)
	}
	values, err := in.floats(e.Fields...)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, name := range e.Fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(values[i], 'g', -1, 64))
	}
	return b.String(), nil
}

// Compute parses the calculator's fields from in and runs it. Any missing or
// non-numeric field aborts with ErrInvalidInput before computing.
func Compute(kind Kind, in Inputs) (Result, error) {
	e, ok := lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, kind)
	}
	values, err := in.floats(e.Fields...)
	if err != nil {
		return nil, err
	}
	result, err := e.compute(values)
	if err != nil {
		return nil, err
	}
	return result, nil
}
