package calculator

import (
	"net/url"
	"strconv"
	"strings"
)

// Inputs maps input field names to the raw strings a user entered.
type Inputs map[string]string

// Float parses the named field. Surrounding whitespace is ignored and a
// single decimal comma is accepted, so "1,85" reads as 1.85.
func (in Inputs) Float(name string) (float64, error) {
	raw, ok := in[name]
	if !ok {
		return 0, invalid(name, "is required")
	}
	raw = strings.TrimSpace(raw)
	if isHexLiteral(raw) {
		return 0, invalid(name, "must be a decimal number, got %q", in[name])
	}
	if strings.Count(raw, ",") == 1 && !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !isFinite(v) {
		return 0, invalid(name, "must be a number, got %q", in[name])
	}
	return v, nil
}

// isHexLiteral reports whether raw is a "0x" float literal, which ParseFloat
// accepts but a form user never means.
func isHexLiteral(raw string) bool {
	raw = strings.TrimLeft(raw, "+-")
	return len(raw) > 1 && raw[0] == '0' && (raw[1] == 'x' || raw[1] == 'X')
}

// floats parses every named field in order, stopping at the first failure.
func (in Inputs) floats(names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := in.Float(name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Only returns a copy restricted to the named fields that are present.
func (in Inputs) Only(names ...string) Inputs {
	out := make(Inputs, len(names))
	for _, name := range names {
		if v, ok := in[name]; ok {
			out[name] = v
		}
	}
	return out
}

// Canonical renders the inputs as a stable, query-escaped "k=v&k=v" string
// with keys sorted and values trimmed. It identifies raw input in logs; cache
// keys come from Normalize.
func (in Inputs) Canonical() string {
	v := make(url.Values, len(in))
	for k, raw := range in {
		v.Set(k, strings.TrimSpace(raw))
	}
	return v.Encode()
}
