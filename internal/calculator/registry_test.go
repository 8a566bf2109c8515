package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputsFloat(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
		wantErr  bool
	}{
		{"plain", "2.5", 2.5, false},
		{"padded", "  1.85 ", 1.85, false},
		{"decimal comma", "1,85", 1.85, false},
		{"integer", "100", 100, false},
		{"empty", "", 0, true},
		{"text", "abc", 0, true},
		{"thousands and comma", "1.000,50", 0, true},
		{"NaN", "NaN", 0, true},
		{"infinity", "Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Inputs{"odds": tt.raw}.Float("odds")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, v, floatTolerance)
		})
	}
}

func TestInputsFloatMissingField(t *testing.T) {
	_, err := Inputs{}.Float("stake")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "stake")
}

func TestInputsCanonical(t *testing.T) {
	in := Inputs{"stake": " 100 ", "odds": "1.15"}
	assert.Equal(t, "odds=1.15&stake=100", in.Canonical())
	assert.Equal(t, "", Inputs{}.Canonical())
	assert.Equal(t, "odds=1.15%26stake%3D100", Inputs{"odds": "1.15&stake=100"}.Canonical())
}

func TestNormalize(t *testing.T) {
	key, err := Normalize(KindKelly, Inputs{"probability": "55", "odds": "2,10", "bankroll": "1000.00"})
	require.NoError(t, err)
	assert.Equal(t, "bankroll=1000&odds=2.1&probability=55", key)

	_, err = Normalize(KindBadBet, Inputs{"odds": "1.15&stake=100"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Normalize("roulette", Inputs{})
	assert.ErrorIs(t, err, ErrUnknownCalculator)
}

func TestInputsFloatRejectsHexLiterals(t *testing.T) {
	for _, raw := range []string{"0x1p1", "0X1P1", "-0x2p0", " +0x1.8p1"} {
		_, err := Inputs{"odds": raw}.Float("odds")
		assert.ErrorIs(t, err, ErrInvalidInput, raw)
	}
	v, err := Inputs{"odds": "0.5"}.Float("odds")
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
}

func TestInputsOnly(t *testing.T) {
	in := Inputs{"odds": "2", "stake": "10", "extra": "x"}
	assert.Equal(t, Inputs{"odds": "2", "stake": "10"}, in.Only("odds", "stake", "absent"))
}

func TestDescriptorsOrder(t *testing.T) {
	descriptors := Descriptors()
	require.Len(t, descriptors, 6)

	kinds := make([]Kind, len(descriptors))
	for i, d := range descriptors {
		kinds[i] = d.Kind
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.Fields)
	}
	assert.Equal(t, []Kind{KindBadBet, KindValue, KindKelly, KindArbitrage, KindMargin2, KindMargin3}, kinds)
}

func TestDescriptorsReturnsCopies(t *testing.T) {
	descriptors := Descriptors()
	descriptors[0].Fields[0] = "mutated"

	d, ok := Lookup(KindBadBet)
	require.True(t, ok)
	assert.Equal(t, []string{"odds", "stake"}, d.Fields)
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup(Kind("lotto"))
	assert.False(t, ok)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		in     Inputs
		field  string
		expect string
	}{
		{"bad bet", KindBadBet, Inputs{"odds": "1,15", "stake": "100"}, "winsNeeded", "7"},
		{"value", KindValue, Inputs{"odds": "2.5", "trueProbability": "45"}, "rating", "value_bet"},
		{"kelly", KindKelly, Inputs{"bankroll": "1000", "odds": "2.5", "probability": "45"}, "fullKelly", "83.33"},
		{"arbitrage", KindArbitrage, Inputs{"odds1": "2.10", "odds2": "2.05", "totalStake": "100"}, "isArbitrage", "true"},
		{"two way margin", KindMargin2, Inputs{"odds1": "1.90", "odds2": "1.90"}, "margin", "5.26"},
		{"three way margin", KindMargin3, Inputs{"odds1": "2.0", "oddsX": "3.4", "odds2": "3.8"}, "prob1", "50.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.kind, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, result.Kind())
			assert.Equal(t, tt.expect, result.Fields()[tt.field])
		})
	}
}

func TestComputeInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		in   Inputs
	}{
		{"missing stake", KindBadBet, Inputs{"odds": "1.5"}},
		{"non numeric odds", KindBadBet, Inputs{"odds": "abc", "stake": "10"}},
		{"odds of one", KindArbitrage, Inputs{"odds1": "2.0", "odds2": "1", "totalStake": "100"}},
		{"probability above hundred", KindKelly, Inputs{"bankroll": "100", "odds": "2", "probability": "120"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.kind, tt.in)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
