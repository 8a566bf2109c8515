package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bad-bets/internal/calculator"
	"github.com/yourusername/bad-bets/internal/catalog"
	"github.com/yourusername/bad-bets/internal/models"
)

func TestParseCalcArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantKind   calculator.Kind
		wantInputs calculator.Inputs
		wantJSON   bool
		wantErr    bool
	}{
		{
			name:       "equals form",
			args:       []string{"badbet", "--odds=1.15", "--stake=100"},
			wantKind:   calculator.KindBadBet,
			wantInputs: calculator.Inputs{"odds": "1.15", "stake": "100"},
		},
		{
			name:       "separate values and json",
			args:       []string{"kelly", "--bankroll", "1000", "--odds", "2,10", "--probability", "55", "--json"},
			wantKind:   calculator.KindKelly,
			wantInputs: calculator.Inputs{"bankroll": "1000", "odds": "2,10", "probability": "55"},
			wantJSON:   true,
		},
		{
			name:       "bare pairs",
			args:       []string{"margin2", "odds1=1.9", "odds2=1.9"},
			wantKind:   calculator.KindMargin2,
			wantInputs: calculator.Inputs{"odds1": "1.9", "odds2": "1.9"},
		},
		{name: "missing kind", args: []string{"--odds=2"}, wantErr: true},
		{name: "unknown kind", args: []string{"roulette"}, wantErr: true},
		{name: "dangling flag", args: []string{"badbet", "--odds"}, wantErr: true},
		{name: "two kinds", args: []string{"badbet", "value"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, inputs, asJSON, help, err := parseCalcArgs(tt.args)
			assert.False(t, help)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantInputs, inputs)
			assert.Equal(t, tt.wantJSON, asJSON)
		})
	}

	_, _, _, help, err := parseCalcArgs([]string{"badbet", "--help"})
	assert.NoError(t, err)
	assert.True(t, help)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		jsonOutput = false
		badBetsSport = ""
		compareStake = 0
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCalcCommand(t *testing.T) {
	out, err := run(t, "calc", "badbet", "--odds=1.15", "--stake=100")
	require.NoError(t, err)
	assert.Contains(t, out, "potentialWin")
	assert.Contains(t, out, "15.00")

	_, err = run(t, "calc", "badbet", "--odds=0.9", "--stake=100")
	assert.ErrorIs(t, err, calculator.ErrInvalidInput)
}

func TestProvidersCommand(t *testing.T) {
	out, err := run(t, "providers")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "bet365")
}

func TestLinkCommand(t *testing.T) {
	out, err := run(t, "link", "betano", "--campaign", "newsletter")
	require.NoError(t, err)
	assert.Contains(t, out, "https://www.betano.de")
	assert.Contains(t, out, "campaign=newsletter")

	_, err = run(t, "link", "tipico")
	assert.Error(t, err)
}

func TestBadBetsCommandJSON(t *testing.T) {
	out, err := run(t, "bad-bets", "--sport", "Fußball", "--json")
	require.NoError(t, err)

	var bets []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &bets))
	assert.Len(t, bets, 3)
}

func TestRepriceComparisons(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	same, err := repriceComparisons(cat.Comparisons(), 0)
	require.NoError(t, err)
	assert.Equal(t, 25.0, same[0].Loss)

	repriced, err := repriceComparisons(cat.Comparisons(), 50)
	require.NoError(t, err)
	assert.Equal(t, 12.5, repriced[0].Loss)
	assert.Equal(t, 50.0, repriced[0].Stake)
	assert.Equal(t, 10.0, repriced[1].Loss)
}

func TestLeadsCommandNeedsPostgres(t *testing.T) {
	t.Cleanup(func() {
		leadsLimit = 20
		leadsEmail = ""
	})

	_, err := run(t, "leads", "--limit", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"memory"`)
	assert.Contains(t, err.Error(), `"postgres"`)
}

func TestPrintLeads(t *testing.T) {
	var out bytes.Buffer
	created := time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC)
	err := printLeads(&out, []*models.Lead{
		{Email: "fan@example.de", Source: "newsletter", Sport: "Fußball", CreatedAt: created},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "CREATED"))
	assert.Contains(t, lines[1], "2024-05-04T10:00:00Z")
	assert.Contains(t, lines[1], "fan@example.de")
	assert.Contains(t, lines[1], "Fußball")
}
