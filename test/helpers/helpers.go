// Package helpers holds shared fixtures for the integration and end-to-end
// suites.
package helpers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// QuoteFixture is the canned upstream answer for one match and bet.
type QuoteFixture struct {
	Match  string        `json:"match"`
	Bet    string        `json:"bet"`
	Quotes []QuoteRecord `json:"quotes"`
}

// QuoteRecord is one provider entry in a QuoteFixture.
type QuoteRecord struct {
	Provider string  `json:"provider"`
	Odds     float64 `json:"odds"`
}

// QuietLogger returns a logger that discards everything.
func QuietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// LoadFixture loads test data from a JSON file under test/fixtures.
func LoadFixture(t *testing.T, filename string, target interface{}) {
	t.Helper()

	_, self, _, _ := runtime.Caller(0)
	fixturePath := filepath.Join(filepath.Dir(self), "..", "fixtures", filename)
	data, err := os.ReadFile(fixturePath)
	require.NoError(t, err, "failed to read fixture file: %s", filename)

	err = json.Unmarshal(data, target)
	require.NoError(t, err, "failed to unmarshal fixture: %s", filename)
}

// LoadQuoteFixtures loads the odds feed answers.
func LoadQuoteFixtures(t *testing.T) []QuoteFixture {
	t.Helper()

	var quotes []QuoteFixture
	LoadFixture(t, "quotes.json", &quotes)
	return quotes
}

// MockOddsFeedServer serves fixtures on the odds feed quotes endpoint. Unknown
// match and bet pairs get a 404. The returned counter tracks requests.
func MockOddsFeedServer(t *testing.T, fixtures []QuoteFixture) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	calls := &atomic.Int32{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/v1/quotes" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		match, bet := r.URL.Query().Get("match"), r.URL.Query().Get("bet")
		for _, f := range fixtures {
			if strings.EqualFold(f.Match, match) && strings.EqualFold(f.Bet, bet) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]interface{}{"quotes": f.Quotes})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, calls
}

// DoJSON sends body as JSON and decodes the response into target when target
// is non-nil. It returns the status code.
func DoJSON(t *testing.T, client *http.Client, method, url, body string, target interface{}) int {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if target != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
	}
	return resp.StatusCode
}
