package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bad-bets/internal/affiliate"
	"github.com/yourusername/bad-bets/internal/cache"
	"github.com/yourusername/bad-bets/internal/catalog"
	"github.com/yourusername/bad-bets/internal/config"
	"github.com/yourusername/bad-bets/internal/health"
	"github.com/yourusername/bad-bets/internal/logger"
	"github.com/yourusername/bad-bets/internal/metrics"
	"github.com/yourusername/bad-bets/internal/models"
	"github.com/yourusername/bad-bets/internal/repository"
	"github.com/yourusername/bad-bets/internal/service"
)

const testOrigin = "https://bad-bets.de"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	metrics.InitRegistry()

	log := logrus.New()
	log.SetOutput(io.Discard)

	cat, err := catalog.Default()
	require.NoError(t, err)

	c := cache.NewMemoryCache(time.Minute, time.Minute, "api", 0)
	checker := health.NewChecker("bad-bets", "test", log)
	checker.AddDependency("cache", c)
	checker.SetReady(true)

	return NewRouter(Deps{
		Calculators:    service.NewCalculatorService(c, config.CalculatorsConfig{CacheResults: true}, time.Minute, logger.NewCalculatorLogger(log)),
		Leads:          service.NewLeadService(repository.NewMemoryLeadRepository(), logger.NewAuditLogger(log)),
		Comparisons:    service.NewComparisonService(cat, c, nil, time.Minute, log),
		Catalog:        cat,
		Links:          affiliate.NewBuilder(cat, map[string]string{"bet365": "bb365"}, affiliate.Tracking{Source: "badbets"}),
		Health:         checker,
		Audit:          logger.NewAuditLogger(log),
		Logger:         log,
		AllowedOrigins: []string{testOrigin},
		RequestTimeout: 5 * time.Second,
		MetricsPath:    "/metrics",
	})
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestListCalculators(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/v1/calculators", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var descriptors []struct {
		Kind   string   `json:"kind"`
		Fields []string `json:"fields"`
	}
	decode(t, rec, &descriptors)
	require.Len(t, descriptors, 6)
	assert.Equal(t, "badbet", descriptors[0].Kind)
	assert.Equal(t, []string{"odds", "stake"}, descriptors[0].Fields)
}

func TestCalculate(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name        string
		kind        string
		contentType string
		body        string
		wantStatus  int
		wantField   string
		wantValue   string
	}{
		{"json numbers", "badbet", "application/json", `{"odds":1.15,"stake":100}`, http.StatusOK, "potentialWin", "15.00"},
		{"json strings with comma", "value", "application/json", `{"odds":"2,50","trueProbability":"50"}`, http.StatusOK, "expectedValue", "25.00"},
		{"form values", "margin2", "application/x-www-form-urlencoded", "odds1=1.90&odds2=1.90", http.StatusOK, "margin", "5.26"},
		{"invalid odds", "kelly", "application/json", `{"bankroll":1000,"odds":1,"probability":50}`, http.StatusUnprocessableEntity, "", ""},
		{"missing field", "arbitrage", "application/json", `{"odds1":2.1}`, http.StatusUnprocessableEntity, "", ""},
		{"unknown calculator", "roulette", "application/json", `{}`, http.StatusNotFound, "", ""},
		{"malformed json", "badbet", "application/json", `{"odds":`, http.StatusBadRequest, "", ""},
		{"non-scalar value", "badbet", "application/json", `{"odds":[1.15],"stake":100}`, http.StatusBadRequest, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/v1/calculators/"+tt.kind, tt.contentType, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus != http.StatusOK {
				var body map[string]string
				decode(t, rec, &body)
				assert.NotEmpty(t, body["error"])
				return
			}

			var calc service.Calculation
			decode(t, rec, &calc)
			assert.Equal(t, tt.kind, string(calc.Kind))
			assert.Equal(t, tt.wantValue, calc.Fields[tt.wantField])
		})
	}
}

func TestProviders(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/v1/providers", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var providers []models.Provider
	decode(t, rec, &providers)
	require.Len(t, providers, 3)
	assert.Equal(t, "bet365", providers[0].ID)
	assert.NotContains(t, rec.Body.String(), "DEIN_CODE")

	rec = do(t, router, http.MethodGet, "/api/v1/providers/bwin", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/providers/tipico", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBadBets(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/v1/bad-bets?sport=Tennis", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/v1/bad-bets?sport=all", "", "")
	var all []models.BadBet
	decode(t, rec, &all)
	assert.Len(t, all, 3)

	rec = do(t, router, http.MethodGet, "/api/v1/bad-bets/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		ID            string            `json:"id"`
		WinsNeeded    int               `json:"wins_needed"`
		ProviderLinks map[string]string `json:"provider_links"`
	}
	decode(t, rec, &detail)
	assert.Equal(t, "1", detail.ID)
	assert.Equal(t, 7, detail.WinsNeeded)

	link, err := url.Parse(detail.ProviderLinks["bet365"])
	require.NoError(t, err)
	assert.Equal(t, "bb365", link.Query().Get("affiliate"))
	assert.Equal(t, "bad-bet-1", link.Query().Get("campaign"))
	assert.Contains(t, detail.ProviderLinks, "betano")

	rec = do(t, router, http.MethodGet, "/api/v1/bad-bets/42", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/sports", "", "")
	assert.JSONEq(t, `["all","Fußball"]`, rec.Body.String())
}

func TestComparisons(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/v1/comparisons", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var comparisons []models.Comparison
	decode(t, rec, &comparisons)
	require.Len(t, comparisons, 2)
	assert.Equal(t, 25.0, comparisons[0].Loss)
	assert.Equal(t, models.RatingBest, comparisons[0].Quotes[0].Rating)
}

func TestSubscribe(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/leads", "application/json", `{"email":"Fan@Example.de","source":"footer","sport":"Fußball"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var lead models.Lead
	decode(t, rec, &lead)
	assert.Equal(t, "fan@example.de", lead.Email)

	rec = do(t, router, http.MethodPost, "/api/v1/leads", "application/json", `{"email":"fan@example.de","source":"tools"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/leads", "application/json", `{"email":"nope","source":"tools"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/leads", "application/json", `{"email":"a@b.de","source":"tools","admin":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRedirect(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/go/bet365?campaign=bayern&medium=banner", "", "")
	require.Equal(t, http.StatusFound, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "www.bet365.com", location.Host)
	assert.Equal(t, "bb365", location.Query().Get("affiliate"))
	assert.Equal(t, "badbets", location.Query().Get("source"))
	assert.Equal(t, "bayern", location.Query().Get("campaign"))
	assert.Equal(t, "banner", location.Query().Get("medium"))

	rec = do(t, router, http.MethodGet, "/go/tipico", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthMetricsAndCORS(t *testing.T) {
	router := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/ready", "", "").Code)

	do(t, router, http.MethodPost, "/api/v1/calculators/badbet", "application/json", `{"odds":1.5,"stake":10}`)
	rec := do(t, router, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad_bets_calculations_total")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sports", nil)
	req.Header.Set("Origin", testOrigin)
	cors := httptest.NewRecorder()
	router.ServeHTTP(cors, req)
	assert.Equal(t, testOrigin, cors.Header().Get("Access-Control-Allow-Origin"))

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/nothing", "", "").Code)
}

func TestCalculateStream(t *testing.T) {
	server := httptest.NewServer(newTestRouter(t))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/calculate"
	header := http.Header{"Origin": []string{testOrigin}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	frames := []struct {
		send      string
		wantError bool
		field     string
		value     string
	}{
		{`{"kind":"kelly","inputs":{"bankroll":1000,"odds":"2.0","probability":"55"}}`, false, "fullKelly", "100.00"},
		{`{"kind":"kelly","inputs":{"bankroll":1000,"odds":"1.0","probability":"55"}}`, true, "", ""},
		{`not json`, true, "", ""},
		{`{"kind":"arbitrage","inputs":{"odds1":"2.10","odds2":"2.10","totalStake":"100"}}`, false, "isArbitrage", "true"},
	}

	for _, f := range frames {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(f.send)))

		var resp wsResponse
		require.NoError(t, conn.ReadJSON(&resp))
		if f.wantError {
			assert.NotEmpty(t, resp.Error, f.send)
			continue
		}
		assert.Empty(t, resp.Error, f.send)
		assert.Equal(t, f.value, resp.Fields[f.field], f.send)
	}
}

func TestCalculateStreamRejectsForeignOrigin(t *testing.T) {
	server := httptest.NewServer(newTestRouter(t))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/calculate"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": []string{"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
