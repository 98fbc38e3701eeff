package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/app"
	"github.com/bobmcallan/folio/internal/models"
)

const aaplRequest = `{
	"positions": [{"symbol": "AAPL", "quantity": 10, "purchase_price": 150, "current_price": 201}],
	"as_of": "2024-03-15T12:00:00Z"
}`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	config := `
[server.rate_limit]
requests_per_second = 0

[storage]
path = "` + filepath.Join(dir, "data") + `"

[logging]
level = "error"
outputs = ["file"]
file_path = "` + filepath.Join(dir, "logs", "folio.log") + `"
`
	configPath := filepath.Join(dir, "folio.toml")
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}

// testServer creates an httptest.Server with the full folio-server handler.
func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	a, err := app.NewApp(writeTestConfig(t))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	srv := NewServer(a)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, user string, body string) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-Folio-User-ID", user)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthEndpoint(t *testing.T) {
	ts := testServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/api/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestHealthEndpoint_MethodNotAllowed(t *testing.T) {
	ts := testServer(t)
	resp := do(t, http.MethodPost, ts.URL+"/api/health", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestVersionAndConfigEndpoints(t *testing.T) {
	ts := testServer(t)

	var version map[string]string
	decode(t, do(t, http.MethodGet, ts.URL+"/api/version", "", ""), &version)
	assert.NotEmpty(t, version["version"])

	var cfg map[string]interface{}
	decode(t, do(t, http.MethodGet, ts.URL+"/api/config", "carol", ""), &cfg)
	assert.Equal(t, "carol", cfg["user_id"])
	assert.NotNil(t, cfg["analysis"])
}

func TestAnalyzePortfolio_SavesHistoryAndCharts(t *testing.T) {
	ts := testServer(t)

	// No saved report yet
	resp := do(t, http.MethodGet, ts.URL+"/api/charts/composition", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodPost, ts.URL+"/api/analyze-portfolio", "", aaplRequest)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report models.AnalysisReport
	decode(t, resp, &report)
	assert.InDelta(t, 2010.0, report.PortfolioSummary.TotalValue, 1e-9)
	assert.Equal(t, models.RiskLevelHigh, report.RiskAnalysis.RiskLevel)
	require.NotEmpty(t, report.Recommendations)

	var history struct {
		Reports []models.SavedReport `json:"reports"`
		Count   int                  `json:"count"`
	}
	decode(t, do(t, http.MethodGet, ts.URL+"/api/reports/history?limit=5", "", ""), &history)
	assert.Equal(t, 1, history.Count)

	// Other users see their own history only
	decode(t, do(t, http.MethodGet, ts.URL+"/api/reports/history", "bob", ""), &history)
	assert.Equal(t, 0, history.Count)

	resp = do(t, http.MethodGet, ts.URL+"/api/charts/composition", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	png, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	resp = do(t, http.MethodGet, ts.URL+"/api/charts/unknown", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalysisEndpoints_InvalidInput(t *testing.T) {
	ts := testServer(t)
	body := `{"positions": [{"symbol": "AAPL", "quantity": -1, "purchase_price": 10}]}`

	for _, path := range []string{"/api/analyze-portfolio", "/api/risk-assessment", "/api/sentiment-analysis", "/api/forecast"} {
		t.Run(path, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+path, "", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var e ErrorResponse
			decode(t, resp, &e)
			assert.Equal(t, "invalid_input", e.Code)
			assert.Equal(t, "positions[0].quantity", e.Field)
		})
	}

	resp := do(t, http.MethodPost, ts.URL+"/api/forecast", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/api/forecast", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestPartialAnalysisEndpoints(t *testing.T) {
	ts := testServer(t)

	var risk models.RiskMetrics
	resp := do(t, http.MethodPost, ts.URL+"/api/risk-assessment", "", aaplRequest)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &risk)
	assert.InDelta(t, 1.0, risk.ConcentrationMetrics.HHI, 1e-9)

	var sentiment models.SentimentReport
	resp = do(t, http.MethodPost, ts.URL+"/api/sentiment-analysis", "", aaplRequest)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &sentiment)
	assert.Equal(t, models.SentimentNeutral, sentiment.OverallSentiment)

	var forecast models.ForecastReport
	resp = do(t, http.MethodPost, ts.URL+"/api/forecast", "", aaplRequest)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &forecast)
	assert.NotNil(t, forecast.Scenario("moderate"))
}

func TestReportExport(t *testing.T) {
	ts := testServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/api/analyze-portfolio", "", aaplRequest)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := `{"format": "markdown", "report": ` + string(raw) + `}`
	resp = do(t, http.MethodPost, ts.URL+"/api/reports/export", "", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "portfolio_report_20240315_120000.md")
	md, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(md), "# Portfolio Analysis Report"))

	body = `{"format": "xml", "report": ` + string(raw) + `}`
	resp = do(t, http.MethodPost, ts.URL+"/api/reports/export", "", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "format", e.Field)
}

func TestReportCompare_NoBaseline(t *testing.T) {
	ts := testServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/api/analyze-portfolio", "", aaplRequest)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	resp = do(t, http.MethodPost, ts.URL+"/api/reports/compare", "", string(raw))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cmp models.ComparisonReport
	decode(t, resp, &cmp)
	assert.False(t, cmp.Available)
	assert.Equal(t, 30, cmp.LookbackDays)

	wrapped := `{"report": ` + string(raw) + `, "lookback_days": 7}`
	resp = do(t, http.MethodPost, ts.URL+"/api/reports/compare", "", wrapped)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &cmp)
	assert.Equal(t, 7, cmp.LookbackDays)

	negative := `{"report": ` + string(raw) + `, "lookback_days": -2}`
	resp = do(t, http.MethodPost, ts.URL+"/api/reports/compare", "", negative)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "lookback_days", e.Field)
}

func TestInsights(t *testing.T) {
	ts := testServer(t)

	body := `{"question": "Should I buy more?", "analysis": ` + aaplRequest + `}`
	resp := do(t, http.MethodPost, ts.URL+"/api/insights", "", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ins models.InsightResponse
	decode(t, resp, &ins)
	assert.Equal(t, models.QuestionInvestment, ins.QuestionType)
	assert.Contains(t, ins.Answer, "risk level is high")

	resp = do(t, http.MethodPost, ts.URL+"/api/insights", "", `{"question": "What is the outlook?"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &ins)
	assert.Equal(t, models.QuestionMarket, ins.QuestionType)
	assert.Contains(t, ins.Answer, "Analyze your portfolio first")

	resp = do(t, http.MethodPost, ts.URL+"/api/insights", "", `{"question": ""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "question", e.Field)

	resp = do(t, http.MethodGet, ts.URL+"/api/insights", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestPreferences_PerUser(t *testing.T) {
	ts := testServer(t)

	var prefs models.UserPreferences
	decode(t, do(t, http.MethodGet, ts.URL+"/api/preferences", "alice", ""), &prefs)
	assert.Equal(t, models.RiskModerate, prefs.RiskTolerance)

	resp := do(t, http.MethodPut, ts.URL+"/api/preferences", "alice", `{"risk_tolerance": "aggressive", "report_format": "summary"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &prefs)
	assert.Equal(t, "alice", prefs.UserID)
	assert.Equal(t, models.RiskAggressive, prefs.RiskTolerance)

	decode(t, do(t, http.MethodGet, ts.URL+"/api/preferences", "alice", ""), &prefs)
	assert.Equal(t, models.RiskAggressive, prefs.RiskTolerance)

	decode(t, do(t, http.MethodGet, ts.URL+"/api/preferences", "", ""), &prefs)
	assert.Equal(t, models.RiskModerate, prefs.RiskTolerance)

	resp = do(t, http.MethodPut, ts.URL+"/api/preferences", "alice", `{"risk_tolerance": "reckless"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
