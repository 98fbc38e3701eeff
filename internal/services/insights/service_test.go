package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/analysis"
	"github.com/bobmcallan/folio/internal/services/sentiment"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

// countingAnalysis records Analyze calls and delegates to the real service.
type countingAnalysis struct {
	interfaces.AnalysisService
	calls int
	err   error
}

func (c *countingAnalysis) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisReport, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.AnalysisService.Analyze(ctx, req)
}

func newTestService() (*Service, *countingAnalysis) {
	logger := common.NewSilentLogger()
	ca := &countingAnalysis{AnalysisService: analysis.NewService(models.DefaultAnalysisConfig(), logger)}
	svc := NewService(ca, logger)
	svc.now = func() time.Time { return testNow }
	return svc, ca
}

func aaplOnly() *models.AnalysisRequest {
	return &models.AnalysisRequest{
		Positions: []models.Position{{Symbol: "AAPL", Quantity: 10, PurchasePrice: 150, CurrentPrice: 201}},
		NewsBySymbol: map[string][]models.NewsItem{
			"AAPL": {{Headline: "Apple shares surge after strong earnings", PublishedAt: testNow.AddDate(0, 0, -1)}},
		},
		AsOf: &testNow,
	}
}

func analyzed(t *testing.T, req *models.AnalysisRequest) *models.AnalysisReport {
	t.Helper()
	svc, _ := newTestService()
	report, err := svc.analysis.Analyze(context.Background(), *req)
	require.NoError(t, err)
	return report
}

func TestClassify(t *testing.T) {
	tests := []struct {
		question string
		mentions []string
		want     models.QuestionType
	}{
		{"Should I buy more?", nil, models.QuestionInvestment},
		{"What do you recommend for AAPL", []string{"AAPL"}, models.QuestionInvestment},
		{"Tell me about this company", nil, models.QuestionStock},
		{"How is it doing", []string{"TSLA"}, models.QuestionStock},
		{"What is the market outlook?", nil, models.QuestionMarket},
		{"Any news today", nil, models.QuestionMarket},
		{"How do I rebalance my portfolio", nil, models.QuestionOptimization},
		{"Is my allocation sensible", nil, models.QuestionOptimization},
		{"Hello there", nil, models.QuestionGeneral},
		// whole tokens only
		{"Marketing budget review", nil, models.QuestionGeneral},
		{"Investors are buyers", nil, models.QuestionGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got := classify(DefaultRules, sentiment.Tokenize(tt.question), tt.mentions)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMentionedSymbols(t *testing.T) {
	report := analyzed(t, aaplOnly())
	q := "Compare aapl, TSLA and Microsoft with the CEO view on AAPL"
	got := mentionedSymbols(q, sentiment.Tokenize(q), report)
	assert.Equal(t, []string{"TSLA", "AAPL", "MSFT"}, got)

	q = "What about Coca-Cola and Johnson & Johnson"
	assert.Equal(t, []string{"KO", "JNJ"}, mentionedSymbols(q, sentiment.Tokenize(q), nil))
}

func TestAnswer_WithoutReport(t *testing.T) {
	svc, ca := newTestService()
	tests := []struct {
		question string
		want     models.QuestionType
		answer   string
	}{
		{"Should I invest more?", models.QuestionInvestment, needsReportInvestment},
		{"How is AAPL doing?", models.QuestionStock, needsReportStock},
		{"What is the market trend?", models.QuestionMarket, needsReportMarket},
		{"Should my portfolio be diversified", models.QuestionOptimization, needsReportOptimization},
		{"Good morning", models.QuestionGeneral, generalAnswer(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			resp, err := svc.Answer(context.Background(), models.InsightRequest{Question: tt.question})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.QuestionType)
			assert.Equal(t, tt.answer, resp.Answer)
			assert.Equal(t, testNow, resp.Timestamp)
		})
	}
	assert.Zero(t, ca.calls)
}

func TestAnswer_RunsAnalysisWhenOnlyPositionsGiven(t *testing.T) {
	svc, ca := newTestService()
	resp, err := svc.Answer(context.Background(), models.InsightRequest{
		Question: "  Should I sell?  ",
		Analysis: aaplOnly(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ca.calls)
	assert.Equal(t, "Should I sell?", resp.Question)
	assert.Equal(t, models.QuestionInvestment, resp.QuestionType)
	assert.Contains(t, resp.Answer, "low diversification")
	assert.Contains(t, resp.Answer, "risk level is high")
	assert.Contains(t, resp.Answer, "+34.00% return")
	assert.Contains(t, resp.Answer, "Top recommendation (high priority)")
	assert.Contains(t, resp.Answer, disclaimer)
}

func TestAnswer_ReportTakesPrecedence(t *testing.T) {
	svc, ca := newTestService()
	report := analyzed(t, aaplOnly())

	resp, err := svc.Answer(context.Background(), models.InsightRequest{
		Question: "What's happening with Apple?",
		Report:   report,
		Analysis: &models.AnalysisRequest{},
	})
	require.NoError(t, err)
	assert.Zero(t, ca.calls)
	assert.Equal(t, models.QuestionStock, resp.QuestionType)
	assert.Equal(t, []string{"AAPL"}, resp.Symbols)
	assert.Contains(t, resp.Answer, "AAPL: sentiment is positive")
	assert.Contains(t, resp.Answer, "Position return is +34.00%")
	assert.Contains(t, resp.Answer, "Apple shares surge after strong earnings")
}

func TestAnswer_StockOutsidePortfolio(t *testing.T) {
	svc, _ := newTestService()
	report := analyzed(t, aaplOnly())
	resp, err := svc.Answer(context.Background(), models.InsightRequest{Question: "Tell me about NFLX and Disney", Report: report})
	require.NoError(t, err)
	assert.Equal(t, "NFLX: not part of the analyzed portfolio. DIS: not part of the analyzed portfolio.", resp.Answer)

	resp, err = svc.Answer(context.Background(), models.InsightRequest{Question: "Which stock is best", Report: report})
	require.NoError(t, err)
	assert.Equal(t, noSymbols, resp.Answer)
}

func TestAnswer_MarketAndOptimization(t *testing.T) {
	svc, _ := newTestService()
	report := analyzed(t, aaplOnly())

	resp, err := svc.Answer(context.Background(), models.InsightRequest{Question: "What is the outlook?", Report: report})
	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "sentiment across your holdings is positive")
	assert.Contains(t, resp.Answer, "Under the moderate scenario")
	assert.Contains(t, resp.Answer, "in 10 years")

	resp, err = svc.Answer(context.Background(), models.InsightRequest{Question: "Help me rebalance", Report: report})
	require.NoError(t, err)
	assert.Equal(t, models.QuestionOptimization, resp.QuestionType)
	assert.Contains(t, resp.Answer, "HHI 1.0000")
	assert.Contains(t, resp.Answer, "Adding more positions")
}

func TestOptimizationAnswer_WellBalanced(t *testing.T) {
	report := &models.AnalysisReport{
		PortfolioSummary: models.PortfolioSummary{NumberOfPositions: 6},
		RiskAnalysis: models.RiskMetrics{
			RiskLevel:            models.RiskLevelLow,
			ConcentrationMetrics: models.ConcentrationMetrics{HHI: 0.17},
		},
	}
	assert.Equal(t, "Portfolio optimization insights: Your portfolio looks well suited to its current risk profile.",
		optimizationAnswer(report))
}

func TestInvestmentAnswer_Branches(t *testing.T) {
	tests := []struct {
		name   string
		risk   models.RiskLevel
		ret    float64
		n      int
		expect string
	}{
		{"high risk losing", models.RiskLevelHigh, -5, 1, "defensive positions"},
		{"low risk winning", models.RiskLevelLow, 12, 6, "performing well"},
		{"few positions", models.RiskLevelMedium, 3, 2, "low diversification"},
		{"balanced", models.RiskLevelLow, 4, 8, "looks balanced"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &models.AnalysisReport{
				PortfolioSummary:    models.PortfolioSummary{NumberOfPositions: tt.n},
				PerformanceAnalysis: models.PerformanceAnalysis{ReturnPercentage: tt.ret},
				RiskAnalysis:        models.RiskMetrics{RiskLevel: tt.risk},
			}
			assert.Contains(t, investmentAnswer(report), tt.expect)
		})
	}
}

func TestAnswer_Errors(t *testing.T) {
	svc, ca := newTestService()

	_, err := svc.Answer(context.Background(), models.InsightRequest{Question: "   "})
	ie, ok := models.AsInputError(err)
	require.True(t, ok)
	assert.Equal(t, "question", ie.Field)

	_, err = svc.Answer(context.Background(), models.InsightRequest{Question: "Should I buy?", Analysis: &models.AnalysisRequest{}})
	ie, ok = models.AsInputError(err)
	require.True(t, ok)
	assert.Equal(t, "positions", ie.Field)

	ca.err = errors.New("boom")
	_, err = svc.Answer(context.Background(), models.InsightRequest{Question: "Should I buy?", Analysis: aaplOnly()})
	assert.EqualError(t, err, "boom")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Answer(ctx, models.InsightRequest{Question: "Should I buy?"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
}
