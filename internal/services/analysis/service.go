// Package analysis assembles the portfolio analysis report
package analysis

import (
	"context"
	"fmt"
	"math"
	"runtime/debug"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/forecast"
	"github.com/bobmcallan/folio/internal/services/recommendation"
	"github.com/bobmcallan/folio/internal/services/risk"
	"github.com/bobmcallan/folio/internal/services/sentiment"
	"golang.org/x/sync/errgroup"
)

// Service implements AnalysisService
type Service struct {
	cfg       models.AnalysisConfig
	risk      *risk.Calculator
	sentiment *sentiment.Analyzer
	forecast  *forecast.Engine
	recommend *recommendation.Engine
	logger    *common.Logger
}

var _ interfaces.AnalysisService = (*Service)(nil)

// NewService creates a new analysis service
func NewService(cfg models.AnalysisConfig, logger *common.Logger) *Service {
	return &Service{
		cfg:       cfg,
		risk:      risk.NewCalculator(cfg.Risk),
		sentiment: sentiment.NewAnalyzer(cfg),
		forecast:  forecast.NewEngine(cfg.Forecast),
		recommend: recommendation.NewEngine(recommendation.DefaultRules(cfg.Recommendation, cfg.Risk)),
		logger:    logger,
	}
}

// resolved is a validated request with prices filled in.
type resolved struct {
	req       models.AnalysisRequest
	portfolio models.Portfolio
	symbols   []string
	now       time.Time
	gaps      []models.DataGap
}

// prepare normalizes and validates the request, then resolves each
// position's current price: a positive quote wins, then a positive
// current_price, otherwise the purchase price with a quote gap.
func (s *Service) prepare(req models.AnalysisRequest) (*resolved, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var gaps []models.DataGap
	gapped := make(map[string]bool)
	for i := range req.Positions {
		p := &req.Positions[i]
		if q, ok := req.Quotes[p.Symbol]; ok && q > 0 {
			p.CurrentPrice = q
			continue
		}
		if p.CurrentPrice > 0 {
			continue
		}
		p.CurrentPrice = p.PurchasePrice
		if !gapped[p.Symbol] {
			gapped[p.Symbol] = true
			gaps = append(gaps, models.DataGap{
				Symbol:   p.Symbol,
				Kind:     models.DataGapQuote,
				Fallback: "purchase price, zero return",
			})
		}
	}

	total := 0.0
	for i, p := range req.Positions {
		if !finite(p.PositionValue()) || !finite(p.Cost()) {
			return nil, models.NewInputError(fmt.Sprintf("positions[%d]", i), "value is not a finite number")
		}
		total += p.PositionValue()
	}
	if !finite(total) {
		return nil, models.NewInputError("positions", "total value is not a finite number")
	}

	portfolio := req.Portfolio()
	return &resolved{
		req:       req,
		portfolio: portfolio,
		symbols:   portfolio.Symbols(),
		now:       req.Now(),
		gaps:      gaps,
	}, nil
}

// Analyze runs risk, sentiment and forecast concurrently, then evaluates
// recommendations once all three are done.
func (s *Service) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	summary := summarize(r.req.Positions)
	perf := performance(r.req.Positions)

	var (
		riskMetrics    models.RiskMetrics
		riskGaps       []models.DataGap
		sentReport     models.SentimentReport
		sentGaps       []models.DataGap
		forecastReport models.ForecastReport
	)

	var g errgroup.Group
	g.Go(guard("risk", func() {
		riskMetrics, riskGaps = s.risk.Calculate(r.req.Positions, r.req.HistoricalReturnsBySymbol)
	}))
	g.Go(guard("sentiment", func() {
		sentReport, sentGaps = s.sentiment.Analyze(r.symbols, r.req.NewsBySymbol, r.now)
	}))
	g.Go(guard("forecast", func() {
		forecastReport = s.forecast.Project(perf.CurrentValue, r.portfolio.RiskTolerance)
	}))
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("Analysis stage failed")
		return nil, err
	}

	recs := s.recommend.Evaluate(recommendation.Context{
		Portfolio:   r.portfolio,
		Positions:   summary.Positions,
		Risk:        riskMetrics,
		Sentiment:   sentReport,
		Performance: perf,
	})

	gaps := append(append(append([]models.DataGap{}, r.gaps...), sentGaps...), riskGaps...)

	report := &models.AnalysisReport{
		Timestamp:           r.now,
		PortfolioSummary:    summary,
		PerformanceAnalysis: perf,
		RiskAnalysis:        riskMetrics,
		MarketSentiment:     sentReport,
		Forecast:            forecastReport,
		Recommendations:     recs,
		VisualizationData:   visualize(summary, riskMetrics, sentReport, forecastReport, r.symbols),
		DataGaps:            gaps,
	}

	s.logger.Debug().
		Int("positions", summary.NumberOfPositions).
		Str("risk_level", string(riskMetrics.RiskLevel)).
		Str("sentiment", string(sentReport.OverallSentiment)).
		Int("recommendations", len(recs)).
		Int("data_gaps", len(gaps)).
		Msg("Portfolio analyzed")

	return report, nil
}

// AssessRisk computes risk metrics only.
func (s *Service) AssessRisk(ctx context.Context, req models.AnalysisRequest) (*models.RiskMetrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	m, _ := s.risk.Calculate(r.req.Positions, r.req.HistoricalReturnsBySymbol)
	return &m, nil
}

// AnalyzeSentiment scores news and extracts events only.
func (s *Service) AnalyzeSentiment(ctx context.Context, req models.AnalysisRequest) (*models.SentimentReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	report, _ := s.sentiment.Analyze(r.symbols, r.req.NewsBySymbol, r.now)
	return &report, nil
}

// Forecast projects the resolved portfolio value only.
func (s *Service) Forecast(ctx context.Context, req models.AnalysisRequest) (*models.ForecastReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	report := s.forecast.Project(r.portfolio.TotalValue(), r.portfolio.RiskTolerance)
	return &report, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// guard converts a panic in a pipeline stage into an error.
func guard(stage string, fn func()) func() error {
	return func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("%s stage panicked: %v\n%s", stage, rec, debug.Stack())
			}
		}()
		fn()
		return nil
	}
}
