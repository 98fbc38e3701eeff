// Package insights answers free-text portfolio questions from an analysis
// report using a keyword question table and templated answers
package insights

import (
	"context"
	"strings"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/events"
	"github.com/bobmcallan/folio/internal/services/sentiment"
)

// maxSymbolsAnswered caps how many mentioned symbols a stock answer covers.
const maxSymbolsAnswered = 3

// Service implements InsightService
type Service struct {
	analysis interfaces.AnalysisService
	rules    []Rule
	logger   *common.Logger
	now      func() time.Time
}

var _ interfaces.InsightService = (*Service)(nil)

// NewService creates an insight service that runs analysis through the
// given service when a question arrives without a report.
func NewService(analysis interfaces.AnalysisService, logger *common.Logger) *Service {
	return &Service{
		analysis: analysis,
		rules:    DefaultRules,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Answer classifies the question and fills the matching answer template.
func (s *Service) Answer(ctx context.Context, req models.InsightRequest) (*models.InsightResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	report := req.Report
	if report == nil && req.Analysis != nil {
		r, err := s.analysis.Analyze(ctx, *req.Analysis)
		if err != nil {
			return nil, err
		}
		report = r
	}

	tokens := sentiment.Tokenize(req.Question)
	mentions := mentionedSymbols(req.Question, tokens, report)
	qtype := classify(s.rules, tokens, mentions)

	var answer string
	switch qtype {
	case models.QuestionInvestment:
		answer = investmentAnswer(report)
	case models.QuestionStock:
		answer = stockAnswer(report, mentions)
	case models.QuestionMarket:
		answer = marketAnswer(report)
	case models.QuestionOptimization:
		answer = optimizationAnswer(report)
	default:
		answer = generalAnswer(report)
	}

	s.logger.Debug().
		Str("question_type", string(qtype)).
		Int("symbols", len(mentions)).
		Bool("has_report", report != nil).
		Msg("Insight answered")

	return &models.InsightResponse{
		Question:     req.Question,
		QuestionType: qtype,
		Answer:       answer,
		Symbols:      mentions,
		Timestamp:    s.now(),
	}, nil
}

// mentionedSymbols collects symbols named in the question: upper-case
// tickers first, then held symbols written in any case, then company
// names. Order follows discovery and duplicates are dropped.
func mentionedSymbols(question string, tokens []string, report *models.AnalysisReport) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(sym string) {
		if !seen[sym] {
			seen[sym] = true
			out = append(out, sym)
		}
	}

	for _, m := range tickerPattern.FindAllString(question, -1) {
		if !notTickers[m] {
			add(m)
		}
	}
	if report != nil {
		for _, sym := range heldSymbols(report) {
			for _, tok := range tokens {
				if tok == strings.ToLower(sym) {
					add(sym)
					break
				}
			}
		}
	}
	for _, c := range DefaultCompanies {
		if events.ContainsKeyword(tokens, c.Name) {
			add(c.Symbol)
		}
	}
	return out
}
