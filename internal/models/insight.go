package models

import (
	"strings"
	"time"
)

// QuestionType is the category a free-text question is answered under
type QuestionType string

const (
	QuestionInvestment   QuestionType = "investment_recommendation"
	QuestionStock        QuestionType = "stock_analysis"
	QuestionMarket       QuestionType = "market_overview"
	QuestionOptimization QuestionType = "portfolio_optimization"
	QuestionGeneral      QuestionType = "general"
)

// InsightRequest is a question about a portfolio. Report answers from an
// existing analysis; otherwise Analysis is run first. With neither, the
// answer asks for an analysis.
type InsightRequest struct {
	Question string           `json:"question" validate:"required,max=1000"`
	Report   *AnalysisReport  `json:"report,omitempty" validate:"-"`
	Analysis *AnalysisRequest `json:"analysis,omitempty" validate:"-"`
}

// Validate trims the question and checks it is present and bounded.
func (r *InsightRequest) Validate() error {
	r.Question = strings.TrimSpace(r.Question)
	return validateStruct(*r)
}

// InsightResponse is a templated answer drawn from an analysis report
type InsightResponse struct {
	Question     string       `json:"question"`
	QuestionType QuestionType `json:"question_type"`
	Answer       string       `json:"answer"`
	Symbols      []string     `json:"symbols,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
}
