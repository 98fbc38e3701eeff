// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"

	"github.com/bobmcallan/folio/internal/models"
)

// AnalysisService runs the analytics pipeline over request-scoped inputs
type AnalysisService interface {
	// Analyze produces the full report: summary, performance, risk,
	// sentiment, forecast, recommendations and chart data
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisReport, error)

	// AssessRisk computes concentration and volatility only
	AssessRisk(ctx context.Context, req models.AnalysisRequest) (*models.RiskMetrics, error)

	// AnalyzeSentiment scores news and extracts recent events only
	AnalyzeSentiment(ctx context.Context, req models.AnalysisRequest) (*models.SentimentReport, error)

	// Forecast projects the current portfolio value under each scenario
	Forecast(ctx context.Context, req models.AnalysisRequest) (*models.ForecastReport, error)
}

// ReportService wraps analysis with personalization, history and export
type ReportService interface {
	// Generate analyzes the request for the context user, applies their
	// preferences and saves the result to history
	Generate(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisReport, error)

	// Export encodes a report as json, csv, markdown or pdf
	Export(ctx context.Context, report *models.AnalysisReport, format models.ExportFormat) (*models.ExportResult, error)

	// Compare diffs a report against the newest saved report older than
	// the lookback window, the configured one unless the request sets it
	Compare(ctx context.Context, req models.CompareRequest) (*models.ComparisonReport, error)

	// History lists saved reports for the context user, newest first
	History(ctx context.Context, limit int) ([]*models.SavedReport, error)

	// RenderChart draws one visualization record of the latest saved report as PNG
	RenderChart(ctx context.Context, kind string) ([]byte, error)
}

// InsightService answers free-text questions about an analyzed portfolio
type InsightService interface {
	// Answer classifies the question and fills a templated answer from the
	// request's report, running the analysis first when only positions are given
	Answer(ctx context.Context, req models.InsightRequest) (*models.InsightResponse, error)
}

// PreferenceService manages per-user analysis defaults
type PreferenceService interface {
	Get(ctx context.Context) (*models.UserPreferences, error)
	Update(ctx context.Context, prefs models.UserPreferences) (*models.UserPreferences, error)
}
