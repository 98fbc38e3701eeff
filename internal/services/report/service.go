// Package report provides report generation, history and export services
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// Service implements ReportService
type Service struct {
	analysis interfaces.AnalysisService
	prefs    interfaces.PreferenceService
	storage  interfaces.StorageManager
	config   common.ReportsConfig
	logger   *common.Logger
}

var _ interfaces.ReportService = (*Service)(nil)

// NewService creates a new report service
func NewService(
	analysis interfaces.AnalysisService,
	prefs interfaces.PreferenceService,
	storage interfaces.StorageManager,
	config common.ReportsConfig,
	logger *common.Logger,
) *Service {
	return &Service{
		analysis: analysis,
		prefs:    prefs,
		storage:  storage,
		config:   config,
		logger:   logger,
	}
}

// Generate applies the user's preferences to the request, runs the analysis,
// saves the full report to history and shapes it to the preferred format.
func (s *Service) Generate(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisReport, error) {
	userID := common.ResolveUserID(ctx)

	prefs, err := s.prefs.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("Preferences unavailable, using defaults")
		def := models.DefaultPreferences(userID)
		prefs = &def
	}
	req = prefs.ApplyTo(req)

	report, err := s.analysis.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.config.SaveHistory {
		s.save(ctx, userID, report)
	}

	s.logger.Info().
		Str("user", userID).
		Int("positions", report.PortfolioSummary.NumberOfPositions).
		Str("risk_level", string(report.RiskAnalysis.RiskLevel)).
		Str("format", string(prefs.ReportFormat)).
		Msg("Report generated")

	if prefs.ReportFormat == models.ReportSummary {
		return summaryView(report), nil
	}
	return report, nil
}

// save stores the report and prunes history. Failures are logged, never
// returned: history is best effort.
func (s *Service) save(ctx context.Context, userID string, report *models.AnalysisReport) {
	saved := &models.SavedReport{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: report.Timestamp,
		Report:    *report,
	}
	store := s.storage.ReportStore()
	if err := store.SaveReport(ctx, saved); err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("Failed to save report history")
		return
	}
	if s.config.MaxHistory > 0 {
		if _, err := store.PruneReports(ctx, userID, s.config.MaxHistory); err != nil {
			s.logger.Warn().Err(err).Str("user", userID).Msg("Failed to prune report history")
		}
	}
}

// summaryView keeps the summary, key metrics and recommendations and drops
// per-symbol detail and chart data.
func summaryView(r *models.AnalysisReport) *models.AnalysisReport {
	out := *r
	out.VisualizationData = models.VisualizationData{}
	out.MarketSentiment.SymbolBreakdown = nil
	out.MarketSentiment.TrendAnalysis.BySymbol = nil
	out.MarketSentiment.RecentEvents.PortfolioEvents = nil
	out.RiskAnalysis.Weights = nil

	scenarios := make([]models.ForecastScenario, 0, 1)
	for _, sc := range r.Forecast.Scenarios {
		if sc.Selected {
			scenarios = append(scenarios, sc)
		}
	}
	out.Forecast.Scenarios = scenarios
	return &out
}

// Export encodes report in the requested format.
func (s *Service) Export(ctx context.Context, report *models.AnalysisReport, format models.ExportFormat) (*models.ExportResult, error) {
	if report == nil {
		return nil, models.NewInputError("report", "is required")
	}
	if !format.Valid() {
		return nil, models.NewInputError("format", fmt.Sprintf("unsupported export format %q", format))
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case models.ExportJSON:
		data, err = json.MarshalIndent(report, "", "  ")
	case models.ExportCSV:
		data, err = formatCSV(report)
	case models.ExportMarkdown:
		data = []byte(formatMarkdown(report))
	case models.ExportPDF:
		data, err = renderPDF(report, s.config.PDFTitle)
	}
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}

	result := &models.ExportResult{
		Filename:    exportFilename(report.Timestamp, format),
		Format:      format,
		ContentType: format.ContentType(),
		Data:        data,
	}
	s.logger.Debug().Str("filename", result.Filename).Int("bytes", len(data)).Msg("Report exported")
	return result, nil
}

func exportFilename(ts time.Time, format models.ExportFormat) string {
	return fmt.Sprintf("portfolio_report_%s.%s", ts.UTC().Format("20060102_150405"), format.Extension())
}

// Compare diffs report against the newest saved report older than the
// lookback window. A missing baseline is reported, not returned as an error.
func (s *Service) Compare(ctx context.Context, req models.CompareRequest) (*models.ComparisonReport, error) {
	report := req.Report
	if report == nil {
		return nil, models.NewInputError("report", "is required")
	}
	lookback := s.config.LookbackDays
	if req.LookbackDays != nil {
		if *req.LookbackDays < 0 {
			return nil, models.NewInputError("lookback_days", "must not be negative")
		}
		lookback = *req.LookbackDays
	}
	userID := common.ResolveUserID(ctx)
	cutoff := report.Timestamp.AddDate(0, 0, -lookback)

	baseline, err := s.storage.ReportStore().LatestBefore(ctx, userID, cutoff)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return &models.ComparisonReport{
				Available:        false,
				Message:          fmt.Sprintf("No saved report older than %d days to compare against.", lookback),
				LookbackDays:     lookback,
				CurrentTimestamp: report.Timestamp,
				AddedSymbols:     []string{},
				RemovedSymbols:   []string{},
			}, nil
		}
		return nil, fmt.Errorf("failed to load baseline report: %w", err)
	}

	cmp := compareReports(report, baseline)
	cmp.LookbackDays = lookback
	return cmp, nil
}

// History lists saved reports for the context user, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]*models.SavedReport, error) {
	reports, err := s.storage.ReportStore().ListReports(ctx, common.ResolveUserID(ctx), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list report history: %w", err)
	}
	return reports, nil
}

// RenderChart draws one chart of the user's latest saved report as PNG.
func (s *Service) RenderChart(ctx context.Context, kind string) ([]byte, error) {
	latest, err := s.storage.ReportStore().ListReports(ctx, common.ResolveUserID(ctx), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest report: %w", err)
	}
	if len(latest) == 0 {
		return nil, fmt.Errorf("no saved report to chart: %w", interfaces.ErrNotFound)
	}

	data, ok := latest[0].Report.VisualizationData.Chart(kind)
	if !ok {
		return nil, models.NewInputError("kind", fmt.Sprintf("unknown chart %q", kind))
	}
	return renderChart(data)
}
