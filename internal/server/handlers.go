package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// exportRequest is the body of POST /api/reports/export.
type exportRequest struct {
	Report *models.AnalysisReport `json:"report"`
	Format models.ExportFormat    `json:"format"`
}

// decodeCompareRequest accepts {"report": ..., "lookback_days": n} or a bare
// report.
func decodeCompareRequest(raw json.RawMessage) (models.CompareRequest, error) {
	var req models.CompareRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, err
	}
	if req.Report != nil {
		return req, nil
	}
	var report models.AnalysisReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return req, err
	}
	req.Report = &report
	return req, nil
}

// requestContext bounds a handler by the configured request timeout.
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.app.Config.Server.GetRequestTimeout())
}

// writeServiceError maps service errors onto HTTP status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, op string, err error) {
	if ie, ok := models.AsInputError(err); ok {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: ie.Error(),
			Code:  "invalid_input",
			Field: ie.Field,
		})
		return
	}
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		WriteErrorWithCode(w, http.StatusNotFound, err.Error(), "not_found")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		WriteErrorWithCode(w, http.StatusGatewayTimeout, op+" did not complete in time", "timeout")
	default:
		s.logger.Error().Err(err).Str("op", op).Msg("Request failed")
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("%s failed: %v", op, err))
	}
}

// --- Analysis handlers ---

func (s *Server) handleAnalyzePortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req models.AnalysisRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	report, err := s.app.ReportService.Generate(ctx, req)
	if err != nil {
		s.writeServiceError(w, "Portfolio analysis", err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

func (s *Server) handleRiskAssessment(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req models.AnalysisRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	risk, err := s.app.AnalysisService.AssessRisk(ctx, req)
	if err != nil {
		s.writeServiceError(w, "Risk assessment", err)
		return
	}
	WriteJSON(w, http.StatusOK, risk)
}

func (s *Server) handleSentimentAnalysis(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req models.AnalysisRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	sentiment, err := s.app.AnalysisService.AnalyzeSentiment(ctx, req)
	if err != nil {
		s.writeServiceError(w, "Sentiment analysis", err)
		return
	}
	WriteJSON(w, http.StatusOK, sentiment)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req models.AnalysisRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	forecast, err := s.app.AnalysisService.Forecast(ctx, req)
	if err != nil {
		s.writeServiceError(w, "Forecast", err)
		return
	}
	WriteJSON(w, http.StatusOK, forecast)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req models.InsightRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	resp, err := s.app.InsightService.Answer(ctx, req)
	if err != nil {
		s.writeServiceError(w, "Insights", err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// --- Report handlers ---

func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var body exportRequest
	if !DecodeJSON(w, r, &body) {
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	result, err := s.app.ReportService.Export(ctx, body.Report, body.Format)
	if err != nil {
		s.writeServiceError(w, "Export", err)
		return
	}
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

func (s *Server) handleReportCompare(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var raw json.RawMessage
	if !DecodeJSON(w, r, &raw) {
		return
	}
	req, err := decodeCompareRequest(raw)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	cmp, err := s.app.ReportService.Compare(ctx, req)
	if err != nil {
		s.writeServiceError(w, "Comparison", err)
		return
	}
	WriteJSON(w, http.StatusOK, cmp)
}

func (s *Server) handleReportHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	limit := queryInt(r, "limit", defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	reports, err := s.app.ReportService.History(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, "History", err)
		return
	}
	if reports == nil {
		reports = []*models.SavedReport{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reports": reports,
		"count":   len(reports),
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	kind := PathParam(r, "/api/charts/", "")
	if kind == "" {
		WriteError(w, http.StatusBadRequest, "chart kind is required in path")
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	png, err := s.app.ReportService.RenderChart(ctx, kind)
	if err != nil {
		s.writeServiceError(w, "Chart", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// --- Preferences ---

func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPut) {
		return
	}
	if r.Method == http.MethodGet {
		prefs, err := s.app.PreferenceService.Get(r.Context())
		if err != nil {
			s.writeServiceError(w, "Preferences", err)
			return
		}
		WriteJSON(w, http.StatusOK, prefs)
		return
	}

	var body models.UserPreferences
	if !DecodeJSON(w, r, &body) {
		return
	}
	prefs, err := s.app.PreferenceService.Update(r.Context(), body)
	if err != nil {
		s.writeServiceError(w, "Preferences", err)
		return
	}
	WriteJSON(w, http.StatusOK, prefs)
}
