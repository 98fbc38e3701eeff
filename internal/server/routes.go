package server

import (
	"net/http"
	"time"

	"github.com/bobmcallan/folio/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Analysis
	mux.HandleFunc("/api/analyze-portfolio", s.handleAnalyzePortfolio)
	mux.HandleFunc("/api/risk-assessment", s.handleRiskAssessment)
	mux.HandleFunc("/api/sentiment-analysis", s.handleSentimentAnalysis)
	mux.HandleFunc("/api/forecast", s.handleForecast)
	mux.HandleFunc("/api/insights", s.handleInsights)

	// Reports
	mux.HandleFunc("/api/reports/export", s.handleReportExport)
	mux.HandleFunc("/api/reports/compare", s.handleReportCompare)
	mux.HandleFunc("/api/reports/history", s.handleReportHistory)
	mux.HandleFunc("/api/charts/", s.handleChart)

	// Preferences
	mux.HandleFunc("/api/preferences", s.handlePreferences)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	cfg := s.app.Config
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":       cfg.Environment,
		"user_id":           common.ResolveUserID(r.Context()),
		"storage_data_path": s.app.Storage.DataPath(),
		"logging_level":     cfg.Logging.Level,
		"request_timeout":   cfg.Server.GetRequestTimeout().String(),
		"analysis":          cfg.Analysis,
		"reports":           cfg.Reports,
		"uptime":            time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}
