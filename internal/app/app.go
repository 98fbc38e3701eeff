package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/services/analysis"
	"github.com/bobmcallan/folio/internal/services/insights"
	"github.com/bobmcallan/folio/internal/services/preferences"
	"github.com/bobmcallan/folio/internal/services/report"
	"github.com/bobmcallan/folio/internal/storage"
)

// App holds all initialized services, storage, and the MCP server.
// It is the shared core behind cmd/folio-server.
type App struct {
	Config            *common.Config
	Logger            *common.Logger
	Storage           interfaces.StorageManager
	AnalysisService   interfaces.AnalysisService
	ReportService     interfaces.ReportService
	PreferenceService interfaces.PreferenceService
	InsightService    interfaces.InsightService
	MCPServer         *server.MCPServer
	StartupTime       time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// resolveConfigPath checks the given path, FOLIO_CONFIG, the binary dir,
// then config/folio.toml.
func resolveConfigPath(configPath, binDir string) string {
	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "folio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/folio.toml" // fallback for development
		}
	}
	return configPath
}

// NewApp initializes storage, services and the MCP server.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()
	configPath = resolveConfigPath(configPath, binDir)

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative log file path to binary directory
	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(binDir, config.Logging.FilePath)
	}

	logger, err := common.NewLoggerFromConfig(config.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize services
	analysisService := analysis.NewService(config.Analysis, logger)
	preferenceService := preferences.NewService(storageManager.PreferenceStore(), logger)
	reportService := report.NewService(analysisService, preferenceService, storageManager, config.Reports, logger)
	insightService := insights.NewService(analysisService, logger)

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"folio",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:            config,
		Logger:            logger,
		Storage:           storageManager,
		AnalysisService:   analysisService,
		ReportService:     reportService,
		PreferenceService: preferenceService,
		InsightService:    insightService,
		MCPServer:         mcpServer,
		StartupTime:       startupStart,
	}

	// Register all MCP tools
	a.registerTools()

	logger.Info().
		Str("config", configPath).
		Dur("startup", time.Since(startupStart)).
		Msg("App initialized")

	return a, nil
}

// registerTools adds every MCP tool to the server.
func (a *App) registerTools() {
	s := a.MCPServer
	logger := a.Logger

	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createAnalyzePortfolioTool(), handleAnalyzePortfolio(a.ReportService, logger))
	s.AddTool(createRiskAssessmentTool(), handleRiskAssessment(a.AnalysisService, logger))
	s.AddTool(createSentimentAnalysisTool(), handleSentimentAnalysis(a.AnalysisService, logger))
	s.AddTool(createForecastTool(), handleForecast(a.AnalysisService, logger))
	s.AddTool(createReportHistoryTool(), handleReportHistory(a.ReportService, logger))
	s.AddTool(createPortfolioInsightsTool(), handlePortfolioInsights(a.InsightService, logger))
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Storage close failed")
		}
		a.Storage = nil
	}
	if a.Logger != nil {
		a.Logger.Close()
	}
}
