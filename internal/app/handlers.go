package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("Folio MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handleAnalyzePortfolio implements the analyze_portfolio tool
func handleAnalyzePortfolio(reportService interfaces.ReportService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, err := decodeAnalysisRequest(request)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		report, err := reportService.Generate(ctx, req)
		if err != nil {
			return analysisError(logger, "Portfolio analysis", err), nil
		}

		md, err := reportService.Export(ctx, report, models.ExportMarkdown)
		if err != nil {
			logger.Error().Err(err).Msg("Markdown export failed")
			return errorResult(fmt.Sprintf("Format error: %v", err)), nil
		}
		return textResult(string(md.Data)), nil
	}
}

// handleRiskAssessment implements the risk_assessment tool
func handleRiskAssessment(analysisService interfaces.AnalysisService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, err := decodeAnalysisRequest(request)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		risk, err := analysisService.AssessRisk(ctx, req)
		if err != nil {
			return analysisError(logger, "Risk assessment", err), nil
		}
		return jsonResult(risk), nil
	}
}

// handleSentimentAnalysis implements the sentiment_analysis tool
func handleSentimentAnalysis(analysisService interfaces.AnalysisService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, err := decodeAnalysisRequest(request)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		sentiment, err := analysisService.AnalyzeSentiment(ctx, req)
		if err != nil {
			return analysisError(logger, "Sentiment analysis", err), nil
		}
		return jsonResult(sentiment), nil
	}
}

// handleForecast implements the forecast tool
func handleForecast(analysisService interfaces.AnalysisService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, err := decodeAnalysisRequest(request)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		forecast, err := analysisService.Forecast(ctx, req)
		if err != nil {
			return analysisError(logger, "Forecast", err), nil
		}
		return jsonResult(forecast), nil
	}
}

// handleReportHistory implements the report_history tool
func handleReportHistory(reportService interfaces.ReportService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 10)
		if limit <= 0 {
			limit = 10
		}
		if limit > 50 {
			limit = 50
		}

		reports, err := reportService.History(ctx, limit)
		if err != nil {
			logger.Error().Err(err).Msg("Report history failed")
			return errorResult(fmt.Sprintf("History error: %v", err)), nil
		}
		if len(reports) == 0 {
			return textResult("No saved reports."), nil
		}

		var sb strings.Builder
		sb.WriteString("| ID | Created | Value | Return | Risk | Sentiment |\n")
		sb.WriteString("|----|---------|-------|--------|------|-----------|\n")
		for _, r := range reports {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				r.ID, r.CreatedAt.UTC().Format("2006-01-02 15:04"),
				common.FormatMoney(r.Report.PerformanceAnalysis.CurrentValue),
				common.FormatSignedPct(r.Report.PerformanceAnalysis.ReturnPercentage),
				r.Report.RiskAnalysis.RiskLevel, r.Report.MarketSentiment.OverallSentiment,
			))
		}
		return textResult(sb.String()), nil
	}
}

// handlePortfolioInsights implements the portfolio_insights tool
func handlePortfolioInsights(insightService interfaces.InsightService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := request.RequireString("question")
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		req, err := decodeAnalysisRequest(request)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		resp, err := insightService.Answer(ctx, models.InsightRequest{Question: question, Analysis: &req})
		if err != nil {
			return analysisError(logger, "Portfolio insights", err), nil
		}
		return textResult(fmt.Sprintf("**%s** (%s)\n\n%s", resp.Question, resp.QuestionType, resp.Answer)), nil
	}
}

// rawAnalysisArgs mirrors AnalysisRequest with positions left raw so that
// string-encoded array items can be unwrapped.
type rawAnalysisArgs struct {
	Positions json.RawMessage `json:"positions"`
	models.AnalysisRequest
}

// decodeAnalysisRequest converts tool arguments into an AnalysisRequest.
func decodeAnalysisRequest(request mcp.CallToolRequest) (models.AnalysisRequest, error) {
	data, err := json.Marshal(request.GetArguments())
	if err != nil {
		return models.AnalysisRequest{}, fmt.Errorf("invalid arguments: %w", err)
	}

	var args rawAnalysisArgs
	if err := json.Unmarshal(data, &args); err != nil {
		return models.AnalysisRequest{}, fmt.Errorf("invalid arguments: %w", err)
	}
	if len(args.Positions) == 0 || string(args.Positions) == "null" {
		return models.AnalysisRequest{}, fmt.Errorf("positions parameter is required")
	}

	req := args.AnalysisRequest
	if err := unmarshalArrayParam(args.Positions, &req.Positions); err != nil {
		return models.AnalysisRequest{}, fmt.Errorf("invalid positions: %w", err)
	}
	return req, nil
}

// unmarshalArrayParam handles MCP array parameters that may contain either native
// JSON objects or string-encoded JSON objects. MCP proxies often send array items
// as strings ("[\"{ ... }\", \"{ ... }\"]") instead of objects ("[{ ... }, { ... }]").
func unmarshalArrayParam(raw json.RawMessage, dest interface{}) error {
	// Try native array of objects first.
	if err := json.Unmarshal(raw, dest); err == nil {
		return nil
	}

	// Fall back to array of string-encoded objects.
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return json.Unmarshal(raw, dest) // return the original error
	}

	parts := make([]json.RawMessage, len(items))
	for i, s := range items {
		parts[i] = json.RawMessage(s)
	}
	rebuilt, err := json.Marshal(parts)
	if err != nil {
		return err
	}
	return json.Unmarshal(rebuilt, dest)
}

// analysisError converts service errors into tool results. Input errors are
// reported to the caller without logging at error level.
func analysisError(logger *common.Logger, op string, err error) *mcp.CallToolResult {
	if ie, ok := models.AsInputError(err); ok {
		return errorResult(fmt.Sprintf("Invalid input: %s: %s", ie.Field, ie.Reason))
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errorResult(fmt.Sprintf("%s cancelled: %v", op, err))
	}
	logger.Error().Err(err).Msg(op + " failed")
	return errorResult(fmt.Sprintf("%s error: %v", op, err))
}

func jsonResult(v interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("Encoding error: %v", err))
	}
	return textResult(string(data))
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
