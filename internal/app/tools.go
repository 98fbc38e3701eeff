package app

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// positionItems describes one entry of the positions array.
var positionItems = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"symbol":         map[string]any{"type": "string", "description": "Ticker symbol (e.g., 'AAPL')"},
		"quantity":       map[string]any{"type": "integer", "description": "Number of shares, greater than 0"},
		"purchase_price": map[string]any{"type": "number", "description": "Price paid per share, greater than 0"},
		"current_price":  map[string]any{"type": "number", "description": "Latest price per share; falls back to purchase_price when omitted"},
	},
	"required": []string{"symbol", "quantity", "purchase_price"},
}

// withAnalysisInput adds the shared analysis request parameters after any
// tool-specific ones.
func withAnalysisInput(name, description string, extra ...mcp.ToolOption) mcp.Tool {
	opts := append([]mcp.ToolOption{mcp.WithDescription(description)}, extra...)
	opts = append(opts,
		mcp.WithArray("positions",
			mcp.Required(),
			mcp.Items(positionItems),
			mcp.Description("Portfolio positions. Duplicate symbols are kept as separate lots."),
		),
		mcp.WithString("risk_tolerance",
			mcp.Enum("conservative", "moderate", "aggressive"),
			mcp.Description("Investor risk tolerance (default: saved preference, else moderate)"),
		),
		mcp.WithString("time_horizon",
			mcp.Enum("1-3 years", "3-5 years", "5-10 years", "10+ years"),
			mcp.Description("Investment horizon (default: saved preference, else 5-10 years)"),
		),
		mcp.WithArray("investment_goals",
			mcp.WithStringItems(),
			mcp.Description("Goals: growth, income, preservation"),
		),
		mcp.WithObject("news_by_symbol",
			mcp.Description("Already-fetched news per symbol: {\"AAPL\": [{\"headline\", \"content\", \"source\", \"published_at\"}]}"),
		),
		mcp.WithObject("historical_returns_by_symbol",
			mcp.Description("Optional periodic return series per symbol, used for volatility"),
		),
		mcp.WithObject("quotes",
			mcp.Description("Optional latest prices per symbol; override current_price"),
		),
		mcp.WithString("as_of",
			mcp.Description("Reference time for news age, RFC 3339 (default: now)"),
		),
	)
	return mcp.NewTool(name, opts...)
}

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Folio server version and status. Use this to verify connectivity."),
	)
}

// createAnalyzePortfolioTool returns the analyze_portfolio tool definition
func createAnalyzePortfolioTool() mcp.Tool {
	return withAnalysisInput("analyze_portfolio",
		"Run the full portfolio analysis: returns, concentration and volatility risk, news sentiment with recent events, growth forecasts, and prioritized recommendations. The report is saved to history.")
}

// createRiskAssessmentTool returns the risk_assessment tool definition
func createRiskAssessmentTool() mcp.Tool {
	return withAnalysisInput("risk_assessment",
		"Compute concentration (HHI, top-3 share), weighted volatility and the risk level for a portfolio.")
}

// createSentimentAnalysisTool returns the sentiment_analysis tool definition
func createSentimentAnalysisTool() mcp.Tool {
	return withAnalysisInput("sentiment_analysis",
		"Score supplied news headlines per holding, classify sentiment trends and extract recent events.")
}

// createForecastTool returns the forecast tool definition
func createForecastTool() mcp.Tool {
	return withAnalysisInput("forecast",
		"Project portfolio value at 1, 3, 5 and 10 years under conservative, moderate and aggressive growth scenarios.")
}

// createReportHistoryTool returns the report_history tool definition
func createReportHistoryTool() mcp.Tool {
	return mcp.NewTool("report_history",
		mcp.WithDescription("List previously saved analysis reports, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum reports to return (default: 10, max: 50)"),
		),
	)
}

// createPortfolioInsightsTool returns the portfolio_insights tool definition
func createPortfolioInsightsTool() mcp.Tool {
	return withAnalysisInput("portfolio_insights",
		"Answer a plain-language question about a portfolio (what to buy or sell, how a holding is doing, market outlook, how to rebalance). The portfolio is analyzed first; nothing is saved to history.",
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The question to answer, e.g. 'How is AAPL doing?'"),
		),
	)
}
