package insights

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	headlineLimit = 80
	disclaimer    = "This is general information, not personal financial advice."

	needsReportInvestment   = "I can suggest next steps once your portfolio has been analyzed. Send your positions so the answer reflects your holdings and risk."
	needsReportStock        = "Analyze your portfolio first to get sentiment and events for individual holdings."
	needsReportMarket       = "Analyze your portfolio first to get current sentiment and trends for your holdings."
	needsReportOptimization = "I can help optimize your portfolio once it has been analyzed. Send your positions to get advice based on your current holdings."
	noSymbols               = "Name the stocks you want covered, for example \"How is AAPL doing?\" or \"What is happening with Tesla?\"."
)

func investmentAnswer(report *models.AnalysisReport) string {
	if report == nil {
		return needsReportInvestment
	}
	risk := report.RiskAnalysis.RiskLevel
	ret := report.PerformanceAnalysis.ReturnPercentage

	var advice string
	switch {
	case risk == models.RiskLevelHigh && ret < 0:
		advice = "With a high-risk portfolio and negative returns, consider defensive positions or rebalancing to reduce concentration."
	case risk == models.RiskLevelLow && ret > 10:
		advice = "Your low-risk portfolio is performing well. Consider adding growth-oriented positions gradually while keeping a cautious stance."
	case report.PortfolioSummary.NumberOfPositions < 3:
		advice = "Your portfolio has low diversification. Consider adding positions in other sectors to spread risk."
	default:
		advice = "Your portfolio looks balanced. Review sector allocation against your investment goals."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on your portfolio analysis: %s Your risk level is %s with a %s return.",
		advice, risk, common.FormatSignedPct(ret))
	if len(report.Recommendations) > 0 {
		top := report.Recommendations[0]
		fmt.Fprintf(&sb, " Top recommendation (%s priority): %s", top.Priority, top.Details)
		if !strings.HasSuffix(top.Details, ".") {
			sb.WriteString(".")
		}
	}
	sb.WriteString(" " + disclaimer)
	return sb.String()
}

func stockAnswer(report *models.AnalysisReport, symbols []string) string {
	if len(symbols) == 0 {
		return noSymbols
	}
	if report == nil {
		return needsReportStock
	}
	if len(symbols) > maxSymbolsAnswered {
		symbols = symbols[:maxSymbolsAnswered]
	}

	held := make(map[string]models.PositionSummary)
	for _, p := range report.PortfolioSummary.Positions {
		if _, ok := held[p.Symbol]; !ok {
			held[p.Symbol] = p
		}
	}

	parts := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		b, ok := report.MarketSentiment.SymbolBreakdown[sym]
		pos, isHeld := held[sym]
		if !ok && !isHeld {
			parts = append(parts, fmt.Sprintf("%s: not part of the analyzed portfolio.", sym))
			continue
		}
		if !ok {
			b = models.SymbolSentiment{Sentiment: models.SentimentNeutral, Trend: models.TrendStable}
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s: sentiment is %s with a %s trend", sym, b.Sentiment, b.Trend)
		if b.NewsCount > 0 {
			fmt.Fprintf(&sb, " across %d headline(s)", b.NewsCount)
		}
		sb.WriteString(".")
		if isHeld {
			fmt.Fprintf(&sb, " Position return is %s.", common.FormatSignedPct(pos.ReturnPercentage))
		}
		if len(b.RecentEvents) > 0 {
			fmt.Fprintf(&sb, " Recent news: %q.", truncate(b.RecentEvents[0].Headline, headlineLimit))
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, " ")
}

func marketAnswer(report *models.AnalysisReport) string {
	if report == nil {
		return needsReportMarket
	}
	ms := report.MarketSentiment

	var sb strings.Builder
	fmt.Fprintf(&sb, "Current sentiment across your holdings is %s with a strength of %s.",
		ms.OverallSentiment, common.FormatPct(ms.SentimentStrength*100))
	if ms.NewsSummary != "" {
		sb.WriteString(" " + ms.NewsSummary)
	} else {
		sb.WriteString(" No news was supplied, so conditions read as neutral.")
	}
	ta := ms.TrendAnalysis
	if ta.Improving+ta.Declining > 0 {
		fmt.Fprintf(&sb, " Trends: %d improving, %d declining, %d stable.", ta.Improving, ta.Declining, ta.Stable)
	}
	if sc := selectedScenario(report.Forecast); sc != nil && len(sc.Projections) > 0 {
		last := sc.Projections[len(sc.Projections)-1]
		fmt.Fprintf(&sb, " Under the %s scenario the portfolio projects to %s in %d years.",
			sc.Name, common.FormatMoney(last.Value), last.Year)
	}
	return sb.String()
}

func optimizationAnswer(report *models.AnalysisReport) string {
	if report == nil {
		return needsReportOptimization
	}
	risk := report.RiskAnalysis

	var advice []string
	if risk.ConcentrationMetrics.HHI > 0.5 {
		advice = append(advice, fmt.Sprintf("Concentration is high (HHI %s). Consider spreading across more positions and sectors.",
			common.FormatRatio(risk.ConcentrationMetrics.HHI)))
	}
	if report.PortfolioSummary.NumberOfPositions < 5 {
		advice = append(advice, "Adding more positions could improve diversification and reduce risk.")
	}
	if risk.RiskLevel == models.RiskLevelHigh && report.PerformanceAnalysis.ReturnPercentage < 0 {
		advice = append(advice, "Consider rebalancing to reduce risk given the current negative performance.")
	}
	if len(advice) == 0 {
		advice = append(advice, "Your portfolio looks well suited to its current risk profile.")
	}
	return "Portfolio optimization insights: " + strings.Join(advice, " ")
}

func generalAnswer(report *models.AnalysisReport) string {
	if report == nil {
		return "Analyze your portfolio first, then ask about specific stocks, market trends or investment recommendations."
	}
	return "I can answer questions about your portfolio performance, individual holdings, market sentiment and rebalancing. Try asking about one of those."
}

func heldSymbols(report *models.AnalysisReport) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range report.PortfolioSummary.Positions {
		if !seen[p.Symbol] {
			seen[p.Symbol] = true
			out = append(out, p.Symbol)
		}
	}
	return out
}

func selectedScenario(f models.ForecastReport) *models.ForecastScenario {
	for i := range f.Scenarios {
		if f.Scenarios[i].Selected {
			return &f.Scenarios[i]
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
