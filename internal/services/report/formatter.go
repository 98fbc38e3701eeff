package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// formatMarkdown renders the full report as markdown
func formatMarkdown(r *models.AnalysisReport) string {
	var sb strings.Builder
	perf := r.PerformanceAnalysis

	// Header
	sb.WriteString("# Portfolio Analysis Report\n\n")
	sb.WriteString(fmt.Sprintf("**Date:** %s\n", r.Timestamp.UTC().Format("2006-01-02 15:04 MST")))
	sb.WriteString(fmt.Sprintf("**Total Value:** %s\n", common.FormatMoney(perf.CurrentValue)))
	sb.WriteString(fmt.Sprintf("**Total Cost:** %s\n", common.FormatMoney(perf.TotalCost)))
	sb.WriteString(fmt.Sprintf("**Total Return:** %s (%s)\n\n", common.FormatSignedMoney(perf.TotalReturn), common.FormatSignedPct(perf.ReturnPercentage)))

	sb.WriteString(formatPositions(r.PortfolioSummary))
	sb.WriteString(formatRisk(r.RiskAnalysis))
	sb.WriteString(formatSentiment(r.MarketSentiment))
	sb.WriteString(formatForecast(r.Forecast))
	sb.WriteString(formatRecommendations(r.Recommendations))
	sb.WriteString(formatDataGaps(r.DataGaps))

	return sb.String()
}

func formatPositions(s models.PortfolioSummary) string {
	var sb strings.Builder
	sb.WriteString("## Positions\n\n")
	if len(s.Positions) == 0 {
		sb.WriteString("No positions.\n\n")
		return sb.String()
	}
	sb.WriteString("| Symbol | Qty | Purchase | Price | Value | Return % |\n")
	sb.WriteString("|--------|-----|----------|-------|-------|----------|\n")
	for _, p := range s.Positions {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s |\n",
			p.Symbol, p.Quantity,
			common.FormatMoney(p.PurchasePrice), common.FormatMoney(p.CurrentPrice),
			common.FormatMoney(p.PositionValue), common.FormatSignedPct(p.ReturnPercentage),
		))
	}
	sb.WriteString(fmt.Sprintf("| **Total** | | | | **%s** | |\n\n", common.FormatMoney(s.TotalValue)))
	return sb.String()
}

func formatRisk(m models.RiskMetrics) string {
	var sb strings.Builder
	sb.WriteString("## Risk\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Risk Level | %s |\n", strings.ToUpper(string(m.RiskLevel))))
	sb.WriteString(fmt.Sprintf("| HHI | %s |\n", common.FormatRatio(m.ConcentrationMetrics.HHI)))
	sb.WriteString(fmt.Sprintf("| Top 3 Concentration | %s |\n", common.FormatPct(m.ConcentrationMetrics.Top3Concentration*100)))
	sb.WriteString(fmt.Sprintf("| Volatility | %s |\n", common.FormatRatio(m.PortfolioVolatility)))
	sb.WriteString(fmt.Sprintf("| Positions | %d |\n\n", m.NumberOfPositions))
	return sb.String()
}

func formatSentiment(s models.SentimentReport) string {
	var sb strings.Builder
	sb.WriteString("## Market Sentiment\n\n")
	sb.WriteString(fmt.Sprintf("**Overall:** %s (strength %s, subjectivity %s)\n\n",
		s.OverallSentiment, common.FormatRatio(s.SentimentStrength), common.FormatRatio(s.Subjectivity)))
	if s.NewsSummary != "" {
		sb.WriteString(s.NewsSummary + "\n\n")
	}

	if len(s.SymbolBreakdown) > 0 {
		symbols := make([]string, 0, len(s.SymbolBreakdown))
		for sym := range s.SymbolBreakdown {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)

		sb.WriteString("| Symbol | Sentiment | Polarity | News | Trend |\n")
		sb.WriteString("|--------|-----------|----------|------|-------|\n")
		for _, sym := range symbols {
			b := s.SymbolBreakdown[sym]
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %s |\n",
				sym, b.Sentiment, common.FormatRatio(b.Polarity), b.NewsCount, b.Trend))
		}
		sb.WriteString("\n")
	}

	ev := s.RecentEvents
	sb.WriteString("### Recent Events\n\n")
	if ev.PortfolioSummary != "" {
		sb.WriteString(ev.PortfolioSummary + "\n\n")
	}
	if ev.TotalEvents > 0 && len(ev.PortfolioEvents) > 0 {
		symbols := make([]string, 0, len(ev.PortfolioEvents))
		for sym := range ev.PortfolioEvents {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)
		for _, sym := range symbols {
			for _, e := range ev.PortfolioEvents[sym].Events {
				sb.WriteString(fmt.Sprintf("- [%s] **%s** %s: %s (%dd ago)\n",
					strings.ToUpper(string(e.ImpactLevel)), sym, e.EventType, e.Headline, e.DaysOld))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatForecast(f models.ForecastReport) string {
	var sb strings.Builder
	sb.WriteString("## Forecast\n\n")
	if len(f.Scenarios) == 0 {
		sb.WriteString("No scenarios configured.\n\n")
		return sb.String()
	}

	header := "| Scenario | Annual Return |"
	divider := "|----------|---------------|"
	for _, p := range f.Scenarios[0].Projections {
		header += fmt.Sprintf(" Year %d |", p.Year)
		divider += "--------|"
	}
	sb.WriteString(header + "\n" + divider + "\n")
	for _, sc := range f.Scenarios {
		name := sc.Name
		if sc.Selected {
			name = "**" + name + "**"
		}
		row := fmt.Sprintf("| %s | %s |", name, common.FormatPct(sc.AnnualReturn))
		for _, p := range sc.Projections {
			row += " " + common.FormatMoney(p.Value) + " |"
		}
		sb.WriteString(row + "\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

func formatRecommendations(recs []models.Recommendation) string {
	var sb strings.Builder
	sb.WriteString("## Recommendations\n\n")
	if len(recs) == 0 {
		sb.WriteString("No recommendations.\n\n")
		return sb.String()
	}
	for i, rec := range recs {
		sb.WriteString(fmt.Sprintf("%d. [%s] **%s** (%s): %s\n",
			i+1, strings.ToUpper(string(rec.Priority)), rec.Action, rec.Type, rec.Details))
	}
	sb.WriteString("\n")
	return sb.String()
}

func formatDataGaps(gaps []models.DataGap) string {
	if len(gaps) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("## Data Gaps\n\n")
	for _, g := range gaps {
		sb.WriteString(fmt.Sprintf("- %s: missing %s, used %s\n", g.Symbol, g.Kind, g.Fallback))
	}
	sb.WriteString("\n")
	return sb.String()
}
