package report

import "github.com/bobmcallan/folio/internal/models"

// compareReports computes the movement from baseline to current.
func compareReports(current *models.AnalysisReport, baseline *models.SavedReport) *models.ComparisonReport {
	prev := baseline.Report
	cmp := &models.ComparisonReport{
		Available:         true,
		CurrentTimestamp:  current.Timestamp,
		BaselineID:        baseline.ID,
		BaselineTimestamp: baseline.CreatedAt,
		ValueChange:       current.PerformanceAnalysis.CurrentValue - prev.PerformanceAnalysis.CurrentValue,
		ReturnChange:      current.PerformanceAnalysis.ReturnPercentage - prev.PerformanceAnalysis.ReturnPercentage,
		HHIChange:         current.RiskAnalysis.ConcentrationMetrics.HHI - prev.RiskAnalysis.ConcentrationMetrics.HHI,
		VolatilityChange:  current.RiskAnalysis.PortfolioVolatility - prev.RiskAnalysis.PortfolioVolatility,
		RiskLevelFrom:     prev.RiskAnalysis.RiskLevel,
		RiskLevelTo:       current.RiskAnalysis.RiskLevel,
		SentimentFrom:     prev.MarketSentiment.OverallSentiment,
		SentimentTo:       current.MarketSentiment.OverallSentiment,
	}
	if prev.PerformanceAnalysis.CurrentValue > 0 {
		cmp.ValueChangePct = cmp.ValueChange / prev.PerformanceAnalysis.CurrentValue * 100
	}
	cmp.AddedSymbols, cmp.RemovedSymbols = symbolDiff(symbolsOf(prev), symbolsOf(*current))
	return cmp
}

func symbolsOf(r models.AnalysisReport) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.PortfolioSummary.Positions {
		if !seen[p.Symbol] {
			seen[p.Symbol] = true
			out = append(out, p.Symbol)
		}
	}
	return out
}

// symbolDiff returns symbols only in after and symbols only in before, each in
// their own list order.
func symbolDiff(before, after []string) (added, removed []string) {
	inBefore := make(map[string]bool, len(before))
	for _, s := range before {
		inBefore[s] = true
	}
	inAfter := make(map[string]bool, len(after))
	for _, s := range after {
		inAfter[s] = true
	}
	added, removed = []string{}, []string{}
	for _, s := range after {
		if !inBefore[s] {
			added = append(added, s)
		}
	}
	for _, s := range before {
		if !inAfter[s] {
			removed = append(removed, s)
		}
	}
	return added, removed
}
