package analysis

import "github.com/bobmcallan/folio/internal/models"

// summarize builds the portfolio summary from resolved positions.
func summarize(positions []models.Position) models.PortfolioSummary {
	summary := models.PortfolioSummary{
		NumberOfPositions: len(positions),
		Positions:         make([]models.PositionSummary, len(positions)),
	}
	for i, p := range positions {
		value := p.PositionValue()
		summary.TotalValue += value
		summary.Positions[i] = models.PositionSummary{
			Symbol:           p.Symbol,
			Quantity:         p.Quantity,
			PurchasePrice:    p.PurchasePrice,
			CurrentPrice:     p.CurrentPrice,
			PositionValue:    value,
			ReturnPercentage: p.ReturnPercentage(),
		}
	}
	return summary
}

// performance computes cost, value and return for the whole portfolio.
// Return percentage is zero when total cost is not positive.
func performance(positions []models.Position) models.PerformanceAnalysis {
	perf := models.PerformanceAnalysis{}
	best, worst := -1, -1
	for i, p := range positions {
		perf.TotalCost += p.Cost()
		perf.CurrentValue += p.PositionValue()
		if best < 0 || p.ReturnPercentage() > positions[best].ReturnPercentage() {
			best = i
		}
		if worst < 0 || p.ReturnPercentage() < positions[worst].ReturnPercentage() {
			worst = i
		}
	}
	perf.TotalReturn = perf.CurrentValue - perf.TotalCost
	if perf.TotalCost > 0 {
		perf.ReturnPercentage = perf.TotalReturn / perf.TotalCost * 100
	}
	if len(positions) > 1 {
		perf.BestPerformer = positions[best].Symbol
		perf.WorstPerformer = positions[worst].Symbol
	}
	return perf
}
