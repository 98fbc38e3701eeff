package analysis

import (
	"fmt"

	"github.com/bobmcallan/folio/internal/models"
)

// Chart kinds understood by the renderer.
const (
	KindPie  = "pie"
	KindBar  = "bar"
	KindLine = "line"
)

// visualize derives one chart-ready record per chart type. Pure data; no
// rendering happens here.
func visualize(summary models.PortfolioSummary, risk models.RiskMetrics, sent models.SentimentReport, fc models.ForecastReport, symbols []string) models.VisualizationData {
	composition := models.ChartSeries{Name: "Position value"}
	returns := models.ChartSeries{Name: "Return %"}
	for _, p := range summary.Positions {
		composition.Points = append(composition.Points, models.ChartPoint{Label: p.Symbol, Value: p.PositionValue})
		returns.Points = append(returns.Points, models.ChartPoint{Label: p.Symbol, Value: p.ReturnPercentage})
	}

	dist := models.ChartSeries{Name: "Headlines", Points: []models.ChartPoint{
		{Label: string(models.SentimentPositive), Value: float64(sent.SentimentDistribution.Positive)},
		{Label: string(models.SentimentNeutral), Value: float64(sent.SentimentDistribution.Neutral)},
		{Label: string(models.SentimentNegative), Value: float64(sent.SentimentDistribution.Negative)},
	}}
	polarity := models.ChartSeries{Name: "Polarity"}
	for _, sym := range symbols {
		polarity.Points = append(polarity.Points, models.ChartPoint{Label: sym, Value: sent.SymbolBreakdown[sym].Polarity})
	}

	riskSeries := models.ChartSeries{Name: "Risk metrics", Points: []models.ChartPoint{
		{Label: "HHI", Value: risk.ConcentrationMetrics.HHI},
		{Label: "Top 3", Value: risk.ConcentrationMetrics.Top3Concentration},
		{Label: "Volatility", Value: risk.PortfolioVolatility},
	}}

	var forecastSeries []models.ChartSeries
	for _, sc := range fc.Scenarios {
		s := models.ChartSeries{
			Name:   fmt.Sprintf("%s (%.1f%%)", sc.Name, sc.AnnualReturn),
			Points: []models.ChartPoint{{Label: "Year 0", Value: fc.CurrentValue}},
		}
		for _, p := range sc.Projections {
			s.Points = append(s.Points, models.ChartPoint{Label: fmt.Sprintf("Year %d", p.Year), Value: p.Value})
		}
		forecastSeries = append(forecastSeries, s)
	}

	return models.VisualizationData{
		Composition: models.ChartData{Title: "Portfolio Composition", Kind: KindPie, Series: []models.ChartSeries{composition}},
		Performance: models.ChartData{Title: "Position Returns", Kind: KindBar, Series: []models.ChartSeries{returns}},
		Sentiment:   models.ChartData{Title: "News Sentiment", Kind: KindBar, Series: []models.ChartSeries{dist, polarity}},
		Risk:        models.ChartData{Title: "Risk Metrics", Kind: KindBar, Series: []models.ChartSeries{riskSeries}},
		Forecasting: models.ChartData{Title: "Growth Forecast", Kind: KindLine, Series: forecastSeries},
	}
}
