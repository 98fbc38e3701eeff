package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// formatCSV flattens the report into section,item,metric,value rows.
// Values are rounded to presentation precision.
func formatCSV(r *models.AnalysisReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	num := func(v float64, places int32) string {
		return strconv.FormatFloat(common.Round(v, places), 'f', int(places), 64)
	}

	rows := [][]string{{"section", "item", "metric", "value"}}
	rows = append(rows, []string{"report", "", "timestamp", r.Timestamp.UTC().Format("2006-01-02T15:04:05Z")})

	for _, p := range r.PortfolioSummary.Positions {
		rows = append(rows,
			[]string{"position", p.Symbol, "quantity", strconv.Itoa(p.Quantity)},
			[]string{"position", p.Symbol, "purchase_price", num(p.PurchasePrice, 2)},
			[]string{"position", p.Symbol, "current_price", num(p.CurrentPrice, 2)},
			[]string{"position", p.Symbol, "position_value", num(p.PositionValue, 2)},
			[]string{"position", p.Symbol, "return_percentage", num(p.ReturnPercentage, 2)},
		)
	}

	perf := r.PerformanceAnalysis
	rows = append(rows,
		[]string{"performance", "", "total_cost", num(perf.TotalCost, 2)},
		[]string{"performance", "", "current_value", num(perf.CurrentValue, 2)},
		[]string{"performance", "", "total_return", num(perf.TotalReturn, 2)},
		[]string{"performance", "", "return_percentage", num(perf.ReturnPercentage, 2)},
	)

	risk := r.RiskAnalysis
	rows = append(rows,
		[]string{"risk", "", "risk_level", string(risk.RiskLevel)},
		[]string{"risk", "", "hhi", num(risk.ConcentrationMetrics.HHI, 4)},
		[]string{"risk", "", "top_3_concentration", num(risk.ConcentrationMetrics.Top3Concentration, 4)},
		[]string{"risk", "", "portfolio_volatility", num(risk.PortfolioVolatility, 4)},
	)

	sent := r.MarketSentiment
	rows = append(rows,
		[]string{"sentiment", "", "overall_sentiment", string(sent.OverallSentiment)},
		[]string{"sentiment", "", "sentiment_strength", num(sent.SentimentStrength, 4)},
		[]string{"sentiment", "", "total_events", strconv.Itoa(sent.RecentEvents.TotalEvents)},
		[]string{"sentiment", "", "high_impact_count", strconv.Itoa(sent.RecentEvents.HighImpactCount)},
	)

	for _, sc := range r.Forecast.Scenarios {
		for _, p := range sc.Projections {
			rows = append(rows, []string{"forecast", sc.Name, fmt.Sprintf("year_%d", p.Year), num(p.Value, 2)})
		}
	}

	for i, rec := range r.Recommendations {
		rows = append(rows, []string{"recommendation", strconv.Itoa(i + 1), string(rec.Priority), rec.Action})
	}

	for _, g := range r.DataGaps {
		rows = append(rows, []string{"data_gap", g.Symbol, string(g.Kind), g.Fallback})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}
