// Package risk computes portfolio concentration and volatility
package risk

import (
	"math"
	"sort"

	"github.com/bobmcallan/folio/internal/models"
	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear annualises daily return volatility.
const TradingDaysPerYear = 252

// Calculator derives RiskMetrics from position values and return series.
type Calculator struct {
	thresholds models.RiskThresholds
}

// NewCalculator creates a calculator with the given classification thresholds.
func NewCalculator(thresholds models.RiskThresholds) *Calculator {
	return &Calculator{thresholds: thresholds}
}

// Calculate computes weights, HHI, top-3 concentration, weighted volatility
// and the risk level. Positions must already carry resolved current prices.
// A history gap is reported for each symbol without a usable series when
// any series were supplied.
func (c *Calculator) Calculate(positions []models.Position, returns map[string][]float64) (models.RiskMetrics, []models.DataGap) {
	values := make([]float64, len(positions))
	for i, p := range positions {
		values[i] = p.PositionValue()
	}
	weights := Weights(values)

	var gaps []models.DataGap
	volatility := 0.0
	seen := make(map[string]bool)
	for i, p := range positions {
		vol, ok := SymbolVolatility(returns[p.Symbol], c.thresholds.AnnualizeVolatility)
		if !ok {
			if len(returns) > 0 && !seen[p.Symbol] {
				gaps = append(gaps, models.DataGap{
					Symbol:   p.Symbol,
					Kind:     models.DataGapHistory,
					Fallback: "excluded from volatility",
				})
			}
			seen[p.Symbol] = true
			continue
		}
		volatility += weights[i] * vol
	}

	hhi := HHI(weights)
	return models.RiskMetrics{
		RiskLevel: c.Classify(hhi, volatility),
		ConcentrationMetrics: models.ConcentrationMetrics{
			HHI:               hhi,
			Top3Concentration: TopNConcentration(weights, 3),
		},
		PortfolioVolatility: volatility,
		NumberOfPositions:   len(positions),
		Weights:             weights,
	}, gaps
}

// Classify maps HHI and volatility to a risk level.
func (c *Calculator) Classify(hhi, volatility float64) models.RiskLevel {
	t := c.thresholds
	switch {
	case hhi >= t.HHIHigh || volatility > t.VolatilityHigh:
		return models.RiskLevelHigh
	case hhi >= t.HHIMedium || volatility > t.VolatilityMedium:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

// Weights returns each value's share of the total, in input order.
// All weights are zero when the total is not a positive finite number.
func Weights(values []float64) []float64 {
	weights := make([]float64, len(values))
	total := 0.0
	for _, v := range values {
		total += v
	}
	if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		return weights
	}
	for i, v := range values {
		weights[i] = v / total
	}
	return weights
}

// HHI is the sum of squared weights.
func HHI(weights []float64) float64 {
	hhi := 0.0
	for _, w := range weights {
		hhi += w * w
	}
	return hhi
}

// TopNConcentration sums the n largest weights, or all of them when fewer exist.
func TopNConcentration(weights []float64, n int) float64 {
	sorted := append([]float64(nil), weights...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	sum := 0.0
	for _, w := range sorted {
		sum += w
	}
	return sum
}

// SymbolVolatility is the population standard deviation of a return series.
// ok is false for fewer than two finite samples or when the deviation itself
// overflows.
func SymbolVolatility(series []float64, annualize bool) (float64, bool) {
	clean := make([]float64, 0, len(series))
	for _, r := range series {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		clean = append(clean, r)
	}
	if len(clean) < 2 {
		return 0, false
	}
	vol := stat.PopStdDev(clean, nil)
	if annualize {
		vol *= math.Sqrt(TradingDaysPerYear)
	}
	if math.IsNaN(vol) || math.IsInf(vol, 0) {
		return 0, false
	}
	return vol, true
}
