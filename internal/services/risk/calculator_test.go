package risk

import (
	"math"
	"testing"

	"github.com/bobmcallan/folio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator() *Calculator {
	return NewCalculator(models.DefaultAnalysisConfig().Risk)
}

func pos(symbol string, qty int, price float64) models.Position {
	return models.Position{Symbol: symbol, Quantity: qty, PurchasePrice: price, CurrentPrice: price}
}

func TestCalculate_SinglePositionScenario(t *testing.T) {
	c := newTestCalculator()
	positions := []models.Position{
		{Symbol: "AAPL", Quantity: 10, PurchasePrice: 150, CurrentPrice: 201},
	}

	m, gaps := c.Calculate(positions, nil)

	assert.Empty(t, gaps)
	assert.Equal(t, 1.0, m.ConcentrationMetrics.HHI)
	assert.Equal(t, 1.0, m.ConcentrationMetrics.Top3Concentration)
	assert.Zero(t, m.PortfolioVolatility)
	assert.Equal(t, models.RiskLevelHigh, m.RiskLevel)
	assert.Equal(t, 1, m.NumberOfPositions)
}

func TestCalculate_TwoEqualPositions(t *testing.T) {
	c := newTestCalculator()
	m, _ := c.Calculate([]models.Position{pos("AAPL", 10, 100), pos("MSFT", 5, 200)}, nil)

	assert.InDelta(t, 0.5, m.ConcentrationMetrics.HHI, 1e-12)
	assert.InDelta(t, 1.0, m.ConcentrationMetrics.Top3Concentration, 1e-12)
	assert.Equal(t, models.RiskLevelHigh, m.RiskLevel)
}

func TestCalculate_ZeroTotal(t *testing.T) {
	c := newTestCalculator()
	positions := []models.Position{
		{Symbol: "A", Quantity: 1, PurchasePrice: 10, CurrentPrice: 0},
		{Symbol: "B", Quantity: 1, PurchasePrice: 10, CurrentPrice: 0},
	}

	m, _ := c.Calculate(positions, nil)

	assert.Zero(t, m.ConcentrationMetrics.HHI)
	assert.Zero(t, m.ConcentrationMetrics.Top3Concentration)
	assert.Equal(t, []float64{0, 0}, m.Weights)
	assert.Equal(t, models.RiskLevelLow, m.RiskLevel)
}

func TestCalculate_DuplicateSymbolsNotMerged(t *testing.T) {
	c := newTestCalculator()
	m, _ := c.Calculate([]models.Position{pos("AAPL", 1, 100), pos("AAPL", 1, 100)}, nil)

	require.Len(t, m.Weights, 2)
	assert.InDelta(t, 0.5, m.ConcentrationMetrics.HHI, 1e-12)
}

func TestWeightProperties(t *testing.T) {
	values := [][]float64{
		{1},
		{1, 1},
		{5, 3, 2},
		{10, 20, 30, 40, 50},
		{0.01, 1000, 3.3, 7, 7, 9},
	}
	for _, v := range values {
		w := Weights(v)
		sum := 0.0
		maxW := 0.0
		for _, x := range w {
			sum += x
			maxW = math.Max(maxW, x)
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "weights of %v", v)

		hhi := HHI(w)
		assert.GreaterOrEqual(t, hhi, 1.0/float64(len(v))-1e-12)
		assert.LessOrEqual(t, hhi, 1.0+1e-12)

		top3 := TopNConcentration(w, 3)
		assert.GreaterOrEqual(t, top3, maxW-1e-12)
		assert.LessOrEqual(t, top3, 1.0+1e-12)
	}
}

func TestHHI_EqualWeights(t *testing.T) {
	for n := 1; n <= 10; n++ {
		values := make([]float64, n)
		for i := range values {
			values[i] = 100
		}
		assert.InDelta(t, 1.0/float64(n), HHI(Weights(values)), 1e-12)
	}
}

func TestTopNConcentration_NotSquared(t *testing.T) {
	w := []float64{0.1, 0.4, 0.2, 0.3}
	assert.InDelta(t, 0.9, TopNConcentration(w, 3), 1e-12)
	assert.Equal(t, []float64{0.1, 0.4, 0.2, 0.3}, w, "input must not be reordered")
}

func TestSymbolVolatility(t *testing.T) {
	tests := []struct {
		name      string
		series    []float64
		annualize bool
		want      float64
		ok        bool
	}{
		{"nil", nil, false, 0, false},
		{"single", []float64{0.01}, false, 0, false},
		{"population std", []float64{0.01, -0.01, 0.01, -0.01}, false, 0.01, true},
		{"annualised", []float64{0.01, -0.01}, true, 0.01 * math.Sqrt(252), true},
		{"nan dropped", []float64{0.02, math.NaN(), 0.0}, false, 0.01, true},
		{"overflowing deviation", []float64{1e200, -1e200, 1e200}, false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SymbolVolatility(tt.series, tt.annualize)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestCalculate_OverflowingSeriesIsHistoryGap(t *testing.T) {
	c := newTestCalculator()
	positions := []models.Position{{Symbol: "AAA", Quantity: 1, PurchasePrice: 1, CurrentPrice: 1}}
	m, gaps := c.Calculate(positions, map[string][]float64{"AAA": {1e200, -1e200, 1e200}})
	assert.Equal(t, 0.0, m.PortfolioVolatility)
	if assert.Len(t, gaps, 1) {
		assert.Equal(t, models.DataGapHistory, gaps[0].Kind)
	}
}

func TestWeights_NonFiniteTotal(t *testing.T) {
	assert.Equal(t, []float64{0, 0}, Weights([]float64{math.MaxFloat64, math.MaxFloat64}))
}

func TestCalculate_WeightedVolatility(t *testing.T) {
	c := newTestCalculator()
	positions := []models.Position{
		pos("AAA", 1, 75), pos("BBB", 1, 25), pos("CCC", 1, 0.000001),
	}
	returns := map[string][]float64{
		"AAA": {0.1, -0.1},
		"BBB": {0.3, -0.3},
	}

	m, gaps := c.Calculate(positions, returns)

	// weights ~0.75 and ~0.25; vol = 0.75*0.1 + 0.25*0.3
	assert.InDelta(t, 0.15, m.PortfolioVolatility, 1e-6)
	require.Len(t, gaps, 1)
	assert.Equal(t, "CCC", gaps[0].Symbol)
	assert.Equal(t, models.DataGapHistory, gaps[0].Kind)
}

func TestClassify(t *testing.T) {
	c := newTestCalculator()
	tests := []struct {
		hhi, vol float64
		want     models.RiskLevel
	}{
		{0.5, 0, models.RiskLevelHigh},
		{0.1, 0.41, models.RiskLevelHigh},
		{0.25, 0, models.RiskLevelMedium},
		{0.1, 0.21, models.RiskLevelMedium},
		{0.1, 0.2, models.RiskLevelLow},
		{0.24, 0.4, models.RiskLevelMedium},
	}
	for _, tt := range tests {
		if got := c.Classify(tt.hhi, tt.vol); got != tt.want {
			t.Errorf("Classify(%v, %v) = %q, want %q", tt.hhi, tt.vol, got, tt.want)
		}
	}
}
