// Package forecast projects portfolio value under compound-growth scenarios
package forecast

import (
	"math"

	"github.com/bobmcallan/folio/internal/models"
)

// Years are the fixed projection horizons.
var Years = []int{1, 3, 5, 10}

// ProjectValue compounds current at annualReturn percent for year years.
func ProjectValue(current, annualReturn float64, year int) float64 {
	return current * math.Pow(1+annualReturn/100, float64(year))
}

// Growth is the percentage change from current to value, 0 when current is 0.
func Growth(current, value float64) float64 {
	if current == 0 {
		return 0
	}
	return (value - current) / current * 100
}

// Engine projects every configured scenario.
type Engine struct {
	scenarios []models.ScenarioConfig
}

// NewEngine creates an engine over the configured scenarios.
func NewEngine(cfg models.ForecastConfig) *Engine {
	return &Engine{scenarios: cfg.Scenarios}
}

// Project returns every scenario's projections, flagging the one named after
// the investor's risk tolerance.
func (e *Engine) Project(current float64, tolerance models.RiskTolerance) models.ForecastReport {
	report := models.ForecastReport{
		CurrentValue: current,
		Scenarios:    make([]models.ForecastScenario, 0, len(e.scenarios)),
	}
	for _, sc := range e.scenarios {
		projections := make([]models.Projection, len(Years))
		for i, y := range Years {
			v := ProjectValue(current, sc.AnnualReturn, y)
			projections[i] = models.Projection{Year: y, Value: v, Growth: Growth(current, v)}
		}
		report.Scenarios = append(report.Scenarios, models.ForecastScenario{
			Name:         sc.Name,
			AnnualReturn: sc.AnnualReturn,
			Selected:     sc.Name == string(tolerance),
			Projections:  projections,
		})
	}
	return report
}
