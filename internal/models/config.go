package models

// RiskThresholds drive risk_level classification.
type RiskThresholds struct {
	HHIHigh             float64 `toml:"hhi_high" json:"hhi_high"`
	HHIMedium           float64 `toml:"hhi_medium" json:"hhi_medium"`
	VolatilityHigh      float64 `toml:"volatility_high" json:"volatility_high"`
	VolatilityMedium    float64 `toml:"volatility_medium" json:"volatility_medium"`
	AnnualizeVolatility bool    `toml:"annualize_volatility" json:"annualize_volatility"`
}

// SentimentConfig tunes the scorer and aggregator.
type SentimentConfig struct {
	NeutralBand    float64 `toml:"neutral_band" json:"neutral_band"`
	TrendThreshold float64 `toml:"trend_threshold" json:"trend_threshold"`
}

// EventConfig tunes event extraction.
type EventConfig struct {
	BoostThreshold     float64 `toml:"boost_threshold" json:"boost_threshold"`
	MaxEventsPerSymbol int     `toml:"max_events_per_symbol" json:"max_events_per_symbol"`
	LookbackDays       int     `toml:"lookback_days" json:"lookback_days"`
}

// ScenarioConfig is one named annual-return assumption.
type ScenarioConfig struct {
	Name         string  `toml:"name" json:"name"`
	AnnualReturn float64 `toml:"annual_return" json:"annual_return"`
}

// ForecastConfig lists the scenarios projected for every report.
type ForecastConfig struct {
	Scenarios []ScenarioConfig `toml:"scenarios" json:"scenarios"`
}

// RecommendationConfig holds rule thresholds.
type RecommendationConfig struct {
	ConcentrationHHI    float64 `toml:"concentration_hhi" json:"concentration_hhi"`
	ConcentrationTop3   float64 `toml:"concentration_top3" json:"concentration_top3"`
	UnderperformancePct float64 `toml:"underperformance_pct" json:"underperformance_pct"`
}

// AnalysisConfig is injected into every analysis call. The core holds no
// other tunables.
type AnalysisConfig struct {
	Risk           RiskThresholds       `toml:"risk" json:"risk"`
	Sentiment      SentimentConfig      `toml:"sentiment" json:"sentiment"`
	Events         EventConfig          `toml:"events" json:"events"`
	Forecast       ForecastConfig       `toml:"forecast" json:"forecast"`
	Recommendation RecommendationConfig `toml:"recommendation" json:"recommendation"`
}

// DefaultAnalysisConfig returns the documented defaults.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Risk: RiskThresholds{
			HHIHigh:          0.5,
			HHIMedium:        0.25,
			VolatilityHigh:   0.4,
			VolatilityMedium: 0.2,
		},
		Sentiment: SentimentConfig{
			NeutralBand:    0.1,
			TrendThreshold: 0.05,
		},
		Events: EventConfig{
			BoostThreshold:     0.5,
			MaxEventsPerSymbol: 3,
			LookbackDays:       10,
		},
		Forecast: ForecastConfig{
			Scenarios: []ScenarioConfig{
				{Name: string(RiskConservative), AnnualReturn: 5},
				{Name: string(RiskModerate), AnnualReturn: 8},
				{Name: string(RiskAggressive), AnnualReturn: 12},
			},
		},
		Recommendation: RecommendationConfig{
			ConcentrationHHI:    0.25,
			ConcentrationTop3:   0.8,
			UnderperformancePct: -10,
		},
	}
}
