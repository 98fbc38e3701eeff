package models

import "time"

// RiskLevel is the coarse risk classification of a portfolio
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// ImpactLevel is the heuristic severity of a news-derived event
type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "low"
	ImpactMedium ImpactLevel = "medium"
	ImpactHigh   ImpactLevel = "high"
)

// Rank orders impact tiers, low = 0.
func (l ImpactLevel) Rank() int {
	switch l {
	case ImpactHigh:
		return 2
	case ImpactMedium:
		return 1
	}
	return 0
}

// ImpactFromRank maps a tier rank back to a level, capped at high.
func ImpactFromRank(rank int) ImpactLevel {
	switch {
	case rank >= 2:
		return ImpactHigh
	case rank == 1:
		return ImpactMedium
	}
	return ImpactLow
}

// SentimentCategory buckets a polarity value
type SentimentCategory string

const (
	SentimentPositive SentimentCategory = "positive"
	SentimentNegative SentimentCategory = "negative"
	SentimentNeutral  SentimentCategory = "neutral"
)

// Trend is the direction of sentiment change for a symbol
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Priority is the fixed urgency of a recommendation rule
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// --- Risk ---

// ConcentrationMetrics holds the two concentration measures
type ConcentrationMetrics struct {
	HHI               float64 `json:"hhi"`
	Top3Concentration float64 `json:"top_3_concentration"`
}

// RiskMetrics is recomputed on every analysis and never persisted by the core
type RiskMetrics struct {
	RiskLevel            RiskLevel            `json:"risk_level"`
	ConcentrationMetrics ConcentrationMetrics `json:"concentration_metrics"`
	PortfolioVolatility  float64              `json:"portfolio_volatility"`
	NumberOfPositions    int                  `json:"number_of_positions"`
	Weights              []float64            `json:"weights"`
}

// --- Sentiment ---

// SentimentRecord is the score of a single headline
type SentimentRecord struct {
	Category     SentimentCategory `json:"category"`
	Polarity     float64           `json:"polarity"`
	Subjectivity float64           `json:"subjectivity"`
}

// ScoredNews pairs a NewsItem with its sentiment score
type ScoredNews struct {
	Item      NewsItem
	Sentiment SentimentRecord
}

// NewsEvent is a NewsItem that matched an event keyword
type NewsEvent struct {
	Headline    string          `json:"headline"`
	EventType   string          `json:"event_type"`
	DaysOld     int             `json:"days_old"`
	Sentiment   SentimentRecord `json:"sentiment"`
	Source      string          `json:"source"`
	ImpactLevel ImpactLevel     `json:"impact_level"`
}

// SymbolEvents is the per-symbol event roll-up
type SymbolEvents struct {
	Events           []NewsEvent `json:"events"`
	TotalEvents      int         `json:"total_events"`
	HighImpactEvents int         `json:"high_impact_events"`
	EventSummary     string      `json:"event_summary"`
}

// SymbolSentiment is the per-symbol sentiment breakdown
type SymbolSentiment struct {
	Sentiment    SentimentCategory `json:"sentiment"`
	Polarity     float64           `json:"polarity"`
	Subjectivity float64           `json:"subjectivity"`
	NewsCount    int               `json:"news_count"`
	Trend        Trend             `json:"trend"`
	RecentEvents []NewsEvent       `json:"recent_events"`
}

// SentimentDistribution counts headlines per category
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Total is the number of scored headlines.
func (d SentimentDistribution) Total() int {
	return d.Positive + d.Negative + d.Neutral
}

// TrendAnalysis buckets symbols by trend direction
type TrendAnalysis struct {
	Improving int              `json:"improving"`
	Declining int              `json:"declining"`
	Stable    int              `json:"stable"`
	BySymbol  map[string]Trend `json:"by_symbol"`
}

// RecentEvents is the portfolio-level event roll-up
type RecentEvents struct {
	PortfolioEvents  map[string]SymbolEvents `json:"portfolio_events"`
	PortfolioSummary string                  `json:"portfolio_summary"`
	TotalEvents      int                     `json:"total_events"`
	HighImpactCount  int                     `json:"high_impact_count"`
}

// SentimentReport is the market_sentiment section
type SentimentReport struct {
	OverallSentiment      SentimentCategory          `json:"overall_sentiment"`
	SentimentStrength     float64                    `json:"sentiment_strength"`
	Subjectivity          float64                    `json:"subjectivity"`
	SymbolBreakdown       map[string]SymbolSentiment `json:"symbol_breakdown"`
	SentimentDistribution SentimentDistribution      `json:"sentiment_distribution"`
	NewsSummary           string                     `json:"news_summary"`
	TrendAnalysis         TrendAnalysis              `json:"trend_analysis"`
	RecentEvents          RecentEvents               `json:"recent_events"`
}

// --- Forecast ---

// Projection is the forecast value at a given year
type Projection struct {
	Year   int     `json:"year"`
	Value  float64 `json:"value"`
	Growth float64 `json:"growth"`
}

// ForecastScenario is one named growth assumption and its projections
type ForecastScenario struct {
	Name         string       `json:"name"`
	AnnualReturn float64      `json:"annual_return"`
	Selected     bool         `json:"selected"`
	Projections  []Projection `json:"projections"`
}

// ForecastReport is the forecast section
type ForecastReport struct {
	CurrentValue float64            `json:"current_value"`
	Scenarios    []ForecastScenario `json:"scenarios"`
}

// Scenario returns the named scenario, or nil.
func (f *ForecastReport) Scenario(name string) *ForecastScenario {
	for i := range f.Scenarios {
		if f.Scenarios[i].Name == name {
			return &f.Scenarios[i]
		}
	}
	return nil
}

// --- Recommendations ---

// Recommendation is one prioritized action
type Recommendation struct {
	Type     string   `json:"type"`
	Priority Priority `json:"priority"`
	Action   string   `json:"action"`
	Details  string   `json:"details"`
}

// --- Summary / performance ---

// PositionSummary is a position with its derived values
type PositionSummary struct {
	Symbol           string  `json:"symbol"`
	Quantity         int     `json:"quantity"`
	PurchasePrice    float64 `json:"purchase_price"`
	CurrentPrice     float64 `json:"current_price"`
	PositionValue    float64 `json:"position_value"`
	ReturnPercentage float64 `json:"return_percentage"`
}

// PortfolioSummary is the portfolio_summary section
type PortfolioSummary struct {
	NumberOfPositions int               `json:"number_of_positions"`
	TotalValue        float64           `json:"total_value"`
	Positions         []PositionSummary `json:"positions"`
}

// PerformanceAnalysis is the performance_analysis section
type PerformanceAnalysis struct {
	TotalCost        float64 `json:"total_cost"`
	CurrentValue     float64 `json:"current_value"`
	TotalReturn      float64 `json:"total_return"`
	ReturnPercentage float64 `json:"return_percentage"`
	BestPerformer    string  `json:"best_performer,omitempty"`
	WorstPerformer   string  `json:"worst_performer,omitempty"`
}

// --- Visualization ---

// ChartPoint is a single labelled value
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is a named series of points
type ChartSeries struct {
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}

// ChartData is one chart-ready record
type ChartData struct {
	Title  string        `json:"title"`
	Kind   string        `json:"kind"`
	Series []ChartSeries `json:"series"`
}

// VisualizationData holds one record per chart type
type VisualizationData struct {
	Composition ChartData `json:"composition"`
	Performance ChartData `json:"performance"`
	Sentiment   ChartData `json:"sentiment"`
	Risk        ChartData `json:"risk"`
	Forecasting ChartData `json:"forecasting"`
}

// Chart returns the record for a chart kind.
func (v *VisualizationData) Chart(kind string) (ChartData, bool) {
	switch kind {
	case "composition":
		return v.Composition, true
	case "performance":
		return v.Performance, true
	case "sentiment":
		return v.Sentiment, true
	case "risk":
		return v.Risk, true
	case "forecasting":
		return v.Forecasting, true
	}
	return ChartData{}, false
}

// --- Report ---

// AnalysisReport is the unified output of the pipeline. Numbers are unrounded.
type AnalysisReport struct {
	Timestamp           time.Time           `json:"timestamp"`
	PortfolioSummary    PortfolioSummary    `json:"portfolio_summary"`
	PerformanceAnalysis PerformanceAnalysis `json:"performance_analysis"`
	RiskAnalysis        RiskMetrics         `json:"risk_analysis"`
	MarketSentiment     SentimentReport     `json:"market_sentiment"`
	Forecast            ForecastReport      `json:"forecast"`
	Recommendations     []Recommendation    `json:"recommendations"`
	VisualizationData   VisualizationData   `json:"visualization_data"`
	DataGaps            []DataGap           `json:"data_gaps"`
}
