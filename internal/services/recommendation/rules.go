// Package recommendation turns analysis results into prioritized actions
package recommendation

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/folio/internal/models"
)

// Recommendation types
const (
	TypeRiskManagement = "risk_management"
	TypeMarketTiming   = "market_timing"
	TypeMonitoring     = "monitoring"
	TypePerformance    = "performance"
	TypeGoalAlignment  = "goal_alignment"
	TypeOpportunity    = "opportunity"
)

// Context is the read-only input every rule inspects.
type Context struct {
	Portfolio   models.Portfolio
	Positions   []models.PositionSummary
	Risk        models.RiskMetrics
	Sentiment   models.SentimentReport
	Performance models.PerformanceAnalysis
}

// Rule is one independent predicate with a fixed recommendation.
type Rule struct {
	Name     string
	Type     string
	Priority models.Priority
	Action   string
	When     func(c Context) bool
	Details  func(c Context) string
}

// Build renders the recommendation for c.
func (r Rule) Build(c Context) models.Recommendation {
	return models.Recommendation{
		Type:     r.Type,
		Priority: r.Priority,
		Action:   r.Action,
		Details:  r.Details(c),
	}
}

// DefaultRules returns the built-in rules in output order.
func DefaultRules(cfg models.RecommendationConfig, risk models.RiskThresholds) []Rule {
	return []Rule{
		{
			Name:     "concentration",
			Type:     TypeRiskManagement,
			Priority: models.PriorityHigh,
			Action:   "diversify",
			When: func(c Context) bool {
				n := c.Risk.NumberOfPositions
				if n == 1 {
					return true
				}
				cm := c.Risk.ConcentrationMetrics
				return n >= 2 && (cm.HHI >= cfg.ConcentrationHHI || cm.Top3Concentration >= cfg.ConcentrationTop3)
			},
			Details: func(c Context) string {
				cm := c.Risk.ConcentrationMetrics
				if c.Risk.NumberOfPositions == 1 {
					return "The portfolio holds a single position, so all value depends on one company. Spread capital across additional holdings and sectors."
				}
				return fmt.Sprintf("Concentration is elevated (HHI %.2f, top 3 holdings %.0f%% of value). Spread capital across more holdings and sectors to reduce single-name risk.",
					cm.HHI, cm.Top3Concentration*100)
			},
		},
		{
			Name:     "volatility",
			Type:     TypeRiskManagement,
			Priority: models.PriorityHigh,
			Action:   "reduce volatility",
			When: func(c Context) bool {
				return c.Risk.PortfolioVolatility > risk.VolatilityHigh
			},
			Details: func(c Context) string {
				return fmt.Sprintf("Weighted volatility of %.2f exceeds the %.2f threshold. Consider adding lower-volatility holdings or trimming the most volatile positions.",
					c.Risk.PortfolioVolatility, risk.VolatilityHigh)
			},
		},
		{
			Name:     "risk_tolerance_mismatch",
			Type:     TypeRiskManagement,
			Priority: models.PriorityHigh,
			Action:   "rebalance to match risk tolerance",
			When: func(c Context) bool {
				return c.Portfolio.RiskTolerance == models.RiskConservative && c.Risk.RiskLevel == models.RiskLevelHigh
			},
			Details: func(c Context) string {
				return "Portfolio risk is high but the stated tolerance is conservative. Rebalance toward diversified, lower-risk holdings."
			},
		},
		{
			Name:     "negative_sentiment",
			Type:     TypeMarketTiming,
			Priority: models.PriorityMedium,
			Action:   "consider defensive positions",
			When: func(c Context) bool {
				return c.Sentiment.OverallSentiment == models.SentimentNegative
			},
			Details: func(c Context) string {
				return fmt.Sprintf("News sentiment across holdings is negative (strength %.2f). Consider defensive positions or tighter risk controls until coverage improves.",
					c.Sentiment.SentimentStrength)
			},
		},
		{
			Name:     "declining_trend",
			Type:     TypeMarketTiming,
			Priority: models.PriorityMedium,
			Action:   "review declining holdings",
			When: func(c Context) bool {
				return c.Sentiment.TrendAnalysis.Declining > c.Sentiment.TrendAnalysis.Improving
			},
			Details: func(c Context) string {
				return fmt.Sprintf("Sentiment is declining for %s. Review whether the investment case for these holdings still holds.",
					strings.Join(symbolsWithTrend(c, models.TrendDeclining), ", "))
			},
		},
		{
			Name:     "high_impact_events",
			Type:     TypeMonitoring,
			Priority: models.PriorityMedium,
			Action:   "review recent events",
			When: func(c Context) bool {
				return c.Sentiment.RecentEvents.HighImpactCount > 0
			},
			Details: func(c Context) string {
				return fmt.Sprintf("%d high-impact event(s) were detected in recent news. %s",
					c.Sentiment.RecentEvents.HighImpactCount, c.Sentiment.RecentEvents.PortfolioSummary)
			},
		},
		{
			Name:     "underperformance",
			Type:     TypePerformance,
			Priority: models.PriorityMedium,
			Action:   "review underperforming positions",
			When: func(c Context) bool {
				return len(underperformers(c, cfg.UnderperformancePct)) > 0
			},
			Details: func(c Context) string {
				return fmt.Sprintf("%s returned %.0f%% or worse since purchase. Reassess these positions against your original thesis.",
					strings.Join(underperformers(c, cfg.UnderperformancePct), ", "), cfg.UnderperformancePct)
			},
		},
		{
			Name:     "goal_income",
			Type:     TypeGoalAlignment,
			Priority: models.PriorityLow,
			Action:   "add income-generating assets",
			When: func(c Context) bool {
				return c.Portfolio.HasGoal(models.GoalIncome)
			},
			Details: func(c Context) string {
				return "Income is an investment goal. Consider dividend-paying equities or income funds to support regular cash flow."
			},
		},
		{
			Name:     "goal_preservation_aggressive",
			Type:     TypeGoalAlignment,
			Priority: models.PriorityMedium,
			Action:   "align risk tolerance with preservation goal",
			When: func(c Context) bool {
				return c.Portfolio.HasGoal(models.GoalPreservation) && c.Portfolio.RiskTolerance == models.RiskAggressive
			},
			Details: func(c Context) string {
				return "Capital preservation is a goal while risk tolerance is aggressive. Revisit one or the other so the portfolio has a consistent objective."
			},
		},
		{
			Name:     "horizon_mismatch",
			Type:     TypeGoalAlignment,
			Priority: models.PriorityMedium,
			Action:   "reduce risk for short horizon",
			When: func(c Context) bool {
				return c.Portfolio.TimeHorizon == models.Horizon1To3Years && c.Portfolio.RiskTolerance == models.RiskAggressive
			},
			Details: func(c Context) string {
				return "An aggressive stance over a 1-3 year horizon leaves little time to recover from drawdowns. Consider a more moderate allocation."
			},
		},
		{
			Name:     "positive_momentum",
			Type:     TypeOpportunity,
			Priority: models.PriorityLow,
			Action:   "maintain growth allocation",
			When: func(c Context) bool {
				return c.Sentiment.OverallSentiment == models.SentimentPositive &&
					c.Performance.ReturnPercentage > 0 &&
					c.Portfolio.HasGoal(models.GoalGrowth)
			},
			Details: func(c Context) string {
				return fmt.Sprintf("Sentiment is positive and the portfolio is up %.1f%%, consistent with the growth goal. Maintain the current allocation and rebalance periodically.",
					c.Performance.ReturnPercentage)
			},
		},
	}
}

func underperformers(c Context, threshold float64) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range c.Positions {
		if p.ReturnPercentage <= threshold && !seen[p.Symbol] {
			seen[p.Symbol] = true
			out = append(out, p.Symbol)
		}
	}
	return out
}

func symbolsWithTrend(c Context, trend models.Trend) []string {
	var out []string
	for _, sym := range c.Portfolio.Symbols() {
		if c.Sentiment.TrendAnalysis.BySymbol[sym] == trend {
			out = append(out, sym)
		}
	}
	return out
}
