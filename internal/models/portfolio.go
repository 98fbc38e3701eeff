// Package models defines data structures for Folio
package models

import (
	"strings"
)

// RiskTolerance is the investor's stated appetite for risk
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// Valid reports whether r is one of the known tolerances.
func (r RiskTolerance) Valid() bool {
	switch r {
	case RiskConservative, RiskModerate, RiskAggressive:
		return true
	}
	return false
}

// TimeHorizon is the investor's intended holding period
type TimeHorizon string

const (
	Horizon1To3Years  TimeHorizon = "1-3 years"
	Horizon3To5Years  TimeHorizon = "3-5 years"
	Horizon5To10Years TimeHorizon = "5-10 years"
	Horizon10Plus     TimeHorizon = "10+ years"
)

// Valid reports whether h is one of the known horizons.
func (h TimeHorizon) Valid() bool {
	switch h {
	case Horizon1To3Years, Horizon3To5Years, Horizon5To10Years, Horizon10Plus:
		return true
	}
	return false
}

// InvestmentGoal is one of the supported portfolio objectives
type InvestmentGoal string

const (
	GoalGrowth       InvestmentGoal = "growth"
	GoalIncome       InvestmentGoal = "income"
	GoalPreservation InvestmentGoal = "preservation"
)

// Valid reports whether g is one of the known goals.
func (g InvestmentGoal) Valid() bool {
	switch g {
	case GoalGrowth, GoalIncome, GoalPreservation:
		return true
	}
	return false
}

// Defaults applied when a request omits tolerance or horizon.
const (
	DefaultRiskTolerance = RiskModerate
	DefaultTimeHorizon   = Horizon5To10Years
)

// Position is a single equity holding. CurrentPrice is supplied by the caller
// (or resolved from a quote) and is never fetched here.
type Position struct {
	Symbol        string  `json:"symbol" validate:"required"`
	Quantity      int     `json:"quantity" validate:"gt=0"`
	PurchasePrice float64 `json:"purchase_price" validate:"gt=0"`
	CurrentPrice  float64 `json:"current_price" validate:"gte=0"`
}

// NormalizeSymbol upper-cases and trims a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// PositionValue is quantity × current price.
func (p Position) PositionValue() float64 {
	return float64(p.Quantity) * p.CurrentPrice
}

// Cost is quantity × purchase price.
func (p Position) Cost() float64 {
	return float64(p.Quantity) * p.PurchasePrice
}

// ReturnPercentage is the simple price return since purchase.
// Zero when purchase price is not positive.
func (p Position) ReturnPercentage() float64 {
	if p.PurchasePrice <= 0 {
		return 0
	}
	return (p.CurrentPrice - p.PurchasePrice) / p.PurchasePrice * 100
}

// Portfolio is an ordered set of positions plus the investor profile.
// Duplicate symbols are kept as separate entries.
type Portfolio struct {
	Positions       []Position       `json:"positions"`
	RiskTolerance   RiskTolerance    `json:"risk_tolerance"`
	TimeHorizon     TimeHorizon      `json:"time_horizon"`
	InvestmentGoals []InvestmentGoal `json:"investment_goals"`
}

// HasGoal reports whether the portfolio lists the given goal.
func (p *Portfolio) HasGoal(goal InvestmentGoal) bool {
	for _, g := range p.InvestmentGoals {
		if g == goal {
			return true
		}
	}
	return false
}

// Symbols returns the distinct symbols in position order.
func (p *Portfolio) Symbols() []string {
	seen := make(map[string]bool, len(p.Positions))
	symbols := make([]string, 0, len(p.Positions))
	for _, pos := range p.Positions {
		if seen[pos.Symbol] {
			continue
		}
		seen[pos.Symbol] = true
		symbols = append(symbols, pos.Symbol)
	}
	return symbols
}

// TotalValue sums position values.
func (p *Portfolio) TotalValue() float64 {
	total := 0.0
	for _, pos := range p.Positions {
		total += pos.PositionValue()
	}
	return total
}

// TotalCost sums position costs.
func (p *Portfolio) TotalCost() float64 {
	total := 0.0
	for _, pos := range p.Positions {
		total += pos.Cost()
	}
	return total
}
