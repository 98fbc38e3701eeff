package models

import (
	"strings"
	"time"
)

// ReportFormat selects how much of a report is returned to a user
type ReportFormat string

const (
	ReportDetailed ReportFormat = "detailed"
	ReportSummary  ReportFormat = "summary"
)

// Valid reports whether f is a known report format.
func (f ReportFormat) Valid() bool {
	return f == ReportDetailed || f == ReportSummary
}

// UserPreferences personalise analysis defaults and report shape per user
type UserPreferences struct {
	UserID           string           `json:"user_id" badgerhold:"key"`
	RiskTolerance    RiskTolerance    `json:"risk_tolerance" validate:"omitempty,known"`
	TimeHorizon      TimeHorizon      `json:"time_horizon" validate:"omitempty,known"`
	InvestmentGoals  []InvestmentGoal `json:"investment_goals" validate:"dive,known"`
	PreferredSectors []string         `json:"preferred_sectors"`
	ReportFormat     ReportFormat     `json:"report_format" validate:"omitempty,known"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// DefaultPreferences returns the preferences used when none are stored.
func DefaultPreferences(userID string) UserPreferences {
	return UserPreferences{
		UserID:          userID,
		RiskTolerance:   DefaultRiskTolerance,
		TimeHorizon:     DefaultTimeHorizon,
		InvestmentGoals: []InvestmentGoal{GoalGrowth},
		ReportFormat:    ReportDetailed,
	}
}

// Normalize lower-cases enums and fills empty fields from defaults.
func (p UserPreferences) Normalize() UserPreferences {
	def := DefaultPreferences(p.UserID)
	p.RiskTolerance = RiskTolerance(strings.ToLower(strings.TrimSpace(string(p.RiskTolerance))))
	if p.RiskTolerance == "" {
		p.RiskTolerance = def.RiskTolerance
	}
	p.TimeHorizon = TimeHorizon(strings.ToLower(strings.TrimSpace(string(p.TimeHorizon))))
	if p.TimeHorizon == "" {
		p.TimeHorizon = def.TimeHorizon
	}
	p.ReportFormat = ReportFormat(strings.ToLower(strings.TrimSpace(string(p.ReportFormat))))
	if p.ReportFormat == "" {
		p.ReportFormat = def.ReportFormat
	}
	goals := make([]InvestmentGoal, 0, len(p.InvestmentGoals))
	for _, g := range p.InvestmentGoals {
		goals = append(goals, InvestmentGoal(strings.ToLower(strings.TrimSpace(string(g)))))
	}
	p.InvestmentGoals = goals
	return p
}

// Validate checks enum fields and returns an *InputError on failure.
func (p UserPreferences) Validate() error {
	return validateStruct(p)
}

// ApplyTo fills tolerance, horizon and goals on req where the request left
// them empty.
func (p UserPreferences) ApplyTo(req AnalysisRequest) AnalysisRequest {
	if strings.TrimSpace(string(req.RiskTolerance)) == "" {
		req.RiskTolerance = p.RiskTolerance
	}
	if strings.TrimSpace(string(req.TimeHorizon)) == "" {
		req.TimeHorizon = p.TimeHorizon
	}
	if len(req.InvestmentGoals) == 0 && len(p.InvestmentGoals) > 0 {
		req.InvestmentGoals = append([]InvestmentGoal(nil), p.InvestmentGoals...)
	}
	return req
}
