// Package events extracts typed, impact-rated events from news headlines
package events

import "github.com/bobmcallan/folio/internal/models"

// Rule maps headline keywords to an event type. Keywords match whole
// headline tokens, case-insensitively, so every inflection is listed; a
// keyword containing spaces must match consecutive tokens.
type Rule struct {
	EventType string
	Keywords  []string
}

// DefaultRules is evaluated in order and the first matching row wins.
var DefaultRules = []Rule{
	{EventType: "acquires", Keywords: []string{
		"acquire", "acquires", "acquired", "acquiring", "acquisition", "acquisitions",
		"merger", "mergers", "merge", "merges", "merged", "buyout", "buyouts", "takeover", "takeovers",
	}},
	{EventType: "ceo", Keywords: []string{
		"ceo", "ceos", "resign", "resigns", "resigned", "resignation", "executive", "executives",
		"chairman", "appoints", "appointed", "steps down", "step down", "stepped down",
	}},
	{EventType: "earnings", Keywords: []string{
		"earnings", "revenue", "revenues", "profit", "profits", "quarterly", "guidance",
	}},
	{EventType: "lawsuit", Keywords: []string{
		"lawsuit", "lawsuits", "sue", "sues", "sued", "suing", "probe", "probes",
		"investigation", "investigations", "fine", "fines", "fined", "settlement", "settles", "settled",
	}},
	{EventType: "announces", Keywords: []string{
		"launch", "launches", "launched", "announce", "announces", "announced",
		"unveil", "unveils", "unveiled", "release", "releases", "released",
	}},
	{EventType: "partnership", Keywords: []string{
		"partnership", "partnerships", "partner", "partners", "partnered",
		"deal", "deals", "agreement", "agreements", "contract", "contracts",
	}},
	{EventType: "dividend", Keywords: []string{
		"dividend", "dividends", "buyback", "buybacks", "repurchase", "repurchases",
	}},
}

// DefaultBaseImpact is the impact of an event type before the polarity boost.
// Types not listed are low.
var DefaultBaseImpact = map[string]models.ImpactLevel{
	"acquires":    models.ImpactHigh,
	"ceo":         models.ImpactHigh,
	"lawsuit":     models.ImpactMedium,
	"earnings":    models.ImpactMedium,
	"announces":   models.ImpactLow,
	"partnership": models.ImpactLow,
	"dividend":    models.ImpactLow,
}

// Boost raises impact by Tiers when |polarity| reaches MinAbsPolarity.
type Boost struct {
	MinAbsPolarity float64
	Tiers          int
}

// DefaultBoosts builds the polarity boost table. Only the largest matching
// boost applies and the result is capped at high.
func DefaultBoosts(threshold float64) []Boost {
	return []Boost{
		{MinAbsPolarity: threshold, Tiers: 1},
	}
}
