package events

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/bobmcallan/folio/internal/models"
)

// Extractor turns scored news into NewsEvents using ordered lookup tables.
// It is stateless; the same inputs and now always give the same output.
type Extractor struct {
	rules      []Rule
	baseImpact map[string]models.ImpactLevel
	boosts     []Boost
	maxEvents  int
	lookback   int
}

// NewExtractor creates an extractor with the default tables.
func NewExtractor(cfg models.EventConfig) *Extractor {
	return NewExtractorWithTables(cfg, DefaultRules, DefaultBaseImpact, DefaultBoosts(cfg.BoostThreshold))
}

// NewExtractorWithTables creates an extractor over caller-supplied tables.
func NewExtractorWithTables(cfg models.EventConfig, rules []Rule, baseImpact map[string]models.ImpactLevel, boosts []Boost) *Extractor {
	maxEvents := cfg.MaxEventsPerSymbol
	if maxEvents <= 0 {
		maxEvents = 3
	}
	lookback := cfg.LookbackDays
	if lookback <= 0 {
		lookback = 10
	}
	return &Extractor{
		rules:      rules,
		baseImpact: baseImpact,
		boosts:     boosts,
		maxEvents:  maxEvents,
		lookback:   lookback,
	}
}

// MatchEventType returns the event type of the first rule whose keyword
// appears in the headline.
func (e *Extractor) MatchEventType(headline string) (string, bool) {
	tokens := tokenize(headline)
	if len(tokens) == 0 {
		return "", false
	}
	for _, rule := range e.rules {
		for _, kw := range rule.Keywords {
			if ContainsKeyword(tokens, kw) {
				return rule.EventType, true
			}
		}
	}
	return "", false
}

// Impact combines the base impact of eventType with the polarity boost.
func (e *Extractor) Impact(eventType string, polarity float64) models.ImpactLevel {
	base, ok := e.baseImpact[eventType]
	if !ok {
		base = models.ImpactLow
	}
	abs := math.Abs(polarity)
	tiers := 0
	for _, b := range e.boosts {
		if abs >= b.MinAbsPolarity && b.Tiers > tiers {
			tiers = b.Tiers
		}
	}
	return models.ImpactFromRank(base.Rank() + tiers)
}

// DaysOld is whole days between publishedAt and now, never negative.
// A zero publishedAt is treated as published now.
func DaysOld(publishedAt, now time.Time) int {
	if publishedAt.IsZero() {
		return 0
	}
	d := now.Sub(publishedAt)
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// Extract converts one scored item to an event. ok is false when the headline
// matches no event keyword.
func (e *Extractor) Extract(scored models.ScoredNews, now time.Time) (models.NewsEvent, bool) {
	eventType, ok := e.MatchEventType(scored.Item.Headline)
	if !ok {
		return models.NewsEvent{}, false
	}
	return models.NewsEvent{
		Headline:    scored.Item.Headline,
		EventType:   eventType,
		DaysOld:     DaysOld(scored.Item.PublishedAt, now),
		Sentiment:   scored.Sentiment,
		Source:      scored.Item.Source,
		ImpactLevel: e.Impact(eventType, scored.Sentiment.Polarity),
	}, true
}

// ExtractAll builds the per-symbol event roll-up. Events are ordered newest
// first and truncated; totals count every matched item.
func (e *Extractor) ExtractAll(items []models.ScoredNews, now time.Time) models.SymbolEvents {
	all := make([]models.NewsEvent, 0, len(items))
	for _, item := range items {
		if ev, ok := e.Extract(item, now); ok {
			all = append(all, ev)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].DaysOld < all[j].DaysOld
	})

	high := 0
	for _, ev := range all {
		if ev.ImpactLevel == models.ImpactHigh {
			high++
		}
	}

	top := all
	if len(top) > e.maxEvents {
		top = top[:e.maxEvents]
	}

	return models.SymbolEvents{
		Events:           append([]models.NewsEvent{}, top...),
		TotalEvents:      len(all),
		HighImpactEvents: high,
		EventSummary:     e.Summarize(all),
	}
}

// Summarize renders the event summary sentence for events sorted newest first.
func (e *Extractor) Summarize(sorted []models.NewsEvent) string {
	high, notable := 0, 0
	var types []string
	seen := make(map[string]bool)
	for _, ev := range sorted {
		if ev.DaysOld > e.lookback {
			continue
		}
		if ev.ImpactLevel == models.ImpactHigh {
			high++
		} else {
			notable++
		}
		if !seen[ev.EventType] && len(types) < 2 {
			seen[ev.EventType] = true
			types = append(types, ev.EventType)
		}
	}

	if high+notable == 0 {
		return fmt.Sprintf("No notable events in the last %d days.", e.lookback)
	}
	return fmt.Sprintf("%d high-impact and %d notable events in the last %d days, including %s.",
		high, notable, e.lookback, strings.Join(types, " and "))
}

// ContainsKeyword reports whether kw (one or more words) equals consecutive
// tokens.
func ContainsKeyword(tokens []string, kw string) bool {
	parts := strings.Fields(strings.ToLower(kw))
	if len(parts) == 0 || len(parts) > len(tokens) {
		return false
	}
	for i := 0; i+len(parts) <= len(tokens); i++ {
		matched := true
		for j, p := range parts {
			if tokens[i+j] != p {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
