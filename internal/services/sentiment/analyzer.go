package sentiment

import (
	"strings"
	"time"

	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/events"
)

// Analyzer runs scorer, event extractor and aggregator over a portfolio's news.
type Analyzer struct {
	scorer     *Scorer
	extractor  *events.Extractor
	aggregator *Aggregator
}

// NewAnalyzer wires the default scorer, extractor and aggregator.
func NewAnalyzer(cfg models.AnalysisConfig) *Analyzer {
	return &Analyzer{
		scorer:     NewScorer(cfg.Sentiment),
		extractor:  events.NewExtractor(cfg.Events),
		aggregator: NewAggregator(cfg.Sentiment),
	}
}

// Scorer exposes the headline scorer.
func (a *Analyzer) Scorer() *Scorer {
	return a.scorer
}

// Analyze scores every headline, extracts events per symbol and aggregates.
// Symbols without news are reported as data gaps and default to neutral.
func (a *Analyzer) Analyze(symbols []string, newsBySymbol map[string][]models.NewsItem, now time.Time) (models.SentimentReport, []models.DataGap) {
	scored := make(map[string][]models.ScoredNews, len(symbols))
	symbolEvents := make(map[string]models.SymbolEvents, len(symbols))
	var gaps []models.DataGap

	for _, sym := range symbols {
		items := usable(newsBySymbol[sym])
		if len(items) == 0 {
			gaps = append(gaps, models.DataGap{
				Symbol:   sym,
				Kind:     models.DataGapNews,
				Fallback: "neutral sentiment, no events",
			})
		}

		list := make([]models.ScoredNews, 0, len(items))
		for _, item := range items {
			list = append(list, a.scorer.ScoreItem(item))
		}
		scored[sym] = list
		symbolEvents[sym] = a.extractor.ExtractAll(list, now)
	}

	return a.aggregator.Aggregate(symbols, scored, symbolEvents, now), gaps
}

// usable drops items with neither headline nor body.
func usable(items []models.NewsItem) []models.NewsItem {
	out := make([]models.NewsItem, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Headline) == "" && strings.TrimSpace(it.Content) == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}
