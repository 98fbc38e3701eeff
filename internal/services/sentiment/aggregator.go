package sentiment

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/bobmcallan/folio/internal/models"
	"gonum.org/v1/gonum/stat"
)

// Aggregator rolls scored headlines and extracted events up to portfolio level.
type Aggregator struct {
	neutralBand    float64
	trendThreshold float64
}

// NewAggregator creates an aggregator using the sentiment thresholds.
func NewAggregator(cfg models.SentimentConfig) *Aggregator {
	return &Aggregator{
		neutralBand:    cfg.NeutralBand,
		trendThreshold: cfg.TrendThreshold,
	}
}

// Aggregate builds the sentiment report. symbols fixes the breakdown keys;
// a symbol with no scored items defaults to neutral with no events.
func (a *Aggregator) Aggregate(symbols []string, scored map[string][]models.ScoredNews, events map[string]models.SymbolEvents, now time.Time) models.SentimentReport {
	report := models.SentimentReport{
		SymbolBreakdown: make(map[string]models.SymbolSentiment, len(symbols)),
		TrendAnalysis: models.TrendAnalysis{
			BySymbol: make(map[string]models.Trend, len(symbols)),
		},
		RecentEvents: models.RecentEvents{
			PortfolioEvents: make(map[string]models.SymbolEvents, len(symbols)),
		},
	}

	var allPolarity, allSubjectivity []float64
	symbolsWithEvents := 0

	for _, sym := range symbols {
		items := scored[sym]

		breakdown := models.SymbolSentiment{
			Sentiment:    models.SentimentNeutral,
			NewsCount:    len(items),
			Trend:        models.TrendStable,
			RecentEvents: []models.NewsEvent{},
		}

		if len(items) > 0 {
			pols := make([]float64, len(items))
			subs := make([]float64, len(items))
			for i, it := range items {
				pols[i] = it.Sentiment.Polarity
				subs[i] = it.Sentiment.Subjectivity
				a.count(&report.SentimentDistribution, it.Sentiment.Category)
			}
			allPolarity = append(allPolarity, pols...)
			allSubjectivity = append(allSubjectivity, subs...)

			breakdown.Polarity = stat.Mean(pols, nil)
			breakdown.Subjectivity = stat.Mean(subs, nil)
			breakdown.Sentiment = Categorize(breakdown.Polarity, a.neutralBand)
			breakdown.Trend = a.Trend(items, now)
		}

		symEvents, ok := events[sym]
		if !ok || symEvents.Events == nil {
			symEvents.Events = []models.NewsEvent{}
			if !ok {
				symEvents.EventSummary = "No notable events."
			}
		}
		breakdown.RecentEvents = symEvents.Events
		report.RecentEvents.PortfolioEvents[sym] = symEvents
		report.RecentEvents.TotalEvents += symEvents.TotalEvents
		report.RecentEvents.HighImpactCount += symEvents.HighImpactEvents
		if symEvents.TotalEvents > 0 {
			symbolsWithEvents++
		}

		report.SymbolBreakdown[sym] = breakdown
		report.TrendAnalysis.BySymbol[sym] = breakdown.Trend
		switch breakdown.Trend {
		case models.TrendImproving:
			report.TrendAnalysis.Improving++
		case models.TrendDeclining:
			report.TrendAnalysis.Declining++
		default:
			report.TrendAnalysis.Stable++
		}
	}

	if len(allPolarity) > 0 {
		mean := stat.Mean(allPolarity, nil)
		report.OverallSentiment = Categorize(mean, a.neutralBand)
		report.SentimentStrength = math.Abs(mean)
		report.Subjectivity = stat.Mean(allSubjectivity, nil)
	} else {
		report.OverallSentiment = models.SentimentNeutral
	}

	report.NewsSummary = newsSummary(report.OverallSentiment, len(allPolarity), len(symbols))
	report.RecentEvents.PortfolioSummary = eventsSummary(report.RecentEvents, symbolsWithEvents)
	return report
}

// Trend compares the mean polarity of the recent half of items against the
// earlier half. The recent half takes the extra item when the count is odd.
// An item without a publish time is ordered as if published at now.
func (a *Aggregator) Trend(items []models.ScoredNews, now time.Time) models.Trend {
	if len(items) < 2 {
		return models.TrendStable
	}

	ordered := make([]models.ScoredNews, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return publishedOrNow(ordered[i].Item, now).Before(publishedOrNow(ordered[j].Item, now))
	})

	split := len(ordered) / 2
	earlier := polarities(ordered[:split])
	recent := polarities(ordered[split:])

	delta := stat.Mean(recent, nil) - stat.Mean(earlier, nil)
	switch {
	case delta > a.trendThreshold:
		return models.TrendImproving
	case delta < -a.trendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

func (a *Aggregator) count(d *models.SentimentDistribution, c models.SentimentCategory) {
	switch c {
	case models.SentimentPositive:
		d.Positive++
	case models.SentimentNegative:
		d.Negative++
	default:
		d.Neutral++
	}
}

func publishedOrNow(item models.NewsItem, now time.Time) time.Time {
	if item.PublishedAt.IsZero() {
		return now
	}
	return item.PublishedAt
}

func polarities(items []models.ScoredNews) []float64 {
	out := make([]float64, len(items))
	for i, it := range items {
		out[i] = it.Sentiment.Polarity
	}
	return out
}

func newsSummary(overall models.SentimentCategory, headlines, symbols int) string {
	if headlines == 0 {
		return fmt.Sprintf("No recent news was available for the %d holding(s) in this portfolio; sentiment is treated as neutral.", symbols)
	}
	switch overall {
	case models.SentimentPositive:
		return fmt.Sprintf("News sentiment across %d headline(s) is positive, with coverage of your holdings leaning favourable.", headlines)
	case models.SentimentNegative:
		return fmt.Sprintf("News sentiment across %d headline(s) is negative; coverage of your holdings warrants closer monitoring.", headlines)
	default:
		return fmt.Sprintf("News sentiment across %d headline(s) is neutral, with no strong lean in coverage of your holdings.", headlines)
	}
}

func eventsSummary(ev models.RecentEvents, symbolsWithEvents int) string {
	if ev.TotalEvents == 0 {
		return "No significant events detected in recent news for your holdings."
	}
	return fmt.Sprintf("%d event(s) detected across %d holding(s), including %d high-impact event(s).",
		ev.TotalEvents, symbolsWithEvents, ev.HighImpactCount)
}
