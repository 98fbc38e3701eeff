package insights

import (
	"regexp"

	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/events"
)

// Rule maps question keywords to a question type. Keywords match whole
// tokens; Mentions also matches any question that names a symbol.
type Rule struct {
	Type     models.QuestionType
	Keywords []string
	Mentions bool
}

// DefaultRules is evaluated in order and the first matching row wins.
// Unmatched questions are general.
var DefaultRules = []Rule{
	{Type: models.QuestionInvestment, Keywords: []string{
		"invest", "invests", "investing", "investment", "investments",
		"buy", "buying", "sell", "selling", "recommend", "recommends",
		"recommendation", "recommendations", "should i",
	}},
	{Type: models.QuestionStock, Mentions: true, Keywords: []string{
		"stock", "stocks", "share", "shares", "company", "companies", "ticker", "tickers",
	}},
	{Type: models.QuestionMarket, Keywords: []string{
		"market", "markets", "trend", "trends", "outlook", "forecast", "forecasts",
		"sentiment", "news",
	}},
	{Type: models.QuestionOptimization, Keywords: []string{
		"portfolio", "portfolios", "diversify", "diversified", "diversification",
		"optimize", "optimise", "optimization", "balance", "rebalance", "rebalancing",
		"allocation",
	}},
}

// Company names resolved to their tickers, in lookup order.
var DefaultCompanies = []struct {
	Name   string
	Symbol string
}{
	{"tesla", "TSLA"},
	{"apple", "AAPL"},
	{"microsoft", "MSFT"},
	{"google", "GOOGL"},
	{"alphabet", "GOOGL"},
	{"amazon", "AMZN"},
	{"nvidia", "NVDA"},
	{"meta", "META"},
	{"netflix", "NFLX"},
	{"disney", "DIS"},
	{"coca cola", "KO"},
	{"mcdonalds", "MCD"},
	{"mcdonald's", "MCD"},
	{"walmart", "WMT"},
	{"johnson johnson", "JNJ"},
	{"procter gamble", "PG"},
}

// tickerPattern finds upper-case words that look like symbols.
var tickerPattern = regexp.MustCompile(`\b[A-Z]{2,5}\b`)

// notTickers are upper-case words that read as tickers but are not.
var notTickers = map[string]bool{
	"AI": true, "CEO": true, "CFO": true, "ETF": true, "EPS": true, "IPO": true,
	"OK": true, "US": true, "USA": true, "USD": true, "YTD": true,
}

// classify returns the first rule matching the lower-cased tokens.
func classify(rules []Rule, tokens []string, mentions []string) models.QuestionType {
	for _, r := range rules {
		if r.Mentions && len(mentions) > 0 {
			return r.Type
		}
		for _, kw := range r.Keywords {
			if events.ContainsKeyword(tokens, kw) {
				return r.Type
			}
		}
	}
	return models.QuestionGeneral
}
