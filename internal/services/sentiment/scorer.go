// Package sentiment scores news text and aggregates it into a portfolio view
package sentiment

import (
	"strings"
	"unicode"

	"github.com/bobmcallan/folio/internal/models"
	"gonum.org/v1/gonum/stat"
)

// negationDamp is applied to a scored word preceded by a negator.
const negationDamp = -0.5

// negatorWindow is how many preceding tokens are checked for a negator.
const negatorWindow = 2

// Scorer assigns polarity and subjectivity to text using a word lexicon.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	lexicon      Lexicon
	intensifiers map[string]float64
	negators     map[string]bool
	neutralBand  float64
}

// NewScorer creates a scorer over the default lexicon.
func NewScorer(cfg models.SentimentConfig) *Scorer {
	return NewScorerWithLexicon(cfg, DefaultLexicon, DefaultIntensifiers, DefaultNegators)
}

// NewScorerWithLexicon creates a scorer over caller-supplied word tables.
func NewScorerWithLexicon(cfg models.SentimentConfig, lexicon Lexicon, intensifiers map[string]float64, negators map[string]bool) *Scorer {
	return &Scorer{
		lexicon:      lexicon,
		intensifiers: intensifiers,
		negators:     negators,
		neutralBand:  cfg.NeutralBand,
	}
}

// Score returns the sentiment of text. Text without lexicon hits scores
// 0/0 and is neutral.
func (s *Scorer) Score(text string) models.SentimentRecord {
	tokens := Tokenize(text)

	var polarities, subjectivities []float64
	multiplier := 1.0
	for i, tok := range tokens {
		if m, ok := s.intensifiers[tok]; ok {
			multiplier *= m
			continue
		}

		entry, ok := s.lexicon[tok]
		if !ok {
			multiplier = 1.0
			continue
		}

		pol := clamp(entry.Polarity*multiplier, -1, 1)
		subj := clamp(entry.Subjectivity*multiplier, 0, 1)
		if s.negatedAt(tokens, i) {
			pol *= negationDamp
		}
		polarities = append(polarities, pol)
		subjectivities = append(subjectivities, subj)
		multiplier = 1.0
	}

	if len(polarities) == 0 {
		return models.SentimentRecord{Category: models.SentimentNeutral}
	}

	polarity := clamp(stat.Mean(polarities, nil), -1, 1)
	return models.SentimentRecord{
		Category:     Categorize(polarity, s.neutralBand),
		Polarity:     polarity,
		Subjectivity: clamp(stat.Mean(subjectivities, nil), 0, 1),
	}
}

// ScoreItem scores the headline and body of a news item.
func (s *Scorer) ScoreItem(item models.NewsItem) models.ScoredNews {
	return models.ScoredNews{Item: item, Sentiment: s.Score(item.Text())}
}

// Categorize buckets polarity with a symmetric neutral band.
func Categorize(polarity, band float64) models.SentimentCategory {
	switch {
	case polarity > band:
		return models.SentimentPositive
	case polarity < -band:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func (s *Scorer) negatedAt(tokens []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-negatorWindow; j-- {
		tok := tokens[j]
		if s.negators[tok] || strings.HasSuffix(tok, "n't") {
			return true
		}
	}
	return false
}

// apostrophes folds typographic quotes into the ASCII apostrophe.
var apostrophes = strings.NewReplacer("\u2019", "'", "\u2018", "'")

// Tokenize lower-cases text and splits it into words. Apostrophes are kept
// so contractions such as "isn't" (or "isn\u2019t") survive as one token.
func Tokenize(text string) []string {
	text = apostrophes.Replace(text)
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
