package sentiment

import (
	"testing"

	"github.com/bobmcallan/folio/internal/models"
	"github.com/stretchr/testify/assert"
)

func newTestScorer() *Scorer {
	return NewScorer(models.DefaultAnalysisConfig().Sentiment)
}

func TestScore_NoHitsIsNeutralZero(t *testing.T) {
	s := newTestScorer()
	for _, text := range []string{"", "Apple launches new product", "12345 ---"} {
		got := s.Score(text)
		assert.Equal(t, models.SentimentNeutral, got.Category, text)
		assert.Zero(t, got.Polarity, text)
		assert.Zero(t, got.Subjectivity, text)
	}
}

func TestScore_Categories(t *testing.T) {
	s := newTestScorer()
	tests := []struct {
		text string
		want models.SentimentCategory
	}{
		{"Shares soar after strong results", models.SentimentPositive},
		{"Stock plunges on disappointing outlook", models.SentimentNegative},
		{"Company posts good gains but warns of risks", models.SentimentPositive},
		{"Analysts downgrade the stock", models.SentimentNegative},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := s.Score(tt.text)
			assert.Equal(t, tt.want, got.Category)
			assert.GreaterOrEqual(t, got.Polarity, -1.0)
			assert.LessOrEqual(t, got.Polarity, 1.0)
			assert.GreaterOrEqual(t, got.Subjectivity, 0.0)
			assert.LessOrEqual(t, got.Subjectivity, 1.0)
		})
	}
}

func TestScore_IntensifierAndCap(t *testing.T) {
	s := newTestScorer()
	plain := s.Score("good")
	intense := s.Score("very good")
	assert.InDelta(t, 0.7, plain.Polarity, 1e-9)
	assert.InDelta(t, 0.91, intense.Polarity, 1e-9)

	capped := s.Score("extremely excellent")
	assert.Equal(t, 1.0, capped.Polarity)
	assert.Equal(t, 1.0, capped.Subjectivity)
}

func TestScore_Negation(t *testing.T) {
	s := newTestScorer()
	tests := []struct {
		text string
		want float64
	}{
		{"not good", -0.35},
		{"not very good", -0.455},
		{"isn't good", -0.35},
		{"no bad news", 0.35},
		{"not the results, good", 0.7}, // negator outside the window
	}
	for _, tt := range tests {
		got := s.Score(tt.text)
		if diff := got.Polarity - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Score(%q).Polarity = %v, want %v", tt.text, got.Polarity, tt.want)
		}
	}
}

func TestCategorize_Band(t *testing.T) {
	tests := []struct {
		polarity float64
		want     models.SentimentCategory
	}{
		{0.1, models.SentimentNeutral},
		{0.1000001, models.SentimentPositive},
		{-0.1, models.SentimentNeutral},
		{-0.1000001, models.SentimentNegative},
		{0, models.SentimentNeutral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.polarity, 0.1), "polarity %v", tt.polarity)
	}
}

func TestCategorize_Monotonic(t *testing.T) {
	rank := map[models.SentimentCategory]int{
		models.SentimentNegative: 0,
		models.SentimentNeutral:  1,
		models.SentimentPositive: 2,
	}
	for _, band := range []float64{0, 0.05, 0.1, 0.3} {
		prev := -1
		for p := -1.0; p <= 1.0; p += 0.01 {
			r := rank[Categorize(p, band)]
			if r < prev {
				t.Fatalf("category moved toward negative at polarity %v band %v", p, band)
			}
			prev = r
		}
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"apple's", "q3", "isn't", "great"}, Tokenize("Apple's Q3 isn't GREAT!"))
	assert.Empty(t, Tokenize("  ...  "))
	assert.Equal(t, []string{"isn't", "won't"}, Tokenize("Isn\u2019t won\u2018t"))
}

func TestScore_TypographicApostrophe(t *testing.T) {
	s := newTestScorer()
	ascii := s.Score("Outlook isn't good")
	curly := s.Score("Outlook isn\u2019t good")
	assert.Equal(t, ascii, curly)
	assert.Equal(t, models.SentimentNegative, curly.Category)
}

func TestScorer_CustomLexicon(t *testing.T) {
	s := NewScorerWithLexicon(models.SentimentConfig{NeutralBand: 0.1},
		Lexicon{"moon": {0.9, 0.9}}, nil, nil)
	got := s.Score("to the moon")
	assert.Equal(t, models.SentimentPositive, got.Category)
	assert.InDelta(t, 0.9, got.Polarity, 1e-9)
}
