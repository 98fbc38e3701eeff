package models

import "time"

// NewsItem is an already-fetched article for a symbol
type NewsItem struct {
	Headline    string    `json:"headline"`
	Content     string    `json:"content,omitempty"`
	Source      string    `json:"source,omitempty"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Text returns the headline joined with the body, as scored for sentiment.
func (n NewsItem) Text() string {
	if n.Content == "" {
		return n.Headline
	}
	return n.Headline + " " + n.Content
}

// DataGapKind identifies which upstream input was missing
type DataGapKind string

const (
	DataGapQuote   DataGapKind = "quote"
	DataGapNews    DataGapKind = "news"
	DataGapHistory DataGapKind = "history"
)

// DataGap records a missing input that was replaced by a safe default
type DataGap struct {
	Symbol   string      `json:"symbol"`
	Kind     DataGapKind `json:"kind"`
	Fallback string      `json:"fallback"`
}
