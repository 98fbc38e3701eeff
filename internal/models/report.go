package models

import (
	"encoding/gob"
	"time"
)

func init() {
	gob.Register(SavedReport{})
	gob.Register(UserPreferences{})
}

// SavedReport is an analysis report kept in history for comparison and charts
type SavedReport struct {
	ID        string         `json:"id" badgerhold:"key"`
	UserID    string         `json:"user_id" badgerhold:"index"`
	CreatedAt time.Time      `json:"created_at" badgerhold:"index"`
	Report    AnalysisReport `json:"report"`
}

// ExportFormat is a supported export encoding
type ExportFormat string

const (
	ExportJSON     ExportFormat = "json"
	ExportCSV      ExportFormat = "csv"
	ExportMarkdown ExportFormat = "markdown"
	ExportPDF      ExportFormat = "pdf"
)

// Extension returns the file extension for the format.
func (f ExportFormat) Extension() string {
	if f == ExportMarkdown {
		return "md"
	}
	return string(f)
}

// ContentType returns the MIME type for the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportJSON:
		return "application/json"
	case ExportCSV:
		return "text/csv"
	case ExportMarkdown:
		return "text/markdown; charset=utf-8"
	case ExportPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Valid reports whether f is a supported format.
func (f ExportFormat) Valid() bool {
	switch f {
	case ExportJSON, ExportCSV, ExportMarkdown, ExportPDF:
		return true
	}
	return false
}

// ExportResult is an encoded report ready to hand to a caller
type ExportResult struct {
	Filename    string       `json:"filename"`
	Format      ExportFormat `json:"format"`
	ContentType string       `json:"content_type"`
	Data        []byte       `json:"-"`
}

// CompareRequest asks for a report to be diffed against history.
// LookbackDays overrides the configured window when set.
type CompareRequest struct {
	Report       *AnalysisReport `json:"report"`
	LookbackDays *int            `json:"lookback_days,omitempty"`
}

// ComparisonReport describes how a report moved against an older baseline
type ComparisonReport struct {
	Available         bool              `json:"available"`
	Message           string            `json:"message,omitempty"`
	LookbackDays      int               `json:"lookback_days"`
	CurrentTimestamp  time.Time         `json:"current_timestamp"`
	BaselineID        string            `json:"baseline_id,omitempty"`
	BaselineTimestamp time.Time         `json:"baseline_timestamp,omitempty"`
	ValueChange       float64           `json:"value_change"`
	ValueChangePct    float64           `json:"value_change_percentage"`
	ReturnChange      float64           `json:"return_percentage_change"`
	HHIChange         float64           `json:"hhi_change"`
	VolatilityChange  float64           `json:"volatility_change"`
	RiskLevelFrom     RiskLevel         `json:"risk_level_from,omitempty"`
	RiskLevelTo       RiskLevel         `json:"risk_level_to,omitempty"`
	SentimentFrom     SentimentCategory `json:"sentiment_from,omitempty"`
	SentimentTo       SentimentCategory `json:"sentiment_to,omitempty"`
	AddedSymbols      []string          `json:"added_symbols"`
	RemovedSymbols    []string          `json:"removed_symbols"`
}
