package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("not found")

// StorageManager coordinates the storage backends
type StorageManager interface {
	ReportStore() ReportStore
	PreferenceStore() PreferenceStore

	// DataPath returns the base data directory path.
	DataPath() string

	// Lifecycle
	Close() error
}

// ReportStore keeps saved analysis reports per user
type ReportStore interface {
	SaveReport(ctx context.Context, report *models.SavedReport) error
	GetReport(ctx context.Context, id string) (*models.SavedReport, error)

	// ListReports returns the user's reports newest first. limit <= 0 returns all.
	ListReports(ctx context.Context, userID string, limit int) ([]*models.SavedReport, error)

	// LatestBefore returns the newest report created strictly before cutoff,
	// or ErrNotFound.
	LatestBefore(ctx context.Context, userID string, cutoff time.Time) (*models.SavedReport, error)

	// PruneReports keeps the newest keep reports and returns the number deleted.
	PruneReports(ctx context.Context, userID string, keep int) (int, error)

	DeleteReport(ctx context.Context, id string) error
}

// PreferenceStore keeps one preferences record per user
type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error)
	SavePreferences(ctx context.Context, prefs *models.UserPreferences) error
	DeletePreferences(ctx context.Context, userID string) error
}
