package badger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

type reportStorage struct {
	store  *Store
	logger *common.Logger
}

var _ interfaces.ReportStore = (*reportStorage)(nil)

// NewReportStorage creates a new ReportStore backed by BadgerHold.
func NewReportStorage(store *Store, logger *common.Logger) *reportStorage {
	return &reportStorage{store: store, logger: logger}
}

func (s *reportStorage) SaveReport(_ context.Context, report *models.SavedReport) error {
	if report.ID == "" {
		return fmt.Errorf("report id is required")
	}
	if err := s.store.db.Upsert(report.ID, report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	s.logger.Debug().Str("id", report.ID).Str("user", report.UserID).Msg("Report saved")
	return nil
}

func (s *reportStorage) GetReport(_ context.Context, id string) (*models.SavedReport, error) {
	var report models.SavedReport
	if err := s.store.db.Get(id, &report); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("report '%s': %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get report '%s': %w", id, err)
	}
	return &report, nil
}

// userReports returns every report for userID, newest first.
func (s *reportStorage) userReports(userID string) ([]*models.SavedReport, error) {
	var reports []models.SavedReport
	if err := s.store.db.Find(&reports, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].ID > reports[j].ID
		}
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	out := make([]*models.SavedReport, len(reports))
	for i := range reports {
		out[i] = &reports[i]
	}
	return out, nil
}

func (s *reportStorage) ListReports(_ context.Context, userID string, limit int) ([]*models.SavedReport, error) {
	reports, err := s.userReports(userID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

func (s *reportStorage) LatestBefore(_ context.Context, userID string, cutoff time.Time) (*models.SavedReport, error) {
	reports, err := s.userReports(userID)
	if err != nil {
		return nil, err
	}
	for _, r := range reports {
		if r.CreatedAt.Before(cutoff) {
			return r, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (s *reportStorage) PruneReports(ctx context.Context, userID string, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	reports, err := s.userReports(userID)
	if err != nil {
		return 0, err
	}
	if len(reports) <= keep {
		return 0, nil
	}
	deleted := 0
	for _, r := range reports[keep:] {
		if err := s.DeleteReport(ctx, r.ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	s.logger.Debug().Str("user", userID).Int("deleted", deleted).Msg("Reports pruned")
	return deleted, nil
}

func (s *reportStorage) DeleteReport(_ context.Context, id string) error {
	err := s.store.db.Delete(id, models.SavedReport{})
	if err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("failed to delete report '%s': %w", id, err)
	}
	s.logger.Debug().Str("id", id).Msg("Report deleted")
	return nil
}
