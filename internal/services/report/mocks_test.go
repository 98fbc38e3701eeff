package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// --- storage ---

type mockReportStore struct {
	reports map[string]*models.SavedReport
	saveErr error
}

func newMockReportStore() *mockReportStore {
	return &mockReportStore{reports: make(map[string]*models.SavedReport)}
}

func (m *mockReportStore) SaveReport(_ context.Context, r *models.SavedReport) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *r
	m.reports[r.ID] = &cp
	return nil
}

func (m *mockReportStore) GetReport(_ context.Context, id string) (*models.SavedReport, error) {
	r, ok := m.reports[id]
	if !ok {
		return nil, fmt.Errorf("report '%s': %w", id, interfaces.ErrNotFound)
	}
	return r, nil
}

func (m *mockReportStore) sorted(userID string) []*models.SavedReport {
	var out []*models.SavedReport
	for _, r := range m.reports {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *mockReportStore) ListReports(_ context.Context, userID string, limit int) ([]*models.SavedReport, error) {
	out := m.sorted(userID)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockReportStore) LatestBefore(_ context.Context, userID string, cutoff time.Time) (*models.SavedReport, error) {
	for _, r := range m.sorted(userID) {
		if r.CreatedAt.Before(cutoff) {
			return r, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockReportStore) PruneReports(_ context.Context, userID string, keep int) (int, error) {
	all := m.sorted(userID)
	if len(all) <= keep {
		return 0, nil
	}
	for _, r := range all[keep:] {
		delete(m.reports, r.ID)
	}
	return len(all) - keep, nil
}

func (m *mockReportStore) DeleteReport(_ context.Context, id string) error {
	delete(m.reports, id)
	return nil
}

type mockStorageManager struct {
	reports *mockReportStore
}

func (m *mockStorageManager) ReportStore() interfaces.ReportStore         { return m.reports }
func (m *mockStorageManager) PreferenceStore() interfaces.PreferenceStore { return nil }
func (m *mockStorageManager) DataPath() string                            { return "" }
func (m *mockStorageManager) Close() error                                { return nil }

// --- services ---

type mockPreferenceService struct {
	prefs models.UserPreferences
	err   error
}

func (m *mockPreferenceService) Get(ctx context.Context) (*models.UserPreferences, error) {
	if m.err != nil {
		return nil, m.err
	}
	p := m.prefs
	p.UserID = common.ResolveUserID(ctx)
	return &p, nil
}

func (m *mockPreferenceService) Update(_ context.Context, prefs models.UserPreferences) (*models.UserPreferences, error) {
	m.prefs = prefs
	return &prefs, nil
}

// recordingAnalysis wraps a real analysis service and keeps the last request.
type recordingAnalysis struct {
	interfaces.AnalysisService
	last models.AnalysisRequest
}

func (r *recordingAnalysis) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisReport, error) {
	r.last = req
	return r.AnalysisService.Analyze(ctx, req)
}
