// Package preferences manages per-user analysis defaults
package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// Service implements PreferenceService
type Service struct {
	store  interfaces.PreferenceStore
	logger *common.Logger
}

var _ interfaces.PreferenceService = (*Service)(nil)

// NewService creates a new preference service
func NewService(store interfaces.PreferenceStore, logger *common.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Get returns the context user's preferences, or the defaults when none
// have been saved.
func (s *Service) Get(ctx context.Context) (*models.UserPreferences, error) {
	userID := common.ResolveUserID(ctx)
	prefs, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			def := models.DefaultPreferences(userID)
			return &def, nil
		}
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return prefs, nil
}

// Update validates and stores prefs for the context user. The user id in
// prefs is ignored.
func (s *Service) Update(ctx context.Context, prefs models.UserPreferences) (*models.UserPreferences, error) {
	prefs.UserID = common.ResolveUserID(ctx)
	prefs = prefs.Normalize()
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.SavePreferences(ctx, &prefs); err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}
	s.logger.Info().
		Str("user", prefs.UserID).
		Str("risk_tolerance", string(prefs.RiskTolerance)).
		Str("report_format", string(prefs.ReportFormat)).
		Msg("Preferences updated")
	return &prefs, nil
}
