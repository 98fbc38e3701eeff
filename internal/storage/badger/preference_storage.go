package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

type preferenceStorage struct {
	store  *Store
	logger *common.Logger
}

var _ interfaces.PreferenceStore = (*preferenceStorage)(nil)

// NewPreferenceStorage creates a new PreferenceStore backed by BadgerHold.
func NewPreferenceStorage(store *Store, logger *common.Logger) *preferenceStorage {
	return &preferenceStorage{store: store, logger: logger}
}

func (s *preferenceStorage) GetPreferences(_ context.Context, userID string) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	if err := s.store.db.Get(userID, &prefs); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("preferences for '%s': %w", userID, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get preferences for '%s': %w", userID, err)
	}
	return &prefs, nil
}

func (s *preferenceStorage) SavePreferences(_ context.Context, prefs *models.UserPreferences) error {
	if prefs.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	prefs.UpdatedAt = time.Now().UTC()
	if err := s.store.db.Upsert(prefs.UserID, prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	s.logger.Debug().Str("user", prefs.UserID).Msg("Preferences saved")
	return nil
}

func (s *preferenceStorage) DeletePreferences(_ context.Context, userID string) error {
	err := s.store.db.Delete(userID, models.UserPreferences{})
	if err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("failed to delete preferences for '%s': %w", userID, err)
	}
	return nil
}
