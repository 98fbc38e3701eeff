// Package storage provides the top-level StorageManager over the BadgerHold store.
package storage

import (
	"fmt"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/storage/badger"
)

// Manager implements interfaces.StorageManager on a single BadgerHold store.
type Manager struct {
	store   *badger.Store
	reports interfaces.ReportStore
	prefs   interfaces.PreferenceStore
	logger  *common.Logger
}

// NewManager opens the store at config.Storage.Path.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report store: %w", err)
	}

	logger.Info().Str("path", config.Storage.Path).Msg("Storage manager initialized")

	return &Manager{
		store:   store,
		reports: badger.NewReportStorage(store, logger),
		prefs:   badger.NewPreferenceStorage(store, logger),
		logger:  logger,
	}, nil
}

func (m *Manager) ReportStore() interfaces.ReportStore {
	return m.reports
}

func (m *Manager) PreferenceStore() interfaces.PreferenceStore {
	return m.prefs
}

func (m *Manager) DataPath() string {
	return m.store.Path()
}

func (m *Manager) Close() error {
	if err := m.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
