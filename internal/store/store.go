// Package store provides functionality for storing and retrieving transactions and goals.
package store

import (
	"context"
	"fmt"

	"fjacquet/finanai/internal/config"
	"fjacquet/finanai/internal/finerrors"
	"fjacquet/finanai/internal/logging"
	"fjacquet/finanai/internal/models"
)

// Keys under which the sequences are stored, matching the browser
// local-storage layout.
const (
	KeyTransactions = "transactions"
	KeyGoals        = "goals"
)

// Store is the persistence boundary for transactions and goals.
// Absent or malformed data loads as an empty sequence; Save replaces the
// whole stored sequence.
type Store interface {
	LoadTransactions(ctx context.Context) ([]models.Transaction, error)
	LoadGoals(ctx context.Context) ([]models.Goal, error)
	SaveTransactions(ctx context.Context, transactions []models.Transaction) error
	SaveGoals(ctx context.Context, goals []models.Goal) error
	Close() error
}

// New creates the store selected by cfg.Store.Backend.
func New(cfg *config.Config, logger logging.Logger) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	path := cfg.StorePath()
	logger = logger.WithFields(
		logging.Field{Key: logging.FieldBackend, Value: cfg.Store.Backend},
		logging.Field{Key: logging.FieldStore, Value: path},
	)

	switch cfg.Store.Backend {
	case config.BackendJSON:
		return NewJSONStore(path, logger), nil
	case config.BackendYAML:
		return NewYAMLStore(path, logger), nil
	case config.BackendCSV:
		return NewCSVStore(path, logger), nil
	case config.BackendSQLite:
		return NewSQLiteStore(path, logger)
	default:
		return nil, &finerrors.UnsupportedFormatError{
			Kind:     "store backend",
			Format:   cfg.Store.Backend,
			Expected: []string{config.BackendJSON, config.BackendYAML, config.BackendCSV, config.BackendSQLite},
		}
	}
}
