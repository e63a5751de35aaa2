package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"

	"fjacquet/finanai/internal/logging"
	"fjacquet/finanai/internal/models"
)

// File names inside a CSV store directory.
const (
	TransactionsFile = "transactions.csv"
	GoalsFile        = "goals.csv"
)

// CSVStore keeps transactions and goals as two CSV files in a directory.
type CSVStore struct {
	dir    string
	logger logging.Logger
	mu     sync.Mutex
}

// NewCSVStore creates a store rooted at dir.
func NewCSVStore(dir string, logger logging.Logger) *CSVStore {
	return &CSVStore{dir: dir, logger: logger}
}

func (s *CSVStore) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	var rows []transactionDoc
	ok, err := s.read(ctx, TransactionsFile, &rows)
	if err != nil || !ok {
		return []models.Transaction{}, err
	}
	records := make([]record, len(rows))
	for i, row := range rows {
		records[i] = row.record()
	}
	return decodeTransactions(records, s.logger.WithField(logging.FieldFile, TransactionsFile)), nil
}

func (s *CSVStore) LoadGoals(ctx context.Context) ([]models.Goal, error) {
	var rows []goalDoc
	ok, err := s.read(ctx, GoalsFile, &rows)
	if err != nil || !ok {
		return []models.Goal{}, err
	}
	records := make([]record, len(rows))
	for i, row := range rows {
		records[i] = row.record()
	}
	return decodeGoals(records, s.logger.WithField(logging.FieldFile, GoalsFile)), nil
}

func (s *CSVStore) SaveTransactions(ctx context.Context, transactions []models.Transaction) error {
	docs := transactionDocs(transactions)
	return s.write(ctx, TransactionsFile, &docs)
}

func (s *CSVStore) SaveGoals(ctx context.Context, goals []models.Goal) error {
	docs := goalDocs(goals)
	return s.write(ctx, GoalsFile, &docs)
}

// Close is a no-op; files are opened per operation.
func (s *CSVStore) Close() error {
	return nil
}

// read unmarshals name into rows. It reports false when the file is absent,
// empty or malformed; only real I/O errors are returned.
func (s *CSVStore) read(ctx context.Context, name string, rows interface{}) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}

	if err := gocsv.UnmarshalBytes(data, rows); err != nil {
		s.logger.WithError(err).Warn("CSV file is malformed, using empty data",
			logging.Field{Key: logging.FieldFile, Value: path})
		return false, nil
	}
	return true, nil
}

func (s *CSVStore) write(ctx context.Context, name string, rows interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	if err := writeFile(path, data); err != nil {
		return err
	}
	s.logger.Debug("Saved CSV file", logging.Field{Key: logging.FieldFile, Value: path})
	return nil
}
