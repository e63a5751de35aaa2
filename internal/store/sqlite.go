package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"fjacquet/finanai/internal/fileutils"
	"fjacquet/finanai/internal/logging"
	"fjacquet/finanai/internal/models"
)

// SQLiteStore keeps transactions and goals in an SQLite database. Rows keep
// their insertion position so loads return the saved order.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewSQLiteStore(dbPath string, logger logging.Logger) (*SQLiteStore, error) {
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(dbPath)); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := os.Chmod(dbPath, models.PermissionDataFile); err != nil {
		logger.WithError(err).Warn("Failed to restrict database permissions")
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, amount, description, category, necessity, goal_contribution, date
		FROM transactions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var records []record
	for rows.Next() {
		var doc transactionDoc
		var amount string
		if err := rows.Scan(&doc.ID, &amount, &doc.Description, &doc.Category, &doc.Necessity, &doc.GoalContribution, &doc.Date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		doc.Amount = json.Number(amount)
		records = append(records, doc.record())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return decodeTransactions(records, s.logger.WithField(logging.FieldKey, KeyTransactions)), nil
}

func (s *SQLiteStore) LoadGoals(ctx context.Context) ([]models.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, date, completed, target_amount
		FROM goals ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var records []record
	for rows.Next() {
		var doc goalDoc
		var target string
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.Date, &doc.Completed, &target); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		doc.TargetAmount = json.Number(target)
		records = append(records, doc.record())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}

	return decodeGoals(records, s.logger.WithField(logging.FieldKey, KeyGoals)), nil
}

func (s *SQLiteStore) SaveTransactions(ctx context.Context, transactions []models.Transaction) error {
	return s.replace(ctx, "transactions", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO transactions
			(position, id, amount, description, category, necessity, goal_contribution, date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, doc := range transactionDocs(transactions) {
			if _, err := stmt.ExecContext(ctx, i, doc.ID, string(doc.Amount), doc.Description,
				doc.Category, doc.Necessity, doc.GoalContribution, doc.Date); err != nil {
				return fmt.Errorf("insert transaction %s: %w", doc.ID, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) SaveGoals(ctx context.Context, goals []models.Goal) error {
	return s.replace(ctx, "goals", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO goals
			(position, id, name, date, completed, target_amount)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, doc := range goalDocs(goals) {
			if _, err := stmt.ExecContext(ctx, i, doc.ID, doc.Name, doc.Date, doc.Completed, string(doc.TargetAmount)); err != nil {
				return fmt.Errorf("insert goal %s: %w", doc.ID, err)
			}
		}
		return nil
	})
}

// replace clears table and refills it inside one transaction.
func (s *SQLiteStore) replace(ctx context.Context, table string, fill func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err := fill(tx); err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}

	s.logger.Debug("Saved table", logging.Field{Key: logging.FieldKey, Value: table})
	return nil
}
