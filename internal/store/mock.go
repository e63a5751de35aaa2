package store

import (
	"context"
	"sync"

	"fjacquet/finanai/internal/models"
)

// MockStore is an in-memory Store for tests.
type MockStore struct {
	mu           sync.Mutex
	transactions []models.Transaction
	goals        []models.Goal

	LoadTransactionsErr error
	LoadGoalsErr        error
	SaveErr             error
	Closed              bool
	Saves               int
}

// NewMockStore returns a MockStore seeded with copies of the given data.
func NewMockStore(transactions []models.Transaction, goals []models.Goal) *MockStore {
	return &MockStore{
		transactions: append([]models.Transaction(nil), transactions...),
		goals:        append([]models.Goal(nil), goals...),
	}
}

func (m *MockStore) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadTransactionsErr != nil {
		return nil, m.LoadTransactionsErr
	}
	return append([]models.Transaction{}, m.transactions...), nil
}

func (m *MockStore) LoadGoals(ctx context.Context) ([]models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadGoalsErr != nil {
		return nil, m.LoadGoalsErr
	}
	return append([]models.Goal{}, m.goals...), nil
}

func (m *MockStore) SaveTransactions(ctx context.Context, transactions []models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.transactions = append([]models.Transaction(nil), transactions...)
	m.Saves++
	return nil
}

func (m *MockStore) SaveGoals(ctx context.Context, goals []models.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.goals = append([]models.Goal(nil), goals...)
	m.Saves++
	return nil
}

func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}
