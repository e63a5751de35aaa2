package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense event.
// A positive Amount is income, a negative Amount is an expense.
type Transaction struct {
	ID               string          `json:"id" yaml:"id"`
	Amount           decimal.Decimal `json:"amount" yaml:"amount"`
	Description      string          `json:"description,omitempty" yaml:"description,omitempty"`
	Category         Category        `json:"category" yaml:"category"`
	Necessity        Necessity       `json:"necessity,omitempty" yaml:"necessity,omitempty"`
	GoalContribution string          `json:"goalContribution,omitempty" yaml:"goalContribution,omitempty"`
	Date             time.Time       `json:"date" yaml:"date"`
}

// IsIncome reports whether the transaction adds money.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense reports whether the transaction is not income. Zero amounts
// count as expenses of magnitude zero.
func (t Transaction) IsExpense() bool {
	return !t.IsIncome()
}

// AbsAmount returns the magnitude of the amount.
func (t Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// IsGoalContribution reports whether the expense was money set aside for a goal.
func (t Transaction) IsGoalContribution() bool {
	return t.GoalContribution != ""
}
