package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a user-defined savings target with a deadline.
type Goal struct {
	ID           string          `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Date         time.Time       `json:"date" yaml:"date"`
	Completed    bool            `json:"completed" yaml:"completed"`
	TargetAmount decimal.Decimal `json:"targetAmount" yaml:"targetAmount"`
}

// DaysUntilDeadline returns the number of days left before the deadline,
// rounded up. Zero or negative means the deadline has passed.
func (g Goal) DaysUntilDeadline(now time.Time) int {
	return int(math.Ceil(g.Date.Sub(now).Hours() / 24))
}

// IsOverdue reports whether an active goal is past its deadline.
func (g Goal) IsOverdue(now time.Time) bool {
	return !g.Completed && g.Date.Before(now)
}

// ActiveGoals filters out completed goals, preserving order.
func ActiveGoals(goals []Goal) []Goal {
	var active []Goal
	for _, g := range goals {
		if !g.Completed {
			active = append(active, g)
		}
	}
	return active
}
