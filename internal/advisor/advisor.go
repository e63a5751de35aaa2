// Package advisor produces the dashboard's recommendation and alert cards
// from recent transactions and goal deadlines.
package advisor

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/finanai/internal/currencyutils"
	"fjacquet/finanai/internal/dateutils"
	"fjacquet/finanai/internal/models"
)

// Severity of an advice card.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Advice is a single recommendation or alert card.
type Advice struct {
	Title    string   `json:"title" yaml:"title"`
	Message  string   `json:"message" yaml:"message"`
	Severity Severity `json:"severity" yaml:"severity"`
}

// Thresholds holds the limits that trigger alerts.
type Thresholds struct {
	LowBalance       decimal.Decimal
	WeeklyExpense    decimal.Decimal
	GoalDeadlineDays int
}

// DefaultThresholds returns the dashboard defaults: balance under 100,
// weekly spending over 1000, goals due within 7 days.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LowBalance:       decimal.NewFromInt(100),
		WeeklyExpense:    decimal.NewFromInt(1000),
		GoalDeadlineDays: 7,
	}
}

var (
	minSavingsRate     = decimal.NewFromInt(20)
	maxNonEssentialPct = decimal.RequireFromString("0.3")
)

// Balance is the sum of all signed amounts.
func Balance(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}
	return total
}

// LastMonth returns the transactions dated on or after one calendar month
// before now.
func LastMonth(transactions []models.Transaction, now time.Time) []models.Transaction {
	return since(transactions, dateutils.MonthsAgo(now, 1))
}

func since(transactions []models.Transaction, from time.Time) []models.Transaction {
	var out []models.Transaction
	for _, t := range transactions {
		if !t.Date.Before(from) {
			out = append(out, t)
		}
	}
	return out
}

func totals(transactions []models.Transaction) (income, expenses decimal.Decimal) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, t := range transactions {
		switch {
		case t.Amount.IsPositive():
			income = income.Add(t.Amount)
		case t.Amount.IsNegative():
			expenses = expenses.Add(t.Amount.Abs())
		}
	}
	return income, expenses
}

// Recommend returns the dashboard recommendations, in a fixed order.
func Recommend(transactions []models.Transaction, goals []models.Goal, now time.Time) []Advice {
	advice := []Advice{}
	recent := LastMonth(transactions, now)
	income, expenses := totals(recent)

	rate := currencyutils.Percent(income.Sub(expenses), income)
	if rate.LessThan(minSavingsRate) {
		advice = append(advice, Advice{
			Title:    "Aumenta tu tasa de ahorro",
			Message:  "Intenta ahorrar al menos el 20% de tus ingresos mensuales.",
			Severity: SeverityWarning,
		})
	}

	nonEssential := decimal.Zero
	for _, t := range recent {
		if t.Amount.IsNegative() && t.Necessity == models.NecessityLow {
			nonEssential = nonEssential.Add(t.Amount.Abs())
		}
	}
	if nonEssential.GreaterThan(income.Mul(maxNonEssentialPct)) {
		advice = append(advice, Advice{
			Title:    "Gastos no esenciales elevados",
			Message:  "Los gastos en categorías no esenciales superan el 30% de tus ingresos.",
			Severity: SeverityWarning,
		})
	}

	overdue := 0
	for _, g := range goals {
		if g.IsOverdue(now) {
			overdue++
		}
	}
	if overdue > 0 {
		advice = append(advice, Advice{
			Title:    "Objetivos atrasados",
			Message:  fmt.Sprintf("Tienes %d objetivo(s) financiero(s) atrasado(s).", overdue),
			Severity: SeverityError,
		})
	}

	return advice
}

// Alerts returns the dashboard alerts: low balance, goal deadlines in goal
// order, then unusual weekly spending.
func Alerts(transactions []models.Transaction, goals []models.Goal, now time.Time, th Thresholds) []Advice {
	alerts := []Advice{}

	if Balance(transactions).LessThan(th.LowBalance) {
		alerts = append(alerts, Advice{
			Title:    "Balance bajo",
			Message:  fmt.Sprintf("Tu balance actual está por debajo de %s", currencyutils.FormatAmount(th.LowBalance)),
			Severity: SeverityWarning,
		})
	}

	for _, g := range goals {
		if g.Completed {
			continue
		}
		days := g.DaysUntilDeadline(now)
		switch {
		case days > 0 && days <= th.GoalDeadlineDays:
			alerts = append(alerts, Advice{
				Title:    "Objetivo próximo a vencer",
				Message:  fmt.Sprintf("%q vence en %d días", g.Name, days),
				Severity: SeverityWarning,
			})
		case days <= 0:
			alerts = append(alerts, Advice{
				Title:    "Objetivo vencido",
				Message:  fmt.Sprintf("%q ha vencido", g.Name),
				Severity: SeverityError,
			})
		}
	}

	_, weekly := totals(since(transactions, dateutils.DaysAgo(now, 7)))
	if weekly.GreaterThan(th.WeeklyExpense) {
		alerts = append(alerts, Advice{
			Title:    "Gasto semanal elevado",
			Message:  "Tus gastos esta semana son más altos de lo usual",
			Severity: SeverityWarning,
		})
	}

	return alerts
}
