// Package charts computes the data series behind the dashboard charts.
// Rendering is left to the consumer.
package charts

import (
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/finanai/internal/dateutils"
	"fjacquet/finanai/internal/models"
)

// Default window sizes.
const (
	DefaultMonths = 6
	DefaultDays   = 14
)

// MonthLabels are the Spanish short month names, January first.
var MonthLabels = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// NecessityLabels label the necessity distribution slices.
var NecessityLabels = [3]string{"Alta", "Media", "Baja"}

// MonthlySeries holds income and expense totals per calendar month, oldest first.
type MonthlySeries struct {
	Labels   []string          `json:"labels" yaml:"labels"`
	Incomes  []decimal.Decimal `json:"incomes" yaml:"incomes"`
	Expenses []decimal.Decimal `json:"expenses" yaml:"expenses"`
}

// DailySeries holds expense totals per day, oldest first, labelled by day of month.
type DailySeries struct {
	Labels []int             `json:"labels" yaml:"labels"`
	Values []decimal.Decimal `json:"values" yaml:"values"`
}

// Distribution holds expense totals per necessity level.
type Distribution struct {
	High   decimal.Decimal `json:"high" yaml:"high"`
	Medium decimal.Decimal `json:"medium" yaml:"medium"`
	Low    decimal.Decimal `json:"low" yaml:"low"`
}

// Set bundles the three dashboard series.
type Set struct {
	Monthly   MonthlySeries `json:"monthly" yaml:"monthly"`
	Daily     DailySeries   `json:"daily" yaml:"daily"`
	Necessity Distribution  `json:"necessity" yaml:"necessity"`
}

// Build computes every series with the default windows.
func Build(transactions []models.Transaction, now time.Time) Set {
	return Set{
		Monthly:   Monthly(transactions, now, DefaultMonths),
		Daily:     DailyExpenses(transactions, now, DefaultDays),
		Necessity: NecessityDistribution(transactions),
	}
}

type monthKey struct {
	year  int
	month time.Month
}

// Monthly totals income and expenses for the last n calendar months
// including the current one. Months are keyed by year, so a window that
// spans January is contiguous. A non-positive n yields an empty series.
func Monthly(transactions []models.Transaction, now time.Time, n int) MonthlySeries {
	n = max(n, 0)
	series := MonthlySeries{
		Labels:   make([]string, n),
		Incomes:  zeros(n),
		Expenses: zeros(n),
	}

	index := make(map[monthKey]int, n)
	first := dateutils.StartOfMonth(now)
	for i := 0; i < n; i++ {
		m := first.AddDate(0, i-(n-1), 0)
		index[monthKey{m.Year(), m.Month()}] = i
		series.Labels[i] = MonthLabels[m.Month()-1]
	}

	for _, t := range transactions {
		d := t.Date.In(now.Location())
		i, ok := index[monthKey{d.Year(), d.Month()}]
		if !ok {
			continue
		}
		if t.IsIncome() {
			series.Incomes[i] = series.Incomes[i].Add(t.Amount)
		} else {
			series.Expenses[i] = series.Expenses[i].Add(t.AbsAmount())
		}
	}
	return series
}

// DailyExpenses totals expenses for each of the last n days, the last
// bucket being the 24 hours up to now. A non-positive n yields an empty series.
func DailyExpenses(transactions []models.Transaction, now time.Time, n int) DailySeries {
	n = max(n, 0)
	series := DailySeries{
		Labels: make([]int, n),
		Values: zeros(n),
	}
	for i := 0; i < n; i++ {
		series.Labels[i] = dateutils.DaysAgo(now, n-1-i).Day()
	}

	for _, t := range transactions {
		if !t.Amount.IsNegative() {
			continue
		}
		i := n - 1 - dateutils.FloorDays(t.Date, now)
		if i >= 0 && i < n {
			series.Values[i] = series.Values[i].Add(t.AbsAmount())
		}
	}
	return series
}

// NecessityDistribution totals expenses per necessity level. Expenses without
// a necessity count as low.
func NecessityDistribution(transactions []models.Transaction) Distribution {
	dist := Distribution{High: decimal.Zero, Medium: decimal.Zero, Low: decimal.Zero}
	for _, t := range transactions {
		if !t.Amount.IsNegative() {
			continue
		}
		switch t.Necessity {
		case models.NecessityHigh:
			dist.High = dist.High.Add(t.AbsAmount())
		case models.NecessityMedium:
			dist.Medium = dist.Medium.Add(t.AbsAmount())
		default:
			dist.Low = dist.Low.Add(t.AbsAmount())
		}
	}
	return dist
}

// Values returns the distribution in label order (high, medium, low).
func (d Distribution) Values() []decimal.Decimal {
	return []decimal.Decimal{d.High, d.Medium, d.Low}
}

func zeros(n int) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = decimal.Zero
	}
	return out
}
