package analyzer

import (
	"fjacquet/finanai/internal/models"

	"github.com/shopspring/decimal"
)

// Ratio is a quotient that may be undefined when its denominator is zero.
// An undefined ratio fails every comparison.
type Ratio struct {
	Value   decimal.Decimal
	Defined bool
}

// NewRatio divides num by den. A zero den yields an undefined ratio.
func NewRatio(num, den decimal.Decimal) Ratio {
	if den.IsZero() {
		return Ratio{}
	}
	return Ratio{Value: num.Div(den), Defined: true}
}

// DefinedRatio builds a defined ratio from a known value.
func DefinedRatio(v float64) Ratio {
	return Ratio{Value: decimal.NewFromFloat(v), Defined: true}
}

// GreaterThan is false when r is undefined.
func (r Ratio) GreaterThan(threshold decimal.Decimal) bool {
	return r.Defined && r.Value.GreaterThan(threshold)
}

// LessThan is false when r is undefined.
func (r Ratio) LessThan(threshold decimal.Decimal) bool {
	return r.Defined && r.Value.LessThan(threshold)
}

// Ratios holds the three quotients the trend ladder is evaluated on.
type Ratios struct {
	Savings     Ratio
	Unnecessary Ratio
	// ExceedsIncome is true when expenses are more than income. Spending
	// with no income at all exceeds it.
	ExceedsIncome bool
}

// NewRatios derives the trend inputs from accumulated totals.
func NewRatios(r *models.AnalysisResult) Ratios {
	ratios := Ratios{
		Savings:     NewRatio(r.TotalSavings, r.TotalIncome),
		Unnecessary: NewRatio(r.UnnecessaryExpenses, r.TotalExpenses),
	}
	if r.TotalIncome.IsZero() {
		ratios.ExceedsIncome = r.TotalExpenses.IsPositive()
	} else {
		ratios.ExceedsIncome = NewRatio(r.TotalExpenses, r.TotalIncome).GreaterThan(decimal.NewFromInt(1))
	}
	return ratios
}

type tier struct {
	trend          models.Trend
	minSavings     decimal.Decimal
	maxUnnecessary decimal.Decimal
	minCompleted   int
}

// ladder rows are evaluated top to bottom; the first match wins.
var ladder = []tier{
	{models.TrendExceptional, decimal.RequireFromString("0.30"), decimal.RequireFromString("0.20"), 3},
	{models.TrendExcellent, decimal.RequireFromString("0.25"), decimal.RequireFromString("0.25"), 0},
	{models.TrendImproving, decimal.RequireFromString("0.20"), decimal.RequireFromString("0.30"), 0},
	{models.TrendStable, decimal.RequireFromString("0.15"), decimal.RequireFromString("0.35"), 0},
	{models.TrendModerate, decimal.RequireFromString("0.10"), decimal.RequireFromString("0.40"), 0},
	{models.TrendConcerning, decimal.RequireFromString("0.05"), decimal.RequireFromString("0.45"), 0},
	{models.TrendRisky, decimal.RequireFromString("0.02"), decimal.RequireFromString("0.50"), 0},
}

// ClassifyTrend maps ratios and the completed goal count to exactly one tier.
func ClassifyTrend(ratios Ratios, completedGoals int) models.Trend {
	for _, t := range ladder {
		if ratios.Savings.GreaterThan(t.minSavings) &&
			ratios.Unnecessary.LessThan(t.maxUnnecessary) &&
			completedGoals >= t.minCompleted {
			return t.trend
		}
	}
	if ratios.ExceedsIncome {
		return models.TrendCritical
	}
	return models.TrendUnstable
}
