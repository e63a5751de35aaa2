package models

import "github.com/shopspring/decimal"

// CategoryAmount is the accumulated expense magnitude for one category.
type CategoryAmount struct {
	Category Category        `json:"category" yaml:"category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
}

// AnalysisResult is the output of a financial behavior analysis.
// It is produced from scratch on every analysis and never mutated afterwards.
type AnalysisResult struct {
	TotalIncome         decimal.Decimal  `json:"totalIncome" yaml:"totalIncome"`
	TotalExpenses       decimal.Decimal  `json:"totalExpenses" yaml:"totalExpenses"`
	NecessaryExpenses   decimal.Decimal  `json:"necessaryExpenses" yaml:"necessaryExpenses"`
	UnnecessaryExpenses decimal.Decimal  `json:"unnecessaryExpenses" yaml:"unnecessaryExpenses"`
	TotalSavings        decimal.Decimal  `json:"totalSavings" yaml:"totalSavings"`
	SavingsRate         decimal.Decimal  `json:"savingsRate" yaml:"savingsRate"`
	CategoryBreakdown   []CategoryAmount `json:"categoryBreakdown" yaml:"categoryBreakdown"`
	Trend               Trend            `json:"trend" yaml:"trend"`
	Recommendations     []string         `json:"recommendations" yaml:"recommendations"`
	CompletedGoals      int              `json:"completedGoals" yaml:"completedGoals"`
	ActiveGoals         int              `json:"activeGoals" yaml:"activeGoals"`
}

// CategoryTotal returns the breakdown amount for c, zero when absent.
func (r *AnalysisResult) CategoryTotal(c Category) decimal.Decimal {
	for _, entry := range r.CategoryBreakdown {
		if entry.Category == c {
			return entry.Amount
		}
	}
	return decimal.Zero
}
