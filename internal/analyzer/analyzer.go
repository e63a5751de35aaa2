// Package analyzer computes the financial behavior analysis of a set of
// transactions and goals: totals, savings rate, category breakdown, trend
// tier and recommendations.
//
// Analyze is a pure function. It performs no I/O and holds no state, so it
// can be called concurrently and its result memoized by input.
package analyzer

import (
	"fjacquet/finanai/internal/finerrors"
	"fjacquet/finanai/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Analyze aggregates transactions and goals into an AnalysisResult.
//
// It returns finerrors.ErrNoData when transactions is empty and a
// *finerrors.ValidationError when a transaction carries a necessity outside
// high, medium and low. Transactions whose category is not part of the
// enumeration are accounted under models.CategoryOther.
func Analyze(transactions []models.Transaction, goals []models.Goal) (*models.AnalysisResult, error) {
	if len(transactions) == 0 {
		return nil, finerrors.ErrNoData
	}
	if err := validate(transactions); err != nil {
		return nil, err
	}

	result := &models.AnalysisResult{
		TotalIncome:         decimal.Zero,
		TotalExpenses:       decimal.Zero,
		NecessaryExpenses:   decimal.Zero,
		UnnecessaryExpenses: decimal.Zero,
		TotalSavings:        decimal.Zero,
		SavingsRate:         decimal.Zero,
		CategoryBreakdown:   seedBreakdown(),
		Recommendations:     []string{},
	}

	for _, tx := range transactions {
		accumulate(result, tx)
	}

	if result.TotalIncome.IsPositive() {
		result.SavingsRate = result.TotalSavings.Div(result.TotalIncome).Mul(hundred)
	}

	for _, g := range goals {
		if g.Completed {
			result.CompletedGoals++
		} else {
			result.ActiveGoals++
		}
	}

	result.Trend = ClassifyTrend(NewRatios(result), result.CompletedGoals)
	result.Recommendations = Recommend(result)

	return result, nil
}

func validate(transactions []models.Transaction) error {
	for i, tx := range transactions {
		if tx.Necessity != "" && !tx.Necessity.IsValid() {
			return &finerrors.ValidationError{
				Record: "transaction",
				Index:  i,
				Field:  "necessity",
				Reason: "must be high, medium or low",
			}
		}
	}
	return nil
}

func seedBreakdown() []models.CategoryAmount {
	cats := models.Categories()
	breakdown := make([]models.CategoryAmount, len(cats))
	for i, c := range cats {
		breakdown[i] = models.CategoryAmount{Category: c, Amount: decimal.Zero}
	}
	return breakdown
}

func accumulate(result *models.AnalysisResult, tx models.Transaction) {
	if tx.IsIncome() {
		result.TotalIncome = result.TotalIncome.Add(tx.Amount)
		return
	}

	abs := tx.AbsAmount()

	idx := tx.Category.Index()
	if idx < 0 {
		idx = models.CategoryOther.Index()
	}
	result.CategoryBreakdown[idx].Amount = result.CategoryBreakdown[idx].Amount.Add(abs)

	if tx.IsGoalContribution() {
		result.TotalSavings = result.TotalSavings.Add(abs)
	}

	result.TotalExpenses = result.TotalExpenses.Add(abs)

	// A low-necessity goal contribution lands in neither bucket.
	if tx.Necessity.IsNecessary() {
		result.NecessaryExpenses = result.NecessaryExpenses.Add(abs)
	} else if !tx.IsGoalContribution() {
		result.UnnecessaryExpenses = result.UnnecessaryExpenses.Add(abs)
	}
}
