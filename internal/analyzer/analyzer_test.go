package analyzer

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"fjacquet/finanai/internal/finerrors"
	"fjacquet/finanai/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(amount string, category models.Category, necessity models.Necessity) models.Transaction {
	return models.Transaction{
		Amount:    decimal.RequireFromString(amount),
		Category:  category,
		Necessity: necessity,
	}
}

func contribution(amount string, goal string, necessity models.Necessity) models.Transaction {
	t := tx(amount, models.CategorySavings, necessity)
	t.GoalContribution = goal
	return t
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual),
		append([]interface{}{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

func completedGoals(n int) []models.Goal {
	goals := make([]models.Goal, n)
	for i := range goals {
		goals[i] = models.Goal{ID: fmt.Sprintf("g%d", i), Completed: true}
	}
	return goals
}

func TestAnalyze_IncomeOnly(t *testing.T) {
	result, err := Analyze([]models.Transaction{tx("1000", models.CategorySalary, "")}, nil)
	require.NoError(t, err)

	assertDecimal(t, "1000", result.TotalIncome)
	assertDecimal(t, "0", result.TotalExpenses)
	assertDecimal(t, "0", result.SavingsRate)
	assert.Equal(t, models.TrendUnstable, result.Trend)
	assert.Equal(t, []string{RecommendRaiseSavings}, result.Recommendations)
}

func TestAnalyze_NecessaryAndUnnecessary(t *testing.T) {
	transactions := []models.Transaction{
		tx("1000", models.CategorySalary, ""),
		tx("-200", models.CategoryFood, models.NecessityHigh),
		tx("-100", models.CategoryEntertainment, models.NecessityLow),
	}

	result, err := Analyze(transactions, nil)
	require.NoError(t, err)

	assertDecimal(t, "1000", result.TotalIncome)
	assertDecimal(t, "300", result.TotalExpenses)
	assertDecimal(t, "200", result.NecessaryExpenses)
	assertDecimal(t, "100", result.UnnecessaryExpenses)
	assertDecimal(t, "0", result.TotalSavings)
	assertDecimal(t, "0", result.SavingsRate)
	assertDecimal(t, "200", result.CategoryTotal(models.CategoryFood))
	assertDecimal(t, "100", result.CategoryTotal(models.CategoryEntertainment))
	assert.Equal(t, models.TrendUnstable, result.Trend)
	assert.Equal(t, []string{RecommendRaiseSavings, RecommendReduceNonEssent}, result.Recommendations)
}

func TestAnalyze_GoalContribution(t *testing.T) {
	transactions := []models.Transaction{
		tx("1000", models.CategorySalary, ""),
		contribution("-100", "g1", models.NecessityLow),
	}

	result, err := Analyze(transactions, nil)
	require.NoError(t, err)

	assertDecimal(t, "100", result.TotalSavings)
	assertDecimal(t, "100", result.TotalExpenses)
	assertDecimal(t, "0", result.NecessaryExpenses)
	assertDecimal(t, "0", result.UnnecessaryExpenses)
	assertDecimal(t, "10", result.SavingsRate)
	assertDecimal(t, "100", result.CategoryTotal(models.CategorySavings))
	assert.Equal(t, models.TrendConcerning, result.Trend)
	assert.Equal(t, []string{RecommendRaiseSavings}, result.Recommendations)
}

func TestAnalyze_NecessaryGoalContributionCountsAsNecessary(t *testing.T) {
	transactions := []models.Transaction{
		tx("1000", models.CategorySalary, ""),
		contribution("-100", "g1", models.NecessityMedium),
	}

	result, err := Analyze(transactions, nil)
	require.NoError(t, err)

	assertDecimal(t, "100", result.TotalSavings)
	assertDecimal(t, "100", result.NecessaryExpenses)
	assertDecimal(t, "0", result.UnnecessaryExpenses)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	result, err := Analyze(nil, []models.Goal{{ID: "g1"}})
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, finerrors.ErrNoData))

	result, err = Analyze([]models.Transaction{}, nil)
	assert.Nil(t, result)
	assert.True(t, finerrors.IsNoData(err))
}

func TestAnalyze_Exceptional(t *testing.T) {
	transactions := []models.Transaction{
		tx("1000", models.CategorySalary, ""),
		contribution("-350", "g1", models.NecessityLow),
		tx("-150", models.CategoryHobbies, models.NecessityLow),
		tx("-500", models.CategoryHousing, models.NecessityHigh),
	}

	result, err := Analyze(transactions, completedGoals(3))
	require.NoError(t, err)
	assert.Equal(t, models.TrendExceptional, result.Trend)
	assert.Equal(t, 3, result.CompletedGoals)
	assert.Equal(t, 0, result.ActiveGoals)

	// Same ratios with only two completed goals drop to the next tier.
	result, err = Analyze(transactions, completedGoals(2))
	require.NoError(t, err)
	assert.Equal(t, models.TrendExcellent, result.Trend)
}

func TestAnalyze_GoalCounts(t *testing.T) {
	goals := []models.Goal{
		{ID: "a", Completed: true},
		{ID: "b"},
		{ID: "c"},
	}
	result, err := Analyze([]models.Transaction{tx("10", models.CategorySalary, "")}, goals)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CompletedGoals)
	assert.Equal(t, 2, result.ActiveGoals)
}

func TestAnalyze_BreakdownContainsEveryCategory(t *testing.T) {
	result, err := Analyze([]models.Transaction{tx("-10", models.CategoryTravel, models.NecessityLow)}, nil)
	require.NoError(t, err)

	cats := models.Categories()
	require.Len(t, result.CategoryBreakdown, len(cats))
	for i, c := range cats {
		assert.Equal(t, c, result.CategoryBreakdown[i].Category, "breakdown must follow enumeration order")
	}
	assertDecimal(t, "10", result.CategoryTotal(models.CategoryTravel))
	assertDecimal(t, "0", result.CategoryTotal(models.CategoryFood))
}

func TestAnalyze_UnrecognizedCategoryBucketedToOther(t *testing.T) {
	transactions := []models.Transaction{
		tx("-25", models.Category("crypto"), models.NecessityLow),
		tx("-5", models.CategoryOther, models.NecessityLow),
	}

	result, err := Analyze(transactions, nil)
	require.NoError(t, err)

	assert.Len(t, result.CategoryBreakdown, len(models.Categories()))
	assertDecimal(t, "30", result.CategoryTotal(models.CategoryOther))
	assertDecimal(t, "0", result.CategoryTotal(models.Category("crypto")))
}

func TestAnalyze_UnsetNecessityIsUnnecessary(t *testing.T) {
	result, err := Analyze([]models.Transaction{tx("-40", models.CategoryShopping, "")}, nil)
	require.NoError(t, err)
	assertDecimal(t, "40", result.UnnecessaryExpenses)
}

func TestAnalyze_InvalidNecessity(t *testing.T) {
	transactions := []models.Transaction{
		tx("1000", models.CategorySalary, ""),
		tx("-10", models.CategoryFood, models.Necessity("urgent")),
	}

	result, err := Analyze(transactions, nil)
	assert.Nil(t, result)

	var vErr *finerrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, 1, vErr.Index)
	assert.Equal(t, "necessity", vErr.Field)
}

func TestAnalyze_ExpensesWithoutIncomeAreCritical(t *testing.T) {
	result, err := Analyze([]models.Transaction{tx("-80", models.CategoryFood, models.NecessityHigh)}, nil)
	require.NoError(t, err)

	assertDecimal(t, "0", result.SavingsRate)
	assert.Equal(t, models.TrendCritical, result.Trend)
}

func TestAnalyze_SavingsWithoutIncomeDoNotRank(t *testing.T) {
	// savings ratio is undefined without income, so no savings tier applies
	result, err := Analyze([]models.Transaction{contribution("-50", "g1", models.NecessityLow)}, completedGoals(5))
	require.NoError(t, err)
	assert.Equal(t, models.TrendCritical, result.Trend)
}

func TestAnalyze_OverspendingIsCritical(t *testing.T) {
	transactions := []models.Transaction{
		tx("500", models.CategorySalary, ""),
		tx("-800", models.CategoryHousing, models.NecessityHigh),
	}
	result, err := Analyze(transactions, nil)
	require.NoError(t, err)
	assert.Equal(t, models.TrendCritical, result.Trend)
}

func TestAnalyze_TotalsMatchSums(t *testing.T) {
	amounts := []string{"120.50", "-33.10", "-0.40", "999", "-1000", "0", "45.45", "-12"}

	var transactions []models.Transaction
	income, expenses := decimal.Zero, decimal.Zero
	for _, a := range amounts {
		d := decimal.RequireFromString(a)
		if d.IsPositive() {
			income = income.Add(d)
		} else {
			expenses = expenses.Add(d.Abs())
		}
		transactions = append(transactions, tx(a, models.CategoryOther, models.NecessityMedium))
	}

	result, err := Analyze(transactions, nil)
	require.NoError(t, err)
	assert.True(t, income.Equal(result.TotalIncome))
	assert.True(t, expenses.Equal(result.TotalExpenses))
	assert.False(t, result.TotalIncome.IsNegative())
	assert.False(t, result.TotalExpenses.IsNegative())
	assert.False(t, result.TotalSavings.IsNegative())
}

func TestAnalyze_Idempotent(t *testing.T) {
	transactions := []models.Transaction{
		tx("2500", models.CategorySalary, ""),
		tx("-700", models.CategoryHousing, models.NecessityHigh),
		tx("-90", models.CategoryDining, models.NecessityLow),
		contribution("-400", "g1", models.NecessityLow),
	}
	goals := []models.Goal{{ID: "g1"}, {ID: "g2", Completed: true}}

	first, err := Analyze(transactions, goals)
	require.NoError(t, err)
	second, err := Analyze(transactions, goals)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_ConcurrentCallers(t *testing.T) {
	transactions := []models.Transaction{
		tx("1000", models.CategorySalary, ""),
		contribution("-300", "g1", models.NecessityLow),
		tx("-100", models.CategoryFood, models.NecessityHigh),
	}
	want, err := Analyze(transactions, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*models.AnalysisResult, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Analyze(transactions, nil)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
