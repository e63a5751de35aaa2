package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fjacquet/finanai/internal/advisor"
	"fjacquet/finanai/internal/models"
)

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Alimentación", CategoryLabel(models.CategoryFood))
	assert.Equal(t, "Otros", CategoryLabel(models.CategoryOther))
	assert.Equal(t, "lottery", CategoryLabel(models.Category("lottery")))

	for _, c := range models.Categories() {
		assert.NotEqual(t, string(c), CategoryLabel(c), "every category has a label: %s", c)
	}
}

func TestTrendTextAndClass(t *testing.T) {
	tests := []struct {
		trend models.Trend
		text  string
		class string
	}{
		{models.TrendExceptional, " Excepcional - ¡Finanzas sobresalientes!", "positive"},
		{models.TrendExcellent, " Excelente - Mantén el gran trabajo", "positive"},
		{models.TrendImproving, " Mejorando - En el camino correcto", "improving"},
		{models.TrendStable, " Estable - Consistente y balanceado", "neutral"},
		{models.TrendModerate, " Moderado - Oportunidad de mejora", "concerning"},
		{models.TrendConcerning, " Preocupante - Necesita atención", "concerning"},
		{models.TrendRisky, " Riesgoso - Requiere acción inmediata", "negative"},
		{models.TrendCritical, " Crítico - Situación financiera delicada", "negative"},
		{models.TrendUnstable, " Inestable - Necesita restructuración urgente", "negative"},
		{models.Trend("declining"), " Estable", "neutral"},
	}
	for _, tt := range tests {
		t.Run(string(tt.trend), func(t *testing.T) {
			assert.Equal(t, tt.text, TrendText(tt.trend))
			assert.Equal(t, tt.class, TrendClass(tt.trend))
		})
	}
}

func TestSortedBreakdown(t *testing.T) {
	result := &models.AnalysisResult{CategoryBreakdown: []models.CategoryAmount{
		{Category: models.CategoryFood, Amount: decimal.NewFromInt(100)},
		{Category: models.CategoryBills, Amount: decimal.Zero},
		{Category: models.CategoryHealth, Amount: decimal.NewFromInt(300)},
		{Category: models.CategoryDining, Amount: decimal.NewFromInt(100)},
		{Category: models.CategoryTransport, Amount: decimal.RequireFromString("100.00")},
		{Category: models.CategoryOther, Amount: decimal.RequireFromString("0.01")},
	}}

	got := SortedBreakdown(result)

	var order []models.Category
	for _, entry := range got {
		order = append(order, entry.Category)
	}
	assert.Equal(t, []models.Category{
		models.CategoryHealth,
		models.CategoryFood,
		models.CategoryTransport,
		models.CategoryDining,
		models.CategoryOther,
	}, order)
	assert.Nil(t, SortedBreakdown(nil))
}

func TestSeverityIcon(t *testing.T) {
	assert.Equal(t, "⚠️", SeverityIcon(advisor.SeverityWarning))
	assert.Equal(t, "❌", SeverityIcon(advisor.SeverityError))
	assert.Equal(t, "ℹ️", SeverityIcon(advisor.SeverityInfo))
}
