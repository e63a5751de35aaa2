package report

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"fjacquet/finanai/internal/advisor"
	"fjacquet/finanai/internal/dashboard"
	"fjacquet/finanai/internal/finerrors"
	"fjacquet/finanai/internal/logging"
	"fjacquet/finanai/internal/models"
)

func sampleView() *dashboard.View {
	return &dashboard.View{
		GeneratedAt:      time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC),
		TransactionCount: 3,
		Balance:          decimal.RequireFromString("400.5"),
		Analysis: &models.AnalysisResult{
			TotalIncome:         decimal.NewFromInt(1000),
			TotalExpenses:       decimal.RequireFromString("599.5"),
			NecessaryExpenses:   decimal.NewFromInt(400),
			UnnecessaryExpenses: decimal.RequireFromString("99.5"),
			TotalSavings:        decimal.NewFromInt(100),
			SavingsRate:         decimal.NewFromInt(10),
			CategoryBreakdown: []models.CategoryAmount{
				{Category: models.CategoryFood, Amount: decimal.NewFromInt(400)},
				{Category: models.CategoryBills, Amount: decimal.Zero},
				{Category: models.CategoryDining, Amount: decimal.RequireFromString("199.5")},
			},
			Trend:           models.TrendModerate,
			Recommendations: []string{"Considera aumentar tu tasa de ahorro al 20% de tus ingresos"},
			CompletedGoals:  1,
			ActiveGoals:     1,
		},
		Recommendations: []advisor.Advice{{Title: "Aumenta tu tasa de ahorro", Message: "Intenta ahorrar al menos el 20% de tus ingresos mensuales.", Severity: advisor.SeverityWarning}},
		Alerts:          []advisor.Advice{{Title: "Objetivo vencido", Message: `"<b>Viaje</b>" ha vencido`, Severity: advisor.SeverityError}},
		ActiveGoals:     []models.Goal{{ID: "g1", Name: "Viaje", Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}},
		CoachTips:       []string{"Cocina más en casa"},
	}
}

func TestGenerate_Text(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())

	out, err := g.Generate(sampleView(), FormatText)
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "FinanAI - Resumen financiero (2024-06-15)")
	assert.Contains(t, text, "Balance total: $400.50")
	assert.Contains(t, text, "Ingresos Totales: $1000.00")
	assert.Contains(t, text, "Gastos Totales: $599.50")
	assert.Contains(t, text, "Tasa de Ahorro: 10.0%")
	assert.Contains(t, text, "Completados: 1")
	assert.Contains(t, text, "    Alimentación: $400.00\n    Restaurantes: $199.50\n")
	assert.NotContains(t, text, "Servicios")
	assert.Contains(t, text, " Moderado - Oportunidad de mejora")
	assert.Contains(t, text, "- Considera aumentar tu tasa de ahorro al 20% de tus ingresos")
	assert.Contains(t, text, "⚠️ Aumenta tu tasa de ahorro")
	assert.Contains(t, text, "❌ Objetivo vencido")
	assert.Contains(t, text, "Viaje (g1) vence 2024-06-01")
	assert.Contains(t, text, "- Cocina más en casa")
}

func TestGenerate_TextEmptyStates(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())

	noData := &dashboard.View{NoData: true, Balance: decimal.Zero}
	out, err := g.Generate(noData, FormatText)
	require.NoError(t, err)
	assert.Contains(t, string(out), NoDataMessage)
	assert.Contains(t, string(out), NoRecommendationsMessage)
	assert.Contains(t, string(out), NoAlertsMessage)

	failed := &dashboard.View{Balance: decimal.Zero}
	out, err = g.Generate(failed, FormatText)
	require.NoError(t, err)
	assert.NotContains(t, string(out), NoDataMessage)
	assert.NotContains(t, string(out), "Resumen General")
}

func TestGenerate_JSON(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())

	out, err := g.Generate(sampleView(), FormatJSON)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	analysis, ok := decoded["analysis"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "moderate", analysis["trend"])
	assert.Equal(t, false, decoded["noData"])
	assert.Len(t, decoded["alerts"], 1)
}

func TestGenerate_YAML(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())

	out, err := g.Generate(sampleView(), FormatYAML)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "analysis")
	assert.Contains(t, decoded, "charts")
	assert.Equal(t, 3, decoded["transactionCount"])
}

func TestGenerate_HTML(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())

	out, err := g.Generate(sampleView(), FormatHTML)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, `<p class="concerning"> Moderado - Oportunidad de mejora</p>`)
	assert.Contains(t, html, "<span>Alimentación</span>")
	assert.Contains(t, html, "<li>Tasa de Ahorro: 10.0%</li>")
	assert.Contains(t, html, `<div class="alert error">`)
	assert.NotContains(t, html, "<b>Viaje</b>", "user data is escaped")
	assert.Contains(t, html, "Cocina más en casa")

	noData := &dashboard.View{NoData: true, Balance: decimal.Zero}
	out, err = g.Generate(noData, FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, string(out), NoDataMessage)
	assert.NotContains(t, string(out), "coachTips")
}

func TestGenerate_Errors(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())

	_, err := g.Generate(sampleView(), "pdf")
	var unsupported *finerrors.UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "pdf", unsupported.Format)

	_, err = g.Generate(nil, FormatText)
	assert.Error(t, err)
}
