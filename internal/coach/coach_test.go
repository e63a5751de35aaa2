package coach

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/finanai/internal/logging"
	"fjacquet/finanai/internal/models"
)

type fakeGenerator struct {
	response string
	err      error
	prompt   string
	deadline bool
	closed   bool
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	_, f.deadline = ctx.Deadline()
	return f.response, f.err
}

func (f *fakeGenerator) Close() error {
	f.closed = true
	return nil
}

func sampleAnalysis() *models.AnalysisResult {
	return &models.AnalysisResult{
		TotalIncome:         decimal.NewFromInt(1000),
		TotalExpenses:       decimal.NewFromInt(600),
		NecessaryExpenses:   decimal.NewFromInt(400),
		UnnecessaryExpenses: decimal.NewFromInt(100),
		TotalSavings:        decimal.NewFromInt(100),
		SavingsRate:         decimal.NewFromInt(10),
		CategoryBreakdown: []models.CategoryAmount{
			{Category: models.CategoryFood, Amount: decimal.NewFromInt(300)},
			{Category: models.CategoryBills, Amount: decimal.Zero},
		},
		Trend:          models.TrendModerate,
		CompletedGoals: 1,
		ActiveGoals:    2,
	}
}

func TestParseTips(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "dash bullets", text: "Consejos:\n- Ahorra más\n- Cocina en casa\n", want: []string{"Ahorra más", "Cocina en casa"}},
		{name: "star bullets and spacing", text: "  * Revisa suscripciones  \n", want: []string{"Revisa suscripciones"}},
		{name: "capped at three", text: "- a\n- b\n- c\n- d", want: []string{"a", "b", "c"}},
		{name: "empty bullets skipped", text: "-\n- \n- real", want: []string{"real"}},
		{name: "no bullets", text: "Todo bien.", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTips(tt.text))
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(sampleAnalysis())

	assert.Contains(t, prompt, "Ingresos totales: $1000.00")
	assert.Contains(t, prompt, "Tasa de ahorro: 10.0%")
	assert.Contains(t, prompt, "Tendencia: moderate")
	assert.Contains(t, prompt, "food=$300.00")
	assert.NotContains(t, prompt, "bills=")
}

func TestGeminiClient_Advise(t *testing.T) {
	gen := &fakeGenerator{response: "- Reduce restaurantes\n- Automatiza el ahorro"}
	client := newGeminiClient(gen, 5*time.Second, logging.NewMockLogger())

	tips, err := client.Advise(context.Background(), sampleAnalysis())

	require.NoError(t, err)
	assert.Equal(t, []string{"Reduce restaurantes", "Automatiza el ahorro"}, tips)
	assert.True(t, gen.deadline, "requests are bounded by the timeout")
	assert.Contains(t, gen.prompt, "Gastos totales: $600.00")

	require.NoError(t, client.Close())
	assert.True(t, gen.closed)
}

func TestGeminiClient_Errors(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	client := newGeminiClient(gen, 0, logging.NewMockLogger())

	_, err := client.Advise(context.Background(), sampleAnalysis())
	assert.ErrorContains(t, err, "quota exceeded")
	assert.False(t, gen.deadline)

	_, err = client.Advise(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "gemini-2.0-flash", time.Second, logging.NewMockLogger())
	assert.Error(t, err)
}
