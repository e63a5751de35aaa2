package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{name: "plain decimal", input: "1234.56", expected: "1234.56"},
		{name: "negative", input: "-50", expected: "-50"},
		{name: "thousands comma", input: "1,234.56", expected: "1234.56"},
		{name: "european", input: "1.234,56", expected: "1234.56"},
		{name: "decimal comma", input: "1234,5", expected: "1234.5"},
		{name: "thousands only comma", input: "1,234", expected: "1234"},
		{name: "dollar sign", input: "$ 99.90", expected: "99.9"},
		{name: "swiss apostrophe with code", input: "CHF 1'234.50", expected: "1234.5"},
		{name: "euro sign", input: "€12,00", expected: "12"},
		{name: "empty", input: "", expectErr: true},
		{name: "whitespace", input: "   ", expectErr: true},
		{name: "not a number", input: "abc", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got %s", got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$1234.56", FormatAmount(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "$0.00", FormatAmount(decimal.Zero))
	assert.Equal(t, "$-50.00", FormatAmount(decimal.NewFromInt(-50)))
	assert.Equal(t, "$0.13", FormatAmount(decimal.RequireFromString("0.125")))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.5%", FormatPercent(decimal.RequireFromString("12.5")))
	assert.Equal(t, "33.3%", FormatPercent(decimal.NewFromInt(100).Div(decimal.NewFromInt(3))))
	assert.Equal(t, "0.0%", FormatPercent(decimal.Zero))
}

func TestPercent(t *testing.T) {
	assert.True(t, decimal.NewFromInt(25).Equal(Percent(decimal.NewFromInt(250), decimal.NewFromInt(1000))))
	assert.True(t, Percent(decimal.NewFromInt(5), decimal.Zero).IsZero())
	assert.True(t, Percent(decimal.NewFromInt(5), decimal.NewFromInt(-1)).IsZero())
}
