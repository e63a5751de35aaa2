package report

import (
	"fmt"
	"strings"

	"fjacquet/finanai/internal/advisor"
	"fjacquet/finanai/internal/currencyutils"
	"fjacquet/finanai/internal/dashboard"
	"fjacquet/finanai/internal/dateutils"
)

func renderText(v *dashboard.View) string {
	var b strings.Builder

	fmt.Fprintf(&b, "FinanAI - Resumen financiero (%s)\n", dateutils.ToISODate(v.GeneratedAt))
	fmt.Fprintf(&b, "Balance total: %s\n", currencyutils.FormatAmount(v.Balance))

	b.WriteString("\nAnálisis de Comportamiento Financiero\n")
	switch {
	case v.NoData:
		fmt.Fprintf(&b, "  %s\n", NoDataMessage)
	case v.Analysis != nil:
		a := v.Analysis
		b.WriteString("  Resumen General\n")
		fmt.Fprintf(&b, "    Ingresos Totales: %s\n", currencyutils.FormatAmount(a.TotalIncome))
		fmt.Fprintf(&b, "    Gastos Totales: %s\n", currencyutils.FormatAmount(a.TotalExpenses))
		fmt.Fprintf(&b, "    Ahorros Totales: %s\n", currencyutils.FormatAmount(a.TotalSavings))
		fmt.Fprintf(&b, "    Tasa de Ahorro: %s\n", currencyutils.FormatPercent(a.SavingsRate))
		b.WriteString("  Objetivos\n")
		fmt.Fprintf(&b, "    Completados: %d\n", a.CompletedGoals)
		fmt.Fprintf(&b, "    Activos: %d\n", a.ActiveGoals)
		b.WriteString("  Distribución de Gastos por Categoría\n")
		for _, entry := range SortedBreakdown(a) {
			fmt.Fprintf(&b, "    %s: %s\n", CategoryLabel(entry.Category), currencyutils.FormatAmount(entry.Amount))
		}
		b.WriteString("  Tendencia\n")
		fmt.Fprintf(&b, "   %s\n", TrendText(a.Trend))
		b.WriteString("  Recomendaciones\n")
		for _, rec := range a.Recommendations {
			fmt.Fprintf(&b, "    - %s\n", rec)
		}
	}

	writeAdvice(&b, "Recomendaciones del Mes", v.Recommendations, NoRecommendationsMessage)
	writeAdvice(&b, "Alertas", v.Alerts, NoAlertsMessage)

	if len(v.ActiveGoals) > 0 {
		b.WriteString("\nObjetivos Activos\n")
		for _, g := range v.ActiveGoals {
			fmt.Fprintf(&b, "  %s (%s) vence %s\n", g.Name, g.ID, dateutils.ToISODate(g.Date))
		}
	}

	if len(v.CoachTips) > 0 {
		b.WriteString("\nConsejos Personalizados\n")
		for _, tip := range v.CoachTips {
			fmt.Fprintf(&b, "  - %s\n", tip)
		}
	}

	return b.String()
}

func writeAdvice(b *strings.Builder, title string, advice []advisor.Advice, empty string) {
	fmt.Fprintf(b, "\n%s\n", title)
	if len(advice) == 0 {
		fmt.Fprintf(b, "  %s\n", empty)
		return
	}
	for _, a := range advice {
		fmt.Fprintf(b, "  %s %s: %s\n", SeverityIcon(a.Severity), a.Title, a.Message)
	}
}
