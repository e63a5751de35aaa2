package report

import (
	"sort"

	"fjacquet/finanai/internal/advisor"
	"fjacquet/finanai/internal/models"
)

// Empty-state messages.
const (
	NoDataMessage            = "Comienza a registrar transacciones para ver tu análisis financiero."
	NoRecommendationsMessage = "¡Buen trabajo! No hay recomendaciones pendientes."
	NoAlertsMessage          = "No hay alertas pendientes."
)

var categoryLabels = map[models.Category]string{
	models.CategoryFood:          "Alimentación",
	models.CategoryBills:         "Servicios",
	models.CategoryHealth:        "Salud",
	models.CategoryHousing:       "Vivienda",
	models.CategoryEducation:     "Educación",
	models.CategoryTransport:     "Transporte",
	models.CategoryClothing:      "Ropa",
	models.CategoryInsurance:     "Seguros",
	models.CategoryMaintenance:   "Mantenimiento",
	models.CategoryEntertainment: "Entretenimiento",
	models.CategoryHobbies:       "Pasatiempos",
	models.CategoryDining:        "Restaurantes",
	models.CategoryShopping:      "Compras",
	models.CategoryTravel:        "Viajes",
	models.CategorySalary:        "Salario",
	models.CategorySavings:       "Ahorro",
	models.CategoryOther:         "Otros",
}

var trendTexts = map[models.Trend]string{
	models.TrendExceptional: " Excepcional - ¡Finanzas sobresalientes!",
	models.TrendExcellent:   " Excelente - Mantén el gran trabajo",
	models.TrendImproving:   " Mejorando - En el camino correcto",
	models.TrendStable:      " Estable - Consistente y balanceado",
	models.TrendModerate:    " Moderado - Oportunidad de mejora",
	models.TrendConcerning:  " Preocupante - Necesita atención",
	models.TrendRisky:       " Riesgoso - Requiere acción inmediata",
	models.TrendCritical:    " Crítico - Situación financiera delicada",
	models.TrendUnstable:    " Inestable - Necesita restructuración urgente",
}

var trendClasses = map[models.Trend]string{
	models.TrendExceptional: "positive",
	models.TrendExcellent:   "positive",
	models.TrendImproving:   "improving",
	models.TrendStable:      "neutral",
	models.TrendModerate:    "concerning",
	models.TrendConcerning:  "concerning",
	models.TrendRisky:       "negative",
	models.TrendCritical:    "negative",
	models.TrendUnstable:    "negative",
}

// CategoryLabel returns the Spanish display name of c, or c itself when unknown.
func CategoryLabel(c models.Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// TrendText returns the display text of a trend tier.
func TrendText(t models.Trend) string {
	if text, ok := trendTexts[t]; ok {
		return text
	}
	return " Estable"
}

// TrendClass returns the style class of a trend tier.
func TrendClass(t models.Trend) string {
	if class, ok := trendClasses[t]; ok {
		return class
	}
	return "neutral"
}

// SortedBreakdown returns the categories with a positive amount, largest
// first; ties keep enumeration order.
func SortedBreakdown(result *models.AnalysisResult) []models.CategoryAmount {
	if result == nil {
		return nil
	}
	var entries []models.CategoryAmount
	for _, entry := range result.CategoryBreakdown {
		if entry.Amount.IsPositive() {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if cmp := entries[i].Amount.Cmp(entries[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return rank(entries[i].Category) < rank(entries[j].Category)
	})
	return entries
}

func rank(c models.Category) int {
	if i := c.Index(); i >= 0 {
		return i
	}
	return len(models.Categories())
}

// SeverityIcon returns the card icon for an advice severity.
func SeverityIcon(s advisor.Severity) string {
	switch s {
	case advisor.SeverityWarning:
		return "⚠️"
	case advisor.SeverityError:
		return "❌"
	default:
		return "ℹ️"
	}
}
