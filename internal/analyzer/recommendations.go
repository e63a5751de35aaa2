package analyzer

import (
	"fjacquet/finanai/internal/models"

	"github.com/shopspring/decimal"
)

// Recommendation messages, in the order they are emitted.
const (
	RecommendRaiseSavings    = "Considera aumentar tu tasa de ahorro al 20% de tus ingresos"
	RecommendReduceNonEssent = "Los gastos no esenciales son elevados, considera reducirlos"
)

var (
	targetSavingsRate   = decimal.NewFromInt(20)
	nonEssentialAllowed = decimal.RequireFromString("0.3")
)

// Recommend evaluates each check independently and returns the messages in
// a fixed order.
func Recommend(r *models.AnalysisResult) []string {
	recs := []string{}
	if r.SavingsRate.LessThan(targetSavingsRate) {
		recs = append(recs, RecommendRaiseSavings)
	}
	if r.UnnecessaryExpenses.GreaterThan(r.NecessaryExpenses.Mul(nonEssentialAllowed)) {
		recs = append(recs, RecommendReduceNonEssent)
	}
	return recs
}
