package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/finanai/internal/advisor"
	"fjacquet/finanai/internal/charts"
	"fjacquet/finanai/internal/models"
)

// View is everything the dashboard shows, computed in one pass.
type View struct {
	GeneratedAt      time.Time              `json:"generatedAt" yaml:"generatedAt"`
	TransactionCount int                    `json:"transactionCount" yaml:"transactionCount"`
	Balance          decimal.Decimal        `json:"balance" yaml:"balance"`
	NoData           bool                   `json:"noData" yaml:"noData"`
	Analysis         *models.AnalysisResult `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Recommendations  []advisor.Advice       `json:"recommendations" yaml:"recommendations"`
	Alerts           []advisor.Advice       `json:"alerts" yaml:"alerts"`
	Charts           charts.Set             `json:"charts" yaml:"charts"`
	ActiveGoals      []models.Goal          `json:"activeGoals" yaml:"activeGoals"`
	CoachTips        []string               `json:"coachTips,omitempty" yaml:"coachTips,omitempty"`
}
