// Package alerts prints the dashboard alerts and monthly recommendations.
package alerts

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fjacquet/finanai/cmd/root"
	"fjacquet/finanai/internal/advisor"
	"fjacquet/finanai/internal/report"
)

// Cmd represents the alerts command
var Cmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show alerts and recommendations",
	Long:  `Show balance, goal deadline and weekly spending alerts, followed by this month's recommendations.`,
	RunE:  alertsFunc,
}

func alertsFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	view, err := c.GetDashboard().Build(root.Context(cmd))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printAdvice(w, "Alertas", view.Alerts, report.NoAlertsMessage)
	fmt.Fprintln(w)
	printAdvice(w, "Recomendaciones del Mes", view.Recommendations, report.NoRecommendationsMessage)
	return nil
}

func printAdvice(w io.Writer, title string, advice []advisor.Advice, empty string) {
	fmt.Fprintln(w, title)
	if len(advice) == 0 {
		fmt.Fprintf(w, "  %s\n", empty)
		return
	}
	for _, a := range advice {
		fmt.Fprintf(w, "  %s %s: %s\n", report.SeverityIcon(a.Severity), a.Title, a.Message)
	}
}
