// Package analyze renders the financial dashboard report.
package analyze

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/finanai/cmd/root"
	"fjacquet/finanai/internal/fileutils"
	"fjacquet/finanai/internal/logging"
	"fjacquet/finanai/internal/models"
)

var (
	format string
	output string
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze your financial behavior",
	Long: `Analyze stored transactions and goals: balance, savings rate, spending
by category, trend, recommendations, alerts and chart series. The report is
written as text, JSON, YAML or HTML.`,
	RunE: analyzeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Report format: text, json, yaml or html (default from config)")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
}

func analyzeFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	view, err := c.GetDashboard().Build(root.Context(cmd))
	if err != nil {
		return err
	}

	reportFormat := format
	if reportFormat == "" {
		reportFormat = c.GetConfig().Report.Format
	}
	out, err := c.GetReportGenerator().Generate(view, reportFormat)
	if err != nil {
		return err
	}

	if output == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := fileutils.WriteFile(output, out, models.PermissionReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	c.GetLogger().Info("Report written",
		logging.Field{Key: logging.FieldFile, Value: output},
		logging.Field{Key: logging.FieldFormat, Value: reportFormat})
	return nil
}
