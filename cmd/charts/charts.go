// Package charts prints the dashboard chart series as JSON.
package charts

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"fjacquet/finanai/cmd/root"
)

// Cmd represents the charts command
var Cmd = &cobra.Command{
	Use:   "charts",
	Short: "Print chart series as JSON",
	Long:  `Print the monthly income/expense, daily expense and necessity distribution series as JSON.`,
	RunE:  chartsFunc,
}

func chartsFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	view, err := c.GetDashboard().Build(root.Context(cmd))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(view.Charts)
}
