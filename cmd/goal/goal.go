// Package goal adds or completes savings goals.
package goal

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/finanai/cmd/root"
	"fjacquet/finanai/internal/currencyutils"
	"fjacquet/finanai/internal/dateutils"
	"fjacquet/finanai/internal/models"
)

var (
	name     string
	deadline string
	target   string
	complete string
)

// Cmd represents the goal command
var Cmd = &cobra.Command{
	Use:   "goal",
	Short: "Add or complete a savings goal",
	Long: `Add a savings goal with a name, a deadline and an optional target amount,
or mark an existing goal as completed with --complete.`,
	RunE: goalFunc,
}

func init() {
	Cmd.Flags().StringVar(&name, "name", "", "Goal name")
	Cmd.Flags().StringVar(&deadline, "deadline", "", "Goal deadline (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&target, "target", "", "Target amount (optional)")
	Cmd.Flags().StringVar(&complete, "complete", "", "ID of the goal to mark as completed")
	Cmd.MarkFlagsMutuallyExclusive("complete", "name")
}

func goalFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	ctx := root.Context(cmd)

	if complete != "" {
		if err := c.GetDashboard().CompleteGoal(ctx, complete); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Objetivo %s completado\n", complete)
		return nil
	}

	g, err := buildGoal()
	if err != nil {
		return err
	}
	saved, err := c.GetDashboard().AddGoal(ctx, g)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Objetivo %q creado (%s), vence %s\n", saved.Name, saved.ID, dateutils.ToISODate(saved.Date))
	return nil
}

func buildGoal() (models.Goal, error) {
	if deadline == "" {
		return models.Goal{}, fmt.Errorf("--deadline is required")
	}
	when, err := dateutils.ParseDate(deadline)
	if err != nil {
		return models.Goal{}, fmt.Errorf("invalid deadline: %w", err)
	}

	amount := decimal.Zero
	if target != "" {
		amount, err = currencyutils.ParseAmount(target)
		if err != nil {
			return models.Goal{}, fmt.Errorf("invalid target: %w", err)
		}
	}

	return models.Goal{Name: name, Date: when, TargetAmount: amount}, nil
}
