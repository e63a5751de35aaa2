// Package add records a new income or expense.
package add

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/finanai/cmd/root"
	"fjacquet/finanai/internal/currencyutils"
	"fjacquet/finanai/internal/dateutils"
	"fjacquet/finanai/internal/models"
)

// Transaction types accepted by --type.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

var (
	txType      string
	amount      string
	category    string
	necessity   string
	goal        string
	description string
	date        string
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Add an income or expense",
	Long: `Add an income or expense transaction. The amount is entered as a positive
magnitude; expenses are stored as negative amounts. An expense can be marked
as a contribution to an active savings goal with --goal.`,
	RunE: addFunc,
}

func init() {
	Cmd.Flags().StringVar(&txType, "type", TypeExpense, "Transaction type: income or expense")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Transaction amount")
	Cmd.Flags().StringVar(&category, "category", "", "Category (food, bills, salary, ...)")
	Cmd.Flags().StringVarP(&necessity, "necessity", "n", "", "Necessity of an expense: high, medium or low")
	Cmd.Flags().StringVarP(&goal, "goal", "g", "", "ID of the active goal this expense contributes to")
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	Cmd.Flags().StringVar(&date, "date", "", "Transaction date (default: now)")
	_ = Cmd.MarkFlagRequired("amount")
	_ = Cmd.MarkFlagRequired("category")
}

func addFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	tx, err := buildTransaction()
	if err != nil {
		return err
	}

	saved, err := c.GetDashboard().AddTransaction(root.Context(cmd), tx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Transacción %s registrada: %s\n", saved.ID, currencyutils.FormatAmount(saved.Amount))
	return nil
}

func buildTransaction() (models.Transaction, error) {
	value, err := currencyutils.ParseAmount(amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount: %w", err)
	}
	value = value.Abs()

	switch strings.ToLower(strings.TrimSpace(txType)) {
	case TypeIncome:
	case TypeExpense:
		value = value.Neg()
	default:
		return models.Transaction{}, fmt.Errorf("invalid type '%s' (must be income or expense)", txType)
	}

	cat, err := models.ParseCategory(category)
	if err != nil {
		return models.Transaction{}, err
	}
	nec, err := models.ParseNecessity(necessity)
	if err != nil {
		return models.Transaction{}, err
	}

	var when time.Time
	if date != "" {
		when, err = dateutils.ParseDate(date)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("invalid date: %w", err)
		}
	}

	return models.Transaction{
		Amount:           value,
		Description:      description,
		Category:         cat,
		Necessity:        nec,
		GoalContribution: strings.TrimSpace(goal),
		Date:             when,
	}, nil
}
