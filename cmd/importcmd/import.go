// Package importcmd imports bank statements into the store.
package importcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/finanai/cmd/root"
	"fjacquet/finanai/internal/logging"
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import [statement.xml...]",
	Short: "Import CAMT.053 bank statements",
	Long: `Import one or more ISO 20022 CAMT.053 statements. Entries are categorized
with the keyword rules and entries already stored (same ID) are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: importFunc,
}

func importFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	total := 0
	for _, path := range args {
		transactions, err := c.GetImporter().Import(path)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}
		added, err := c.GetDashboard().Import(root.Context(cmd), transactions)
		if err != nil {
			return err
		}
		c.GetLogger().Info("Statement imported",
			logging.Field{Key: logging.FieldFile, Value: path},
			logging.Field{Key: logging.FieldCount, Value: added})
		total += added
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d transacciones importadas\n", total)
	return nil
}
