// Package export handles the transaction CSV export command
package export

import (
	"pennywise/sms-ledger/cmd/root"
	"pennywise/sms-ledger/internal/common"

	"github.com/spf13/cobra"
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the transaction history to CSV",
	Long:  `Export all persisted transactions to a CSV file for spreadsheets or further processing.`,
	Run:   exportFunc,
}

func exportFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Output == "" {
		root.Log.Fatal("Output file is required")
	}

	c, err := root.GetContainer()
	if err != nil {
		root.Log.Fatalf("Error initializing application: %v", err)
	}

	transactions := c.GetStore().GetAllSnapshot()
	if err := common.WriteTransactionsToCSV(transactions, root.SharedFlags.Output, c.GetLogger()); err != nil {
		root.Log.Fatalf("Error exporting transactions: %v", err)
	}
	root.Log.Infof("Exported %d transactions to %s", len(transactions), root.SharedFlags.Output)
}
