// Package banks handles the bank registry inspection command
package banks

import (
	"fmt"
	"strings"

	"pennywise/sms-ledger/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the banks command
var Cmd = &cobra.Command{
	Use:   "banks",
	Short: "List the banks the extractor knows about",
	Long: `List every registered bank with its sender ids. User-defined banks
from the bank definitions file are included alongside the built-ins.`,
	Run: banksFunc,
}

func banksFunc(cmd *cobra.Command, args []string) {
	c, err := root.GetContainer()
	if err != nil {
		root.Log.Fatalf("Error initializing application: %v", err)
	}

	registry := c.GetRegistry()
	for _, entry := range registry.AllBanks() {
		fmt.Printf("%-14s %-28s %s\n",
			entry.Config.BankName,
			entry.Config.DisplayName,
			strings.Join(entry.Config.SenderIDs, ", "))
	}
	fmt.Printf("\n%d banks, %d sender ids\n", registry.Count(), registry.SenderCount())
}
