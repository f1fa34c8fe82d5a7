// Package review handles commands for reviewing detected recurring patterns
package review

import (
	"fmt"

	"pennywise/sms-ledger/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the review command
var Cmd = &cobra.Command{
	Use:   "review",
	Short: "Review detected recurring patterns",
	Long: `List, confirm or dismiss detected recurring patterns. Confirmed and
dismissed patterns keep their status when detection reruns.`,
	Run: listFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring patterns",
	Run:   listFunc,
}

var confirmCmd = &cobra.Command{
	Use:   "confirm <pattern-id>",
	Short: "Mark a recurring pattern as confirmed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setStatus(args[0], true, false)
	},
}

var dismissCmd = &cobra.Command{
	Use:   "dismiss <pattern-id>",
	Short: "Mark a recurring pattern as dismissed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setStatus(args[0], false, true)
	},
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(confirmCmd)
	Cmd.AddCommand(dismissCmd)
}

func listFunc(cmd *cobra.Command, args []string) {
	c, err := root.GetContainer()
	if err != nil {
		root.Log.Fatalf("Error initializing application: %v", err)
	}

	patterns := c.GetStore().GetRecurring()
	if len(patterns) == 0 {
		fmt.Println("No recurring patterns detected yet. Run 'sms-ledger detect' first.")
		return
	}

	for _, p := range patterns {
		status := "pending"
		if p.Confirmed {
			status = "confirmed"
		} else if p.Dismissed {
			status = "dismissed"
		}
		fmt.Printf("%s  %-12s %-24s %10s  every %.1f days (%s)  [%s]\n",
			p.ID, p.Type, p.Merchant, p.ExpectedAmount.StringFixed(2),
			p.IntervalDays, p.Frequency, status)
	}
}

func setStatus(id string, confirmed, dismissed bool) {
	c, err := root.GetContainer()
	if err != nil {
		root.Log.Fatalf("Error initializing application: %v", err)
	}
	if err := c.GetStore().SetRecurringStatus(id, confirmed, dismissed); err != nil {
		root.Log.Fatalf("Error updating pattern: %v", err)
	}
	if confirmed {
		root.Log.Infof("Pattern %s confirmed", id)
	} else {
		root.Log.Infof("Pattern %s dismissed", id)
	}
}
