// Package detect handles the recurring-pattern detection command
package detect

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pennywise/sms-ledger/cmd/root"
	"pennywise/sms-ledger/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the detect command
var Cmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect recurring transactions",
	Long: `Re-scan the full transaction history for recurring payments such as
subscriptions, EMIs, salaries and rent. Confirmed and dismissed patterns
keep their status across runs.`,
	Run: detectFunc,
}

func detectFunc(cmd *cobra.Command, args []string) {
	c, err := root.GetContainer()
	if err != nil {
		root.Log.Fatalf("Error initializing application: %v", err)
	}
	logger := c.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	history := c.GetStore().GetAllSnapshot()
	patterns, err := c.GetDetector().Detect(ctx, history)
	if err != nil {
		root.Log.Fatalf("Detection failed: %v", err)
	}

	if err := c.GetStore().SaveRecurring(patterns); err != nil {
		root.Log.Fatalf("Error saving recurring patterns: %v", err)
	}

	logger.Info("Detection completed",
		logging.Field{Key: "transactions", Value: len(history)},
		logging.Field{Key: logging.FieldCount, Value: len(patterns)})
	for _, p := range patterns {
		logger.Info("Pattern",
			logging.Field{Key: logging.FieldMerchant, Value: p.Merchant},
			logging.Field{Key: logging.FieldType, Value: p.Type},
			logging.Field{Key: logging.FieldAmount, Value: p.ExpectedAmount.StringFixed(2)},
			logging.Field{Key: logging.FieldFrequency, Value: p.Frequency})
	}
}
