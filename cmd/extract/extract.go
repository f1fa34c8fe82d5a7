// Package extract handles the message extraction command
package extract

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pennywise/sms-ledger/cmd/root"
	"pennywise/sms-ledger/internal/fileutils"
	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"
	"pennywise/sms-ledger/internal/msgsource"
	"pennywise/sms-ledger/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract transactions from an SMS export",
	Long: `Extract transactions from an SMS export. Supports a CSV export with
Id, Sender, Body and Timestamp columns, the SMS Backup & Restore XML
format, or a directory holding any mix of the two. Messages already
processed are skipped, so re-running over the same export is safe.`,
	Run: extractFunc,
}

func extractFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file is required")
	}
	if err := validation.IsValidPath(root.SharedFlags.Input); err != nil {
		root.Log.Fatalf("Invalid input: %v", err)
	}
	if err := validation.IsValidInputFormat(root.SharedFlags.Format); err != nil {
		root.Log.Fatalf("Invalid format: %v", err)
	}

	c, err := root.GetContainer()
	if err != nil {
		root.Log.Fatalf("Error initializing application: %v", err)
	}
	logger := c.GetLogger()

	var messages []models.RawMessage
	if fileutils.DirectoryExists(root.SharedFlags.Input) {
		messages, err = msgsource.ReadDirectory(root.SharedFlags.Input, logger)
	} else {
		switch root.SharedFlags.Format {
		case "csv":
			messages, err = msgsource.ReadCSV(root.SharedFlags.Input, logger)
		case "xml":
			messages, err = msgsource.ReadXMLBackup(root.SharedFlags.Input, logger)
		default:
			root.Log.Fatalf("Unknown input format: %s (must be 'csv' or 'xml')", root.SharedFlags.Format)
		}
	}
	if err != nil {
		root.Log.Fatalf("Error reading messages: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := c.GetPipeline().Run(ctx, messages)
	if err != nil {
		root.Log.Fatalf("Extraction failed: %v", err)
	}

	logger.Info("Extraction completed",
		logging.Field{Key: "received", Value: result.Received},
		logging.Field{Key: "bank_messages", Value: result.Classified},
		logging.Field{Key: "extracted", Value: result.Extracted},
		logging.Field{Key: "failed", Value: result.Failed},
		logging.Field{Key: "duplicates", Value: result.Duplicates},
		logging.Field{Key: "saved", Value: result.Saved})
}
