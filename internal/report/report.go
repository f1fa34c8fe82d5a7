// Package report writes the user-facing review file for messages the
// pipeline could not turn into transactions.
package report

import (
	"fmt"
	"os"
	"time"

	"pennywise/sms-ledger/internal/fileutils"
	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"
	"pennywise/sms-ledger/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// UnparsedEntry is one failed message in the review file.
type UnparsedEntry struct {
	SmsID     string `yaml:"sms_id"`
	Sender    string `yaml:"sender"`
	Reason    string `yaml:"reason"`
	RawSms    string `yaml:"raw_sms"`
	Timestamp string `yaml:"timestamp,omitempty"`
}

// unparsedDoc is the on-disk layout of the review file.
type unparsedDoc struct {
	GeneratedAt string          `yaml:"generated_at"`
	Count       int             `yaml:"count"`
	Unparsed    []UnparsedEntry `yaml:"unparsed"`
}

// Writer generates the unparsed-message review file.
type Writer struct {
	logger logging.Logger
}

// NewWriter creates a report writer.
func NewWriter(logger logging.Logger) *Writer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{logger: logger}
}

// WriteUnparsed writes the failures to path as YAML. An empty failure
// list removes any stale report so users never review resolved runs.
func (w *Writer) WriteUnparsed(path string, failures []*parsererror.ExtractionFailure) error {
	if len(failures) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("error removing stale report: %w", err)
		}
		return nil
	}

	doc := unparsedDoc{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Count:       len(failures),
		Unparsed:    make([]UnparsedEntry, 0, len(failures)),
	}
	for _, f := range failures {
		entry := UnparsedEntry{
			SmsID:  f.SmsID,
			Sender: f.Sender,
			Reason: string(f.Reason),
			RawSms: f.RawSms,
		}
		if f.Timestamp != 0 {
			entry.Timestamp = time.UnixMilli(f.Timestamp).UTC().Format(time.RFC3339)
		}
		doc.Unparsed = append(doc.Unparsed, entry)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling report: %w", err)
	}
	if err := fileutils.WriteFile(path, data, models.PermissionDataFile); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}

	w.logger.Info("Wrote unparsed-message report",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(failures)})
	return nil
}
