// Package msgsource reads raw SMS messages from the supported input
// formats: a CSV export and the SMS Backup & Restore XML format.
package msgsource

import (
	"fmt"
	"os"

	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"
	"pennywise/sms-ledger/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// ReadCSV loads messages from a CSV export with Id, Sender, Body and
// Timestamp columns. Messages with an empty body are skipped.
func ReadCSV(path string, logger logging.Logger) ([]models.RawMessage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open messages file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Warn("Failed to close messages file",
				logging.Field{Key: logging.FieldFile, Value: path},
				logging.Field{Key: logging.FieldError, Value: err.Error()})
		}
	}()

	var rows []*models.RawMessage
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, &parsererror.InvalidSourceError{
			FilePath:       path,
			ExpectedFormat: "CSV with Id, Sender, Body and Timestamp columns",
			Msg:            err.Error(),
		}
	}

	messages := make([]models.RawMessage, 0, len(rows))
	for _, row := range rows {
		if row.Body == "" {
			continue
		}
		messages = append(messages, *row)
	}

	logger.Info("Loaded messages from CSV",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(messages)})
	return messages, nil
}
