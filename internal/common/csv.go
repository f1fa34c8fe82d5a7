// Package common provides shared CSV helpers used by the export command
// and the message sources.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Delimiter is the CSV output delimiter, configurable via CSV_DELIMITER.
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		// Use first rune only
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// exportRow is the CSV layout of one exported transaction. Dates go out
// as ISO 8601 rather than raw epoch millis.
type exportRow struct {
	SmsID           string          `csv:"SmsId"`
	Date            string          `csv:"Date"`
	Type            string          `csv:"Type"`
	Amount          decimal.Decimal `csv:"Amount"`
	Merchant        string          `csv:"Merchant"`
	AccountNumber   string          `csv:"AccountNumber"`
	ReferenceNumber string          `csv:"ReferenceNumber"`
	BalanceAfter    string          `csv:"BalanceAfter"`
	Sender          string          `csv:"Sender"`
}

// WriteTransactionsToCSV writes the transaction history to a CSV file.
func WriteTransactionsToCSV(transactions []models.ParsedTransaction, csvFile string, logger logging.Logger) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Warn("Failed to close file",
				logging.Field{Key: logging.FieldFile, Value: csvFile},
				logging.Field{Key: logging.FieldError, Value: err.Error()})
		}
	}()

	rows := make([]exportRow, 0, len(transactions))
	for _, t := range transactions {
		row := exportRow{
			SmsID:           t.SmsID,
			Date:            t.Time().Format(time.RFC3339),
			Type:            t.Type,
			Amount:          t.Amount.Round(2),
			Merchant:        t.Merchant,
			AccountNumber:   t.AccountNumber,
			ReferenceNumber: t.ReferenceNumber,
			Sender:          t.SenderAddress,
		}
		if t.HasBalance {
			row.BalanceAfter = t.BalanceAfter.StringFixed(2)
		}
		rows = append(rows, row)
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	logger.Info("Wrote transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}
