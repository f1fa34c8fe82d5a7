package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTransactionsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export", "transactions.csv")

	txns := []models.ParsedTransaction{
		{
			SmsID:           "sms-1",
			Amount:          decimal.RequireFromString("450.00"),
			Type:            models.TxnTypeDebit,
			Merchant:        "swiggy@icici",
			AccountNumber:   "XX1234",
			ReferenceNumber: "123456789012",
			Date:            1677891600000,
			SenderAddress:   "VM-HDFCBK",
			BalanceAfter:    decimal.RequireFromString("12549.50"),
			HasBalance:      true,
		},
		{
			SmsID:         "sms-2",
			Amount:        decimal.RequireFromString("5000.00"),
			Type:          models.TxnTypeCredit,
			Date:          1677978000000,
			SenderAddress: "AD-ICICIB",
		},
	}

	require.NoError(t, WriteTransactionsToCSV(txns, path, logging.NewMockLogger()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "SmsId,Date,Type,Amount,Merchant,AccountNumber,ReferenceNumber,BalanceAfter,Sender", lines[0])
	assert.Contains(t, lines[1], "sms-1")
	assert.Contains(t, lines[1], "450")
	assert.Contains(t, lines[1], "12549.50")
	assert.Contains(t, lines[2], "CREDIT")
}

func TestWriteTransactionsToCSVEmptySlice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	require.NoError(t, WriteTransactionsToCSV([]models.ParsedTransaction{}, path, logging.NewMockLogger()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SmsId")
}

func TestWriteTransactionsToCSVNil(t *testing.T) {
	err := WriteTransactionsToCSV(nil, filepath.Join(t.TempDir(), "out.csv"), logging.NewMockLogger())
	assert.ErrorContains(t, err, "nil transactions")
}

func TestSetDelimiter(t *testing.T) {
	original := Delimiter
	defer SetDelimiter(original)

	SetDelimiter(';')
	assert.Equal(t, ';', Delimiter)
}
