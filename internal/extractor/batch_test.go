package extractor

import (
	"context"
	"fmt"
	"testing"

	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debitMessage(id string, amount int) models.RawMessage {
	return models.RawMessage{
		ID:            id,
		SenderAddress: "VM-HDFCBK",
		Body:          fmt.Sprintf("Rs.%d.00 debited from A/c XX1234 on 04-03-23 to VPA merchant@upi. UPI Ref 12345%s.", amount, id),
		Timestamp:     1677900000000,
	}
}

func TestProcessMessagesPreservesOrder(t *testing.T) {
	batch := NewBatchExtractor(testRegistry(t), logging.NewMockLogger())

	msgs := []models.RawMessage{
		debitMessage("sms-1", 100),
		{ID: "sms-2", SenderAddress: "VM-HDFCBK", Body: "Your OTP is 482913. Do not share it.", Timestamp: 1677900000000},
		debitMessage("sms-3", 300),
		debitMessage("sms-4", 400),
	}

	transactions, failures := batch.ProcessMessages(context.Background(), msgs)

	require.Len(t, transactions, 3)
	require.Len(t, failures, 1)
	assert.Equal(t, "sms-1", transactions[0].SmsID)
	assert.Equal(t, "sms-3", transactions[1].SmsID)
	assert.Equal(t, "sms-4", transactions[2].SmsID)
	assert.Equal(t, "sms-2", failures[0].SmsID)
}

func TestProcessMessagesLargeBatch(t *testing.T) {
	batch := NewBatchExtractor(testRegistry(t), logging.NewMockLogger())

	msgs := make([]models.RawMessage, 0, 250)
	for i := 0; i < 250; i++ {
		msgs = append(msgs, debitMessage(fmt.Sprintf("sms-%04d", i), 100+i))
	}

	transactions, failures := batch.ProcessMessages(context.Background(), msgs)

	require.Empty(t, failures)
	require.Len(t, transactions, 250)
	for i, txn := range transactions {
		assert.Equal(t, fmt.Sprintf("sms-%04d", i), txn.SmsID)
		assert.Equal(t, fmt.Sprintf("%d.00", 100+i), txn.Amount.StringFixed(2))
	}
}

func TestProcessMessagesCancelledContext(t *testing.T) {
	batch := NewBatchExtractor(testRegistry(t), logging.NewMockLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transactions, failures := batch.ProcessMessages(ctx, []models.RawMessage{
		debitMessage("sms-1", 100),
		debitMessage("sms-2", 200),
	})

	assert.Empty(t, transactions)
	assert.Empty(t, failures)
}
