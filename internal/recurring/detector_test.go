package recurring

import (
	"context"
	"testing"
	"time"

	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debit(smsID, merchant, amount string, day time.Time) models.ParsedTransaction {
	return models.ParsedTransaction{
		SmsID:         smsID,
		Amount:        decimal.RequireFromString(amount),
		Type:          models.TxnTypeDebit,
		Merchant:      merchant,
		Date:          day.UnixMilli(),
		SenderAddress: "VM-HDFCBK",
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func TestDetectMonthlySubscription(t *testing.T) {
	detector := NewDetector(DefaultOptions(), nil, logging.NewMockLogger())

	txns := []models.ParsedTransaction{
		debit("sms-1", "NETFLIX.COM", "499.00", day(2023, time.January, 5)),
		debit("sms-2", "NETFLIX.COM", "499.00", day(2023, time.February, 5)),
		debit("sms-3", "NETFLIX.COM", "504.00", day(2023, time.March, 6)),
		debit("sms-4", "NETFLIX.COM", "499.00", day(2023, time.April, 5)),
	}

	patterns, err := detector.Detect(context.Background(), txns)
	require.NoError(t, err)
	require.Len(t, patterns, 1)

	p := patterns[0]
	assert.Equal(t, models.RecurringSubscription, p.Type)
	assert.Equal(t, "netflix com", p.Merchant)
	assert.Equal(t, "499.00", p.ExpectedAmount.StringFixed(2))
	assert.Equal(t, models.FrequencyMonthly, p.Frequency)
	assert.Equal(t, []string{"sms-1", "sms-2", "sms-3", "sms-4"}, p.MemberSmsIDs)
	assert.Equal(t, day(2023, time.April, 5).UnixMilli(), p.LastSeenDate)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.Confirmed)
	assert.False(t, p.Dismissed)
}

func TestDetectTooFewOccurrences(t *testing.T) {
	detector := NewDetector(DefaultOptions(), nil, logging.NewMockLogger())

	txns := []models.ParsedTransaction{
		debit("sms-1", "SPOTIFY", "119.00", day(2023, time.January, 1)),
		debit("sms-2", "SPOTIFY", "119.00", day(2023, time.February, 1)),
	}

	patterns, err := detector.Detect(context.Background(), txns)
	require.NoError(t, err)
	assert.Empty(t, patterns)
}

func TestDetectIrregularIntervalsRejected(t *testing.T) {
	detector := NewDetector(DefaultOptions(), nil, logging.NewMockLogger())

	// Same merchant and amount, but gaps of 3, 40 and 9 days.
	txns := []models.ParsedTransaction{
		debit("sms-1", "SWIGGY", "450.00", day(2023, time.January, 1)),
		debit("sms-2", "SWIGGY", "450.00", day(2023, time.January, 4)),
		debit("sms-3", "SWIGGY", "450.00", day(2023, time.February, 13)),
		debit("sms-4", "SWIGGY", "450.00", day(2023, time.February, 22)),
	}

	patterns, err := detector.Detect(context.Background(), txns)
	require.NoError(t, err)
	assert.Empty(t, patterns)
}

func TestDetectAmountDriftSplitsClusters(t *testing.T) {
	detector := NewDetector(DefaultOptions(), nil, logging.NewMockLogger())

	// A 649 charge is more than 5% away from 499, so it cannot join the
	// cluster, leaving each cluster below the occurrence floor.
	txns := []models.ParsedTransaction{
		debit("sms-1", "HOTSTAR", "499.00", day(2023, time.January, 10)),
		debit("sms-2", "HOTSTAR", "649.00", day(2023, time.February, 10)),
		debit("sms-3", "HOTSTAR", "499.00", day(2023, time.March, 10)),
	}

	patterns, err := detector.Detect(context.Background(), txns)
	require.NoError(t, err)
	assert.Empty(t, patterns)
}

func TestDetectIgnoresCredits(t *testing.T) {
	detector := NewDetector(DefaultOptions(), nil, logging.NewMockLogger())

	txns := []models.ParsedTransaction{
		debit("sms-1", "NETFLIX.COM", "499.00", day(2023, time.January, 5)),
		debit("sms-2", "NETFLIX.COM", "499.00", day(2023, time.February, 5)),
	}
	refund := debit("sms-3", "NETFLIX.COM", "499.00", day(2023, time.March, 5))
	refund.Type = models.TxnTypeCredit
	txns = append(txns, refund)

	patterns, err := detector.Detect(context.Background(), txns)
	require.NoError(t, err)
	assert.Empty(t, patterns)
}

func TestDetectEMIByKeyword(t *testing.T) {
	detector := NewDetector(DefaultOptions(), nil, logging.NewMockLogger())

	txns := []models.ParsedTransaction{
		debit("sms-1", "BAJAJ FINSERV EMI", "4500.00", day(2023, time.January, 2)),
		debit("sms-2", "BAJAJ FINSERV EMI", "4500.00", day(2023, time.February, 2)),
		debit("sms-3", "BAJAJ FINSERV EMI", "4500.00", day(2023, time.March, 2)),
	}

	patterns, err := detector.Detect(context.Background(), txns)
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, models.RecurringEMI, patterns[0].Type)
}

func TestDetectFallsBackToSenderWhenNoMerchant(t *testing.T) {
	detector := NewDetector(DefaultOptions(), nil, logging.NewMockLogger())

	var txns []models.ParsedTransaction
	for i, d := range []time.Time{
		day(2023, time.January, 1), day(2023, time.February, 1), day(2023, time.March, 1),
	} {
		txn := debit("sms-"+string(rune('a'+i)), "", "999.00", d)
		txns = append(txns, txn)
	}

	patterns, err := detector.Detect(context.Background(), txns)
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, "vm hdfcbk", patterns[0].Merchant)
}

func TestDetectCancelledContext(t *testing.T) {
	detector := NewDetector(DefaultOptions(), nil, logging.NewMockLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	txns := []models.ParsedTransaction{
		debit("sms-1", "NETFLIX.COM", "499.00", day(2023, time.January, 5)),
		debit("sms-2", "NETFLIX.COM", "499.00", day(2023, time.February, 5)),
		debit("sms-3", "NETFLIX.COM", "499.00", day(2023, time.March, 5)),
	}

	_, err := detector.Detect(ctx, txns)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetectOrderedByMerchant(t *testing.T) {
	detector := NewDetector(DefaultOptions(), nil, logging.NewMockLogger())

	var txns []models.ParsedTransaction
	for i, merchant := range []string{"ZEE5", "AIRTEL", "NETFLIX.COM"} {
		for m := 0; m < 3; m++ {
			txns = append(txns, debit(
				string(rune('a'+i))+string(rune('0'+m)),
				merchant, "299.00", day(2023, time.Month(m+1), 7)))
		}
	}

	patterns, err := detector.Detect(context.Background(), txns)
	require.NoError(t, err)
	require.Len(t, patterns, 3)
	assert.Equal(t, "airtel", patterns[0].Merchant)
	assert.Equal(t, "netflix com", patterns[1].Merchant)
	assert.Equal(t, "zee5", patterns[2].Merchant)
}
