package extractor

import (
	"testing"

	"pennywise/sms-ledger/internal/bankregistry"
	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"
	"pennywise/sms-ledger/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *bankregistry.Registry {
	t.Helper()
	return bankregistry.NewBuiltin(logging.NewMockLogger())
}

func extract(t *testing.T, registry *bankregistry.Registry, sender, body string) (*models.ParsedTransaction, *parsererror.ExtractionFailure) {
	t.Helper()
	e := New(logging.NewMockLogger())
	entry, _ := registry.FindBySender(sender)
	return e.Extract(models.RawMessage{
		ID:            "sms-1",
		SenderAddress: sender,
		Body:          body,
		Timestamp:     1677900000000,
	}, entry)
}

func TestExtractUPIDebit(t *testing.T) {
	registry := testRegistry(t)
	txn, failure := extract(t, registry, "VM-HDFCBK",
		"Rs.450.00 debited from A/c XX1234 on 04-03-23 to VPA swiggy@icici. UPI Ref 123456789012. Not you? Call 18002586161.")

	require.Nil(t, failure)
	require.NotNil(t, txn)
	assert.Equal(t, "450.00", txn.Amount.StringFixed(2))
	assert.Equal(t, models.TxnTypeDebit, txn.Type)
	assert.Equal(t, "swiggy@icici", txn.Merchant)
	assert.Equal(t, "XX1234", txn.AccountNumber)
	assert.Equal(t, "123456789012", txn.ReferenceNumber)
	assert.Equal(t, "2023-03-04", txn.Time().Format("2006-01-02"))
	assert.Equal(t, int64(1677900000000), txn.MessageTimestamp, "receipt time survives the body-date overwrite")
	assert.Equal(t, "sms-1", txn.SmsID)
}

func TestExtractCardSpendWithBankOverride(t *testing.T) {
	registry := testRegistry(t)
	txn, failure := extract(t, registry, "VM-HDFCBK",
		"You've spent Rs.1250.50 On HDFC Bank CREDIT Card xx5678 At BIG BAZAAR On 05-03-23 Avl Bal Rs.48749.50")

	require.Nil(t, failure)
	require.NotNil(t, txn)
	assert.Equal(t, "1250.50", txn.Amount.StringFixed(2))
	assert.Equal(t, models.TxnTypeDebit, txn.Type)
	assert.Equal(t, "BIG BAZAAR", txn.Merchant)
	assert.Equal(t, "xx5678", txn.AccountNumber)
	assert.True(t, txn.HasBalance)
	assert.Equal(t, "48749.50", txn.BalanceAfter.StringFixed(2))
}

func TestExtractCredit(t *testing.T) {
	registry := testRegistry(t)
	txn, failure := extract(t, registry, "VM-ICICIB",
		"Dear Customer, Acct XX500 is credited with Rs 5000.00 on 04-Mar-23 from neha@ybl. UPI Ref no 305812345678.")

	require.Nil(t, failure)
	require.NotNil(t, txn)
	assert.Equal(t, models.TxnTypeCredit, txn.Type)
	assert.Equal(t, "5000.00", txn.Amount.StringFixed(2))
	assert.Equal(t, "XX500", txn.AccountNumber)
	assert.Equal(t, "305812345678", txn.ReferenceNumber)
}

func TestExtractBothVerbsResolvesByProximity(t *testing.T) {
	registry := testRegistry(t)
	// Outgoing UPI alerts from some banks mention the credited
	// counterparty in the same sentence.
	txn, failure := extract(t, registry, "VM-FEDBNK",
		"Rs 2000.00 debited from your A/c XX1043 and VPA john@okicici credited. Ref No 305812345679.")

	require.Nil(t, failure)
	require.NotNil(t, txn)
	assert.Equal(t, models.TxnTypeDebit, txn.Type)
	assert.Equal(t, "john@okicici", txn.Merchant)
}

func TestExtractUnknownSenderUsesGenericLibrary(t *testing.T) {
	txn, failure := extract(t, testRegistry(t), "VM-SMLBNK",
		"INR 750 debited from A/c XX4321 at BOOKMYSHOW on 06-03-2023.")

	require.Nil(t, failure)
	require.NotNil(t, txn)
	assert.Equal(t, "750.00", txn.Amount.StringFixed(2))
	assert.Equal(t, models.TxnTypeDebit, txn.Type)
	assert.Equal(t, "BOOKMYSHOW", txn.Merchant)
}

func TestExtractMerchantStopsBeforePaymentRail(t *testing.T) {
	txn, failure := extract(t, testRegistry(t), "VM-SMLBNK",
		"Rs.249.00 paid to Zomato via UPI. Ref No 305812345680.")

	require.Nil(t, failure)
	require.NotNil(t, txn)
	assert.Equal(t, "Zomato", txn.Merchant, "the rail after via is not part of the merchant")
}

func TestExtractNoAmountFails(t *testing.T) {
	txn, failure := extract(t, testRegistry(t), "VM-HDFCBK",
		"Your account statement for Feb 2023 is ready.")

	assert.Nil(t, txn)
	require.NotNil(t, failure)
	assert.Equal(t, parsererror.ReasonNoAmount, failure.Reason)
	assert.Equal(t, "sms-1", failure.SmsID)
}

func TestExtractNoTypeFails(t *testing.T) {
	txn, failure := extract(t, testRegistry(t), "VM-SMLBNK",
		"Rs.100.00 towards monthly maintenance for A/c XX1234.")

	assert.Nil(t, txn)
	require.NotNil(t, failure)
	assert.Equal(t, parsererror.ReasonNoType, failure.Reason)
}

func TestExtractMalformedDateFails(t *testing.T) {
	txn, failure := extract(t, testRegistry(t), "VM-HDFCBK",
		"Rs.100.00 debited from A/c XX1234 on 99-99-2023.")

	assert.Nil(t, txn)
	require.NotNil(t, failure)
	assert.Equal(t, parsererror.ReasonMalformedDate, failure.Reason)
}

func TestExtractFallsBackToMessageTimestamp(t *testing.T) {
	txn, failure := extract(t, testRegistry(t), "VM-HDFCBK",
		"Rs.99.00 debited from A/c XX1234 for UPI mandate.")

	require.Nil(t, failure)
	require.NotNil(t, txn)
	assert.Equal(t, int64(1677900000000), txn.Date)
}

func TestExtractIsDeterministic(t *testing.T) {
	registry := testRegistry(t)
	body := "Rs.450.00 debited from A/c XX1234 on 04-03-23 to VPA swiggy@icici. UPI Ref 123456789012."

	first, failure := extract(t, registry, "VM-HDFCBK", body)
	require.Nil(t, failure)
	for i := 0; i < 10; i++ {
		next, failure := extract(t, registry, "VM-HDFCBK", body)
		require.Nil(t, failure)
		assert.Equal(t, first, next)
	}
}
