package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParsedTransaction is one structured transaction extracted from a single SMS.
// SmsID doubles as the natural identity key for deduplication. The record is
// created once by the extractor and immutable afterwards; a later category
// override is applied outside this core.
type ParsedTransaction struct {
	SmsID            string          `csv:"SmsId" yaml:"sms_id"`
	Amount           decimal.Decimal `csv:"Amount" yaml:"amount"`
	Type             string          `csv:"Type" yaml:"type"` // DEBIT, CREDIT or UNKNOWN
	Merchant         string          `csv:"Merchant" yaml:"merchant,omitempty"`
	AccountNumber    string          `csv:"AccountNumber" yaml:"account_number,omitempty"`
	ReferenceNumber  string          `csv:"ReferenceNumber" yaml:"reference_number,omitempty"`
	Date             int64           `csv:"Date" yaml:"date"`                          // epoch millis; body date when the text carries one
	MessageTimestamp int64           `csv:"MessageTimestamp" yaml:"message_timestamp"` // epoch millis, device receipt time
	RawSms           string          `csv:"RawSms" yaml:"raw_sms"`
	SenderAddress    string          `csv:"Sender" yaml:"sender"`
	BalanceAfter     decimal.Decimal `csv:"BalanceAfter" yaml:"balance_after,omitempty"`
	HasBalance       bool            `csv:"HasBalance" yaml:"has_balance,omitempty"`
	Location         string          `csv:"Location" yaml:"location,omitempty"`
}

// Time returns the transaction date as a time.Time in UTC.
func (t *ParsedTransaction) Time() time.Time {
	return time.UnixMilli(t.Date).UTC()
}

// MessageTime returns the device receipt time of the source message in UTC.
// Records written before the field existed fall back to the transaction date.
func (t *ParsedTransaction) MessageTime() time.Time {
	if t.MessageTimestamp != 0 {
		return time.UnixMilli(t.MessageTimestamp).UTC()
	}
	return time.UnixMilli(t.Date).UTC()
}

// IsDebit returns true if the transaction moves money out.
func (t *ParsedTransaction) IsDebit() bool {
	return t.Type == TxnTypeDebit
}

// IsCredit returns true if the transaction moves money in.
func (t *ParsedTransaction) IsCredit() bool {
	return t.Type == TxnTypeCredit
}

// DisplayName returns the merchant if one was extracted, otherwise the
// sender address. The UI shows this as the counterparty.
func (t *ParsedTransaction) DisplayName() string {
	if t.Merchant != "" {
		return t.Merchant
	}
	return t.SenderAddress
}
