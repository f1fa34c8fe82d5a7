package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringTransaction is one detected recurring spending pattern: a cluster
// of historically similar debits inferred to repeat on a regular interval.
// Confirmed and Dismissed are set by the user and must survive re-detection.
type RecurringTransaction struct {
	ID                string          `yaml:"id"`
	Type              string          `yaml:"type"` // SUBSCRIPTION, EMI, SALARY, RENT, UTILITY, OTHER
	Merchant          string          `yaml:"merchant"`
	ExpectedAmount    decimal.Decimal `yaml:"expected_amount"`
	AmountTolerance   decimal.Decimal `yaml:"amount_tolerance"`
	IntervalDays      float64         `yaml:"interval_days"`
	IntervalTolerance float64         `yaml:"interval_tolerance"`
	Frequency         string          `yaml:"frequency"`
	LastSeenDate      int64           `yaml:"last_seen_date"` // epoch millis
	MemberSmsIDs      []string        `yaml:"member_sms_ids"`
	Confirmed         bool            `yaml:"confirmed"`
	Dismissed         bool            `yaml:"dismissed"`
}

// NewRecurringTransaction creates a RecurringTransaction with a generated id.
func NewRecurringTransaction(recurringType, merchant string) RecurringTransaction {
	return RecurringTransaction{
		ID:       uuid.New().String(),
		Type:     recurringType,
		Merchant: merchant,
	}
}
