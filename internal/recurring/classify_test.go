package recurring

import (
	"testing"

	"pennywise/sms-ledger/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestKeywordClassifier(t *testing.T) {
	classifier := NewKeywordClassifier()

	tests := []struct {
		merchant string
		want     string
	}{
		{"netflix com", models.RecurringSubscription},
		{"SPOTIFY AB", models.RecurringSubscription},
		{"hotstar renewal", models.RecurringSubscription},
		{"bajaj fin ltd", models.RecurringEMI},
		{"home loan instalment", models.RecurringEMI},
		{"acme corp salary", models.RecurringSalary},
		{"nobroker pay", models.RecurringRent},
		{"airtel postpaid", models.RecurringUtility},
		{"bescom", models.RecurringUtility},
		{"local kirana store", models.RecurringOther},
		{"", models.RecurringOther},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, classifier.Classify(tc.merchant), "merchant %q", tc.merchant)
	}
}

func TestKeywordClassifierPriorityOrder(t *testing.T) {
	classifier := NewKeywordClassifier()

	// Salary outranks utility when both tables match.
	assert.Equal(t, models.RecurringSalary, classifier.Classify("tata power salary credit"))
}

func TestFrequencyBucket(t *testing.T) {
	tests := []struct {
		interval float64
		want     string
	}{
		{1.0, models.FrequencyDaily},
		{1.5, models.FrequencyDaily},
		{7.0, models.FrequencyWeekly},
		{8.0, models.FrequencyWeekly},
		{30.0, models.FrequencyMonthly},
		{27.0, models.FrequencyMonthly},
		{33.0, models.FrequencyMonthly},
		{90.0, models.FrequencyQuarterly},
		{365.0, models.FrequencyYearly},
		{4.0, models.FrequencyIrregular},
		{15.0, models.FrequencyIrregular},
		{45.0, models.FrequencyIrregular},
		{200.0, models.FrequencyIrregular},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, FrequencyBucket(tc.interval), "interval %.1f", tc.interval)
	}
}
