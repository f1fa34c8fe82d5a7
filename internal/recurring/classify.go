package recurring

import (
	"strings"

	"pennywise/sms-ledger/internal/models"
)

// TypeClassifier assigns a recurring-transaction type to a merchant name.
type TypeClassifier interface {
	Classify(merchant string) string
}

// KeywordClassifier matches the normalized merchant name against keyword
// tables, checked in a fixed priority order.
type KeywordClassifier struct {
	tables []keywordTable
}

type keywordTable struct {
	txnType  string
	keywords []string
}

// NewKeywordClassifier builds the classifier with the built-in tables.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		tables: []keywordTable{
			{txnType: models.RecurringSalary, keywords: []string{
				"salary", "payroll", "wages", "stipend",
			}},
			{txnType: models.RecurringEMI, keywords: []string{
				"emi", "loan", "instalment", "installment",
				"bajaj fin", "home credit", "hdb financial",
			}},
			{txnType: models.RecurringRent, keywords: []string{
				"rent", "lease", "nobroker", "nestaway",
			}},
			{txnType: models.RecurringSubscription, keywords: []string{
				"netflix", "spotify", "prime", "hotstar", "youtube",
				"zee5", "sonyliv", "sony liv", "apple", "gaana",
				"audible", "subscription", "membership", "renewal",
			}},
			{txnType: models.RecurringUtility, keywords: []string{
				"electricity", "power", "water", "gas", "broadband",
				"airtel", "jio", "vodafone", "bsnl", "dth",
				"tata sky", "tatasky", "recharge", "bill pay",
				"bescom", "mseb", "postpaid",
			}},
		},
	}
}

// Classify returns the recurring type for a merchant, OTHER when no
// keyword table matches.
func (c *KeywordClassifier) Classify(merchant string) string {
	name := strings.ToLower(merchant)
	for _, table := range c.tables {
		for _, keyword := range table.keywords {
			if strings.Contains(name, keyword) {
				return table.txnType
			}
		}
	}
	return models.RecurringOther
}

// FrequencyBucket maps a median interval in days to a named frequency.
func FrequencyBucket(intervalDays float64) string {
	switch {
	case intervalDays <= 1.5:
		return models.FrequencyDaily
	case intervalDays >= 6 && intervalDays <= 8:
		return models.FrequencyWeekly
	case intervalDays >= 27 && intervalDays <= 33:
		return models.FrequencyMonthly
	case intervalDays >= 85 && intervalDays <= 95:
		return models.FrequencyQuarterly
	case intervalDays >= 350 && intervalDays <= 380:
		return models.FrequencyYearly
	default:
		return models.FrequencyIrregular
	}
}
