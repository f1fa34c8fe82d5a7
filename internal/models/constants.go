package models

// Transaction types
const (
	TxnTypeDebit   = "DEBIT"
	TxnTypeCredit  = "CREDIT"
	TxnTypeUnknown = "UNKNOWN"
)

// Recurring pattern types
const (
	RecurringSubscription = "SUBSCRIPTION"
	RecurringEMI          = "EMI"
	RecurringSalary       = "SALARY"
	RecurringRent         = "RENT"
	RecurringUtility      = "UTILITY"
	RecurringOther        = "OTHER"
)

// Frequency buckets, display only. The interval tolerance check works on
// raw day counts, never on these labels.
const (
	FrequencyDaily     = "DAILY"
	FrequencyWeekly    = "WEEKLY"
	FrequencyMonthly   = "MONTHLY"
	FrequencyQuarterly = "QUARTERLY"
	FrequencyYearly    = "YEARLY"
	FrequencyIrregular = "IRREGULAR"
)

// File permissions
const (
	PermissionDataFile  = 0644
	PermissionDirectory = 0755
)
