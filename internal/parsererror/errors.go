// Package parsererror defines the failure taxonomy for SMS extraction.
// Extraction never panics and never aborts a batch: failures are returned
// as values carrying a machine-readable reason so callers can surface
// unparsed messages to the user for pattern reporting.
package parsererror

import "fmt"

// FailureReason identifies why a message could not be turned into a transaction.
type FailureReason string

const (
	// ReasonNoAmount means no currency-prefixed amount token was found.
	ReasonNoAmount FailureReason = "no-amount"
	// ReasonNoType means neither debit nor credit verbs matched, or both tied.
	ReasonNoType FailureReason = "no-type"
	// ReasonMalformedDate means a date token was present but unparseable.
	ReasonMalformedDate FailureReason = "malformed-date"
	// ReasonNotBankMessage means the classifier rejected the message outright.
	ReasonNotBankMessage FailureReason = "not-bank-message"
)

// ExtractionFailure reports that a single message could not be parsed.
// It carries enough context to reproduce and report the failure.
type ExtractionFailure struct {
	SmsID     string
	Sender    string
	Reason    FailureReason
	RawSms    string
	Timestamp int64 // epoch millis, receipt time of the failed message
	Err       error
}

func (e *ExtractionFailure) Error() string {
	return fmt.Sprintf("extraction failed for sms %s from %s: %s", e.SmsID, e.Sender, e.Reason)
}

func (e *ExtractionFailure) Unwrap() error {
	return e.Err
}

// ParseError represents a lower-level error while applying one pattern
// to one field of a message.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s='%s': %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidSourceError represents a message-source file that does not conform
// to the expected format (CSV export or SMS backup XML).
type InvalidSourceError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}
