// Package extractor turns one classified SMS into a structured transaction
// candidate, applying the sender's bank patterns with per-field fallback to
// the generic library.
package extractor

import (
	"regexp"
	"strings"

	"pennywise/sms-ledger/internal/bankregistry"
	"pennywise/sms-ledger/internal/currencyutils"
	"pennywise/sms-ledger/internal/dateutils"
	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"
	"pennywise/sms-ledger/internal/parsererror"
	"pennywise/sms-ledger/internal/patterns"
	"pennywise/sms-ledger/internal/textutils"
)

// Extractor parses messages. It is stateless per message and safe for
// concurrent use once constructed.
type Extractor struct {
	logger logging.Logger
}

// New creates an Extractor.
func New(logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Extractor{logger: logger}
}

// Extract parses one message into a ParsedTransaction. entry may be nil
// (sender unknown to the registry); extraction then runs on the generic
// library alone. Exactly one of the return values is non-nil: extraction
// never panics and failures are values, not exceptions.
//
// Amount and type are required; every other field is best-effort and left
// empty when its patterns find nothing.
func (e *Extractor) Extract(msg models.RawMessage, entry *bankregistry.Entry) (*models.ParsedTransaction, *parsererror.ExtractionFailure) {
	lib := patterns.Generic()
	if entry != nil {
		lib = entry.Library()
	}
	body := msg.Body

	// Amount: first currency-prefixed numeric token, normalized to two
	// fractional digits.
	amountToken := firstMatch(lib.Amount, body)
	if amountToken == "" {
		return nil, e.failure(msg, parsererror.ReasonNoAmount, nil)
	}
	amount, err := currencyutils.ParseAmount(amountToken)
	if err != nil {
		return nil, e.failure(msg, parsererror.ReasonNoAmount,
			&parsererror.ParseError{Field: "amount", Value: amountToken, Err: err})
	}

	amountPos := matchPosition(lib.Amount, body)
	txnType := detectType(body, amountPos, lib)
	if txnType == models.TxnTypeUnknown {
		return nil, e.failure(msg, parsererror.ReasonNoType, nil)
	}

	// Date: taken from the message body when present, else the message
	// timestamp. A date token that is present but unparseable is surfaced
	// as a failure so the pattern can be reported and fixed.
	date := msg.Timestamp
	if token := lib.Date.FindString(body); token != "" {
		parsed, err := dateutils.ParseDate(token)
		if err != nil {
			return nil, e.failure(msg, parsererror.ReasonMalformedDate,
				&parsererror.ParseError{Field: "date", Value: token, Err: err})
		}
		date = parsed.UnixMilli()
	}

	txn := &models.ParsedTransaction{
		SmsID:            msg.ID,
		Amount:           amount,
		Type:             txnType,
		Date:             date,
		MessageTimestamp: msg.Timestamp,
		RawSms:           msg.Body,
		SenderAddress:    msg.SenderAddress,
	}

	txn.Merchant = extractMerchant(lib, body)
	txn.ReferenceNumber = firstMatch(lib.Reference, body)
	txn.AccountNumber = firstMatch(lib.Account, body)

	if balToken := firstMatch(lib.Balance, body); balToken != "" {
		if bal, err := currencyutils.ParseAmount(balToken); err == nil {
			txn.BalanceAfter = bal
			txn.HasBalance = true
		}
	}

	e.logger.Debug("Extracted transaction",
		logging.Field{Key: logging.FieldSmsID, Value: msg.ID},
		logging.Field{Key: logging.FieldAmount, Value: amount.StringFixed(2)},
		logging.Field{Key: logging.FieldType, Value: txnType},
		logging.Field{Key: logging.FieldMerchant, Value: txn.Merchant})
	return txn, nil
}

func (e *Extractor) failure(msg models.RawMessage, reason parsererror.FailureReason, err error) *parsererror.ExtractionFailure {
	e.logger.Debug("Extraction failed",
		logging.Field{Key: logging.FieldSmsID, Value: msg.ID},
		logging.Field{Key: logging.FieldSender, Value: msg.SenderAddress},
		logging.Field{Key: logging.FieldReason, Value: string(reason)})
	return &parsererror.ExtractionFailure{
		SmsID:     msg.ID,
		Sender:    msg.SenderAddress,
		Reason:    reason,
		RawSms:    msg.Body,
		Timestamp: msg.Timestamp,
		Err:       err,
	}
}

// firstMatch returns the first capture group of the first pattern that
// matches, in pattern order.
func firstMatch(res []*regexp.Regexp, body string) string {
	for _, re := range res {
		if m := re.FindStringSubmatch(body); len(m) > 1 {
			// Some patterns have multiple alternations; take the first
			// non-empty group.
			for _, g := range m[1:] {
				if g != "" {
					return strings.TrimSpace(g)
				}
			}
		}
	}
	return ""
}

// matchPosition returns the byte offset of the first pattern match, or 0
// when nothing matches (the caller has already required an amount).
func matchPosition(res []*regexp.Regexp, body string) int {
	for _, re := range res {
		if loc := re.FindStringIndex(body); loc != nil {
			return loc[0]
		}
	}
	return 0
}

// detectType scans the body for debit and credit verbs. The verb lists are
// per-library data. When both sides appear ("debited from your A/c ... and
// VPA x credited"), the verb nearest the amount token decides; an exact tie
// or absence of both resolves to UNKNOWN.
func detectType(body string, amountPos int, lib *patterns.Library) string {
	lower := strings.ToLower(body)
	debit := nearestVerbDistance(lower, lib.DebitVerbs, amountPos)
	credit := nearestVerbDistance(lower, lib.CreditVerbs, amountPos)

	switch {
	case debit >= 0 && (credit < 0 || debit < credit):
		return models.TxnTypeDebit
	case credit >= 0 && (debit < 0 || credit < debit):
		return models.TxnTypeCredit
	default:
		return models.TxnTypeUnknown
	}
}

// nearestVerbDistance returns the smallest byte distance between any
// occurrence of any verb and the amount position, or -1 when no verb occurs.
func nearestVerbDistance(lower string, verbs []string, amountPos int) int {
	nearest := -1
	for _, v := range verbs {
		needle := strings.ToLower(v)
		for from := 0; ; {
			idx := strings.Index(lower[from:], needle)
			if idx < 0 {
				break
			}
			pos := from + idx
			dist := pos - amountPos
			if dist < 0 {
				dist = -dist
			}
			if nearest < 0 || dist < nearest {
				nearest = dist
			}
			from = pos + len(needle)
		}
	}
	return nearest
}

// extractMerchant applies the merchant patterns in order and cleans the
// raw capture. Returns "" when nothing usable is found; the UI then falls
// back to the sender address.
func extractMerchant(lib *patterns.Library, body string) string {
	for _, re := range lib.Merchant {
		if m := re.FindStringSubmatch(body); len(m) > 1 {
			if cleaned := textutils.CleanMerchant(m[1]); cleaned != "" {
				return cleaned
			}
		}
	}
	return ""
}
