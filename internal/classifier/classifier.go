// Package classifier decides whether a raw SMS is a bank transaction
// message at all, filtering promotional, OTP and informational text before
// extraction is attempted.
package classifier

import (
	"regexp"

	"pennywise/sms-ledger/internal/bankregistry"
	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"
	"pennywise/sms-ledger/internal/textutils"
)

var (
	amountTokenRe = regexp.MustCompile(`(?i)(?:₹|Rs\.?|INR)\s*[0-9]`)
	otpRe         = regexp.MustCompile(`(?i)\bOTP\b|one[ -]time password|verification code`)
)

// Keyword lists are data so they can be tuned without touching the logic.
var (
	transactionKeywords = []string{
		"debited", "credited", "spent", "paid", "withdrawn",
		"received", "deposited", "transferred", "txn", "transaction",
		"a/c", "purchase",
	}
	promoKeywords = []string{
		"offer", "discount", "% off", "flat off", "sale ends",
		"coupon", "hurry", "limited period", "apply now", "win ",
	}
)

// Classifier filters messages against the bank registry and a keyword
// heuristic. It is a pure function over message content and the read-only
// registry, safe for concurrent use.
type Classifier struct {
	registry *bankregistry.Registry
	logger   logging.Logger
}

// New creates a Classifier over the given registry.
func New(registry *bankregistry.Registry, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Classifier{registry: registry, logger: logger}
}

// IsBankMessage reports whether the message looks like a bank transaction
// alert. Registered senders are trusted unless the body is clearly an OTP
// or promotion; unknown senders must carry both an amount token and a
// transaction keyword so balance-enquiry and marketing texts drop out.
func (c *Classifier) IsBankMessage(msg models.RawMessage) bool {
	body := msg.Body

	if otpRe.MatchString(body) {
		return false
	}

	_, known := c.registry.FindBySender(msg.SenderAddress)
	hasAmount := amountTokenRe.MatchString(body)

	if known {
		// Banks send informational texts from the same headers; only the
		// ones carrying an amount are transaction candidates.
		return hasAmount
	}

	if !hasAmount {
		return false
	}
	if textutils.ContainsAny(body, promoKeywords) {
		c.logger.Debug("Dropping promotional message",
			logging.Field{Key: logging.FieldSender, Value: msg.SenderAddress},
			logging.Field{Key: logging.FieldSmsID, Value: msg.ID})
		return false
	}
	return textutils.ContainsAny(body, transactionKeywords)
}
