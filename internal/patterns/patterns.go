// Package patterns holds the generic fallback pattern library: the common
// superset of Indian bank SMS phrasing. Banks with quirks override
// individual fields through their PatternSet; everything else lands here.
//
// Every extraction regex yields the field value in its first capture group.
package patterns

import "regexp"

// Library is a full set of extraction patterns for one pattern source
// (the generic library or a bank override merged over it).
type Library struct {
	Amount    []*regexp.Regexp
	Balance   []*regexp.Regexp
	Reference []*regexp.Regexp
	Account   []*regexp.Regexp
	Merchant  []*regexp.Regexp
	Date      *regexp.Regexp

	// Verb lists are data, not logic, so banks can extend them.
	DebitVerbs  []string
	CreditVerbs []string
}

var generic = &Library{
	Amount: []*regexp.Regexp{
		// Rs.1,00,000.00 / INR 499 / ₹ 1,234.56
		regexp.MustCompile(`(?i)(?:₹|Rs\.?|INR)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	},
	Balance: []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:avl\.?\s*(?:bal(?:ance)?|lmt)|available\s*bal(?:ance)?|wallet\s*bal(?:ance)?|bal(?:ance)?)\s*(?:is|:|-)?\s*(?:₹|Rs\.?|INR)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	},
	Reference: []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:UPI\s*Ref(?:erence)?(?:\s*No)?\.?|IMPS\s*Ref(?:\s*No)?\.?|Ref(?:erence)?\s*No\.?|Txn\s*(?:ID|No)\.?|UTR)\s*[:#-]?\s*([A-Za-z0-9]{6,})`),
	},
	Account: []*regexp.Regexp{
		// XX1234, xxxxx1234, A/c **3456, Card ending 1234
		regexp.MustCompile(`(?i)(?:a/c|acc(?:oun)?t|card)(?:\s*no\.?)?\s*[.:]?\s*([Xx*]{2,}[0-9]{3,6})`),
		regexp.MustCompile(`(?i)(?:a/c|acc(?:oun)?t|card)\s+ending\s+(?:in\s+)?([0-9]{4})`),
	},
	Merchant: []*regexp.Regexp{
		// "via" names the payment rail ("via UPI", "via NEFT"), never the
		// counterparty, so it terminates captures instead of opening one.
		regexp.MustCompile(`(?i)\bInfo\s*[:\-]\s*([^.;\n]+)`),
		regexp.MustCompile(`(?i)\b(?:to|at|and)\s+VPA\s+([A-Za-z0-9._\-]+@[A-Za-z0-9]+)`),
		regexp.MustCompile(`(?i)\btowards\s+([A-Za-z0-9][A-Za-z0-9 .&'\-]*?)(?:\s+on\s|\s+via\s|\s*[.;\n]|$)`),
		regexp.MustCompile(`(?i)\b(?:at|to)\s+([A-Za-z0-9][A-Za-z0-9 .&'\-]*?)(?:\s+on\s|\s+via\s|\s+Avl|\s+Ref|\s+UPI|\s*[.;\n]|$)`),
	},
	Date: regexp.MustCompile(`(\d{2}-[A-Za-z]{3}-\d{2,4})|(\d{2}[-/]\d{2}[-/]\d{2,4})|(\d{4}-\d{2}-\d{2})|([A-Z][a-z]+ \d{1,2}, \d{4})`),

	// "sent to" rather than bare "sent": credit alerts say "sent by".
	DebitVerbs:  []string{"debited", "spent", "paid", "withdrawn", "sent to", "purchase", "deducted"},
	CreditVerbs: []string{"credited", "received", "deposited", "refunded", "reloaded"},
}

// Generic returns the shared fallback library. Callers must treat it as
// read-only; it is built once at init and used concurrently.
func Generic() *Library {
	return generic
}
