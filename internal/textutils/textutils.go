// Package textutils provides text cleanup helpers shared by the extractor,
// the deduplicator and the recurring detector.
package textutils

import (
	"regexp"
	"strings"
)

var (
	// Tokens that mark the end of a merchant phrase when they trail it.
	trailingNoiseRe = regexp.MustCompile(`(?i)\s+(on|dated|ref|refno|ref no|upi|upi ref|txn|txnid|txn id|utr|avl|avail|bal|balance|info|not you).*$`)

	trailingPunctRe = regexp.MustCompile(`[\s.,;:\-()]+$`)
	leadingPunctRe  = regexp.MustCompile(`^[\s.,;:\-()]+`)

	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9 ]+`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// CleanMerchant trims trailing noise from a raw merchant capture: date
// markers, reference keywords, balance keywords and boundary punctuation.
// Returns "" if nothing usable remains.
func CleanMerchant(raw string) string {
	s := strings.TrimSpace(raw)
	s = trailingNoiseRe.ReplaceAllString(s, "")
	s = leadingPunctRe.ReplaceAllString(s, "")
	s = trailingPunctRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// NormalizeMerchant lowercases a merchant name, strips punctuation and
// collapses whitespace so "NETFLIX.COM", "Netflix Com" and "netflix com"
// group together.
func NormalizeMerchant(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlnumRe.ReplaceAllString(s, " ")
	s = whitespaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ContainsAny reports whether s contains any of the given substrings,
// case-insensitively.
func ContainsAny(s string, substrings []string) bool {
	upper := strings.ToUpper(s)
	for _, sub := range substrings {
		if strings.Contains(upper, strings.ToUpper(sub)) {
			return true
		}
	}
	return false
}
