// Package dedup collapses duplicate transaction candidates: re-synced
// messages already in the store, and multi-SMS alerts (bank plus wallet)
// for one underlying transfer.
package dedup

import (
	"time"

	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"
	"pennywise/sms-ledger/internal/textutils"
)

// IdentityLookup is the slice of the persistence boundary dedup needs.
type IdentityLookup interface {
	Exists(smsID string) bool
}

// DefaultWindow is the receipt-time tolerance within which two messages
// can describe the same transfer.
const DefaultWindow = 10 * time.Minute

// Deduplicator removes duplicates from candidate batches. Not safe for
// concurrent use across one batch; the pipeline runs it as a single
// downstream stage after parallel extraction.
type Deduplicator struct {
	window time.Duration
	logger logging.Logger
}

// New creates a Deduplicator with the given receipt-time tolerance window.
// A non-positive window falls back to DefaultWindow.
func New(window time.Duration, logger logging.Logger) *Deduplicator {
	if window <= 0 {
		window = DefaultWindow
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Deduplicator{window: window, logger: logger}
}

// Dedupe filters candidates in two passes. Identity dedup drops candidates
// whose sms id is already persisted, making re-syncs idempotent.
// Cross-message dedup then drops candidates that duplicate an earlier
// candidate in the same batch. The first occurrence in batch order wins
// and input order is preserved, so the tie-break is stable.
func (d *Deduplicator) Dedupe(candidates []*models.ParsedTransaction, persisted IdentityLookup) []*models.ParsedTransaction {
	kept := make([]*models.ParsedTransaction, 0, len(candidates))
	dropped := 0

	for _, candidate := range candidates {
		if persisted != nil && persisted.Exists(candidate.SmsID) {
			dropped++
			continue
		}

		duplicate := false
		for _, existing := range kept {
			if d.sameTransfer(existing, candidate) {
				d.logger.Debug("Dropping cross-message duplicate",
					logging.Field{Key: logging.FieldSmsID, Value: candidate.SmsID},
					logging.Field{Key: "kept_sms_id", Value: existing.SmsID})
				duplicate = true
				break
			}
		}
		if duplicate {
			dropped++
			continue
		}
		kept = append(kept, candidate)
	}

	if dropped > 0 {
		d.logger.Info("Deduplicated batch",
			logging.Field{Key: logging.FieldCount, Value: len(kept)},
			logging.Field{Key: "dropped", Value: dropped})
	}
	return kept
}

// sameTransfer reports whether two candidates describe the same underlying
// transfer: same direction, equal amount, message receipt times within the
// window, and overlapping identifiers. Receipt time is compared rather than
// the transaction date: a body date parses at day resolution, so only one of
// two alerts carrying it would push the pair hours apart.
func (d *Deduplicator) sameTransfer(a, b *models.ParsedTransaction) bool {
	if a.Type != b.Type {
		return false
	}
	if !a.Amount.Equal(b.Amount) {
		return false
	}
	diff := a.MessageTime().Sub(b.MessageTime())
	if diff < 0 {
		diff = -diff
	}
	if diff > d.window {
		return false
	}
	return identifiersOverlap(a, b)
}

// identifiersOverlap checks reference numbers first (the strongest signal),
// then account numbers, then normalized merchants. Two candidates with no
// shared identifier at all are kept apart: equal amount and time alone can
// be two genuinely distinct payments.
func identifiersOverlap(a, b *models.ParsedTransaction) bool {
	if a.ReferenceNumber != "" && b.ReferenceNumber != "" {
		return a.ReferenceNumber == b.ReferenceNumber
	}
	if a.AccountNumber != "" && a.AccountNumber == b.AccountNumber {
		return true
	}
	am, bm := textutils.NormalizeMerchant(a.Merchant), textutils.NormalizeMerchant(b.Merchant)
	return am != "" && am == bm
}
