// Package bankregistry resolves SMS sender ids to per-bank parsing rules.
// The registry is built once at startup and read-only afterwards; lookups
// are safe to share across the parallel extraction workers.
package bankregistry

import (
	"fmt"
	"regexp"

	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/patterns"
)

// BankConfig is the per-bank metadata record.
type BankConfig struct {
	BankName    string   `yaml:"bank_name"`
	DisplayName string   `yaml:"display_name"`
	SenderIDs   []string `yaml:"sender_ids"`
}

// PatternSet holds a bank's override regular expressions as raw strings.
// Any empty field falls back to the generic library for that field alone;
// overrides are per-field, never all-or-nothing.
type PatternSet struct {
	Amount    string `yaml:"amount,omitempty"`
	Balance   string `yaml:"balance,omitempty"`
	Reference string `yaml:"reference,omitempty"`
	Merchant  string `yaml:"merchant,omitempty"`
	Date      string `yaml:"date,omitempty"`

	ExtraDebitVerbs  []string `yaml:"extra_debit_verbs,omitempty"`
	ExtraCreditVerbs []string `yaml:"extra_credit_verbs,omitempty"`
}

// Entry is one registered bank: its config, its raw pattern set and the
// library compiled from the set merged over the generic fallback.
type Entry struct {
	Config   BankConfig
	Patterns *PatternSet
	library  *patterns.Library
}

// Library returns the compiled per-field extraction library for this bank.
func (e *Entry) Library() *patterns.Library {
	return e.library
}

// Registry maps normalized sender ids to bank entries.
//
// Not safe for concurrent mutation: all Register calls must complete
// before the first FindBySender call.
type Registry struct {
	bySender map[string]*Entry
	banks    []*Entry
	logger   logging.Logger
}

// New creates an empty registry.
func New(logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Registry{
		bySender: make(map[string]*Entry),
		logger:   logger,
	}
}

// Register adds a bank and claims its sender ids. A sender id already
// claimed by an earlier registration is silently overwritten by the later
// one (logged at warn); this lets user-supplied bank files shadow the
// built-in table.
func (r *Registry) Register(config BankConfig, ps *PatternSet) error {
	lib, err := compile(ps)
	if err != nil {
		return fmt.Errorf("bank %s: %w", config.BankName, err)
	}

	entry := &Entry{Config: config, Patterns: ps, library: lib}
	r.banks = append(r.banks, entry)

	for _, id := range config.SenderIDs {
		key := normalizeSender(id)
		if prev, ok := r.bySender[key]; ok && prev.Config.BankName != config.BankName {
			r.logger.Warn("Sender id re-registered, later bank wins",
				logging.Field{Key: logging.FieldSender, Value: id},
				logging.Field{Key: "previous_bank", Value: prev.Config.BankName},
				logging.Field{Key: logging.FieldBank, Value: config.BankName})
		}
		r.bySender[key] = entry
	}
	return nil
}

// FindBySender resolves a sender address to a bank entry. The lookup is a
// case-insensitive exact match on the normalized sender id.
func (r *Registry) FindBySender(sender string) (*Entry, bool) {
	entry, ok := r.bySender[normalizeSender(sender)]
	return entry, ok
}

// AllBanks returns every registered bank entry in registration order.
func (r *Registry) AllBanks() []*Entry {
	return r.banks
}

// Count returns the number of registered banks.
func (r *Registry) Count() int {
	return len(r.banks)
}

// SenderCount returns the number of claimed sender ids.
func (r *Registry) SenderCount() int {
	return len(r.bySender)
}

func normalizeSender(sender string) string {
	out := make([]byte, 0, len(sender))
	for i := 0; i < len(sender); i++ {
		c := sender[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// compile merges a pattern set over the generic library. An overridden
// field's pattern is tried before the generic patterns for that field;
// verb lists extend rather than replace. Only the single-valued date
// pattern replaces outright.
func compile(ps *PatternSet) (*patterns.Library, error) {
	gen := patterns.Generic()
	if ps == nil {
		return gen, nil
	}

	lib := &patterns.Library{
		Amount:      gen.Amount,
		Balance:     gen.Balance,
		Reference:   gen.Reference,
		Account:     gen.Account,
		Merchant:    gen.Merchant,
		Date:        gen.Date,
		DebitVerbs:  append(append([]string{}, gen.DebitVerbs...), ps.ExtraDebitVerbs...),
		CreditVerbs: append(append([]string{}, gen.CreditVerbs...), ps.ExtraCreditVerbs...),
	}

	type override struct {
		raw    string
		target *[]*regexp.Regexp
		field  string
	}
	overrides := []override{
		{ps.Amount, &lib.Amount, "amount"},
		{ps.Balance, &lib.Balance, "balance"},
		{ps.Reference, &lib.Reference, "reference"},
		{ps.Merchant, &lib.Merchant, "merchant"},
	}
	for _, o := range overrides {
		if o.raw == "" {
			continue
		}
		re, err := regexp.Compile(o.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern: %w", o.field, err)
		}
		*o.target = append([]*regexp.Regexp{re}, *o.target...)
	}
	if ps.Date != "" {
		re, err := regexp.Compile(ps.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date pattern: %w", err)
		}
		lib.Date = re
	}

	return lib, nil
}
