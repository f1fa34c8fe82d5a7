// Package store persists parsed transactions and recurring patterns as
// YAML files under a data directory. All reads are served from an
// in-memory index loaded at construction; every mutation is written
// back to disk before returning.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pennywise/sms-ledger/internal/fileutils"
	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"

	"gopkg.in/yaml.v3"
)

const (
	transactionsFile = "transactions.yaml"
	recurringFile    = "recurring.yaml"
)

// transactionsDoc is the on-disk layout of transactions.yaml.
type transactionsDoc struct {
	Transactions []models.ParsedTransaction `yaml:"transactions"`
}

// recurringDoc is the on-disk layout of recurring.yaml.
type recurringDoc struct {
	Recurring []models.RecurringTransaction `yaml:"recurring"`
}

// TransactionStore manages the transaction history and the detected
// recurring patterns. It is safe for concurrent use.
type TransactionStore struct {
	dataDir string
	logger  logging.Logger

	mu           sync.RWMutex
	transactions []models.ParsedTransaction
	bySmsID      map[string]int
	recurring    []models.RecurringTransaction
}

// New opens the store rooted at dataDir, loading any existing files.
// Missing files are not an error; the store starts empty.
func New(dataDir string, logger logging.Logger) (*TransactionStore, error) {
	if dataDir == "" {
		dataDir = "data"
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	s := &TransactionStore{
		dataDir: dataDir,
		logger:  logger,
		bySmsID: make(map[string]int),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *TransactionStore) load() error {
	var txnDoc transactionsDoc
	if err := s.readYAML(transactionsFile, &txnDoc); err != nil {
		return err
	}
	s.transactions = txnDoc.Transactions
	for i, t := range s.transactions {
		s.bySmsID[t.SmsID] = i
	}

	var recDoc recurringDoc
	if err := s.readYAML(recurringFile, &recDoc); err != nil {
		return err
	}
	s.recurring = recDoc.Recurring

	s.logger.Debug("Store loaded",
		logging.Field{Key: logging.FieldFile, Value: s.dataDir},
		logging.Field{Key: logging.FieldCount, Value: len(s.transactions)},
		logging.Field{Key: "recurring", Value: len(s.recurring)})
	return nil
}

// readYAML reads one store file into out. A missing file leaves out
// untouched and returns nil.
func (s *TransactionStore) readYAML(filename string, out interface{}) error {
	path := filepath.Join(s.dataDir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Store file not found, starting empty",
				logging.Field{Key: logging.FieldFile, Value: path})
			return nil
		}
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error parsing %s: %w", path, err)
	}
	return nil
}

func (s *TransactionStore) writeYAML(filename string, doc interface{}) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling %s: %w", filename, err)
	}
	path := filepath.Join(s.dataDir, filename)
	if err := fileutils.WriteFile(path, data, models.PermissionDataFile); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a transaction with the given SMS id is already
// persisted.
func (s *TransactionStore) Exists(smsID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.bySmsID[smsID]
	return ok
}

// SaveAll appends the given transactions to the history, skipping any
// whose SMS id is already present, and persists the file. It returns
// the number of transactions actually added.
func (s *TransactionStore) SaveAll(txns []models.ParsedTransaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, t := range txns {
		if _, ok := s.bySmsID[t.SmsID]; ok {
			continue
		}
		s.bySmsID[t.SmsID] = len(s.transactions)
		s.transactions = append(s.transactions, t)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := s.writeYAML(transactionsFile, transactionsDoc{Transactions: s.transactions}); err != nil {
		return 0, err
	}
	s.logger.Info("Saved transactions",
		logging.Field{Key: logging.FieldCount, Value: added},
		logging.Field{Key: "total", Value: len(s.transactions)})
	return added, nil
}

// GetAllSnapshot returns a copy of the full transaction history in
// insertion order.
func (s *TransactionStore) GetAllSnapshot() []models.ParsedTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]models.ParsedTransaction, len(s.transactions))
	copy(snapshot, s.transactions)
	return snapshot
}

// Count returns the number of persisted transactions.
func (s *TransactionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}

// SaveRecurring replaces the persisted recurring patterns with the given
// set. User decisions survive re-detection: when a new pattern shares a
// member SMS id with an old pattern of the same merchant and type, the
// old pattern's id and Confirmed/Dismissed flags carry over.
func (s *TransactionStore) SaveRecurring(patterns []models.RecurringTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	carried := 0
	for i := range patterns {
		if old, ok := s.matchPrevious(patterns[i]); ok {
			patterns[i].ID = old.ID
			patterns[i].Confirmed = old.Confirmed
			patterns[i].Dismissed = old.Dismissed
			carried++
		}
	}

	if err := s.writeYAML(recurringFile, recurringDoc{Recurring: patterns}); err != nil {
		return err
	}
	s.recurring = patterns
	s.logger.Info("Saved recurring patterns",
		logging.Field{Key: logging.FieldCount, Value: len(patterns)},
		logging.Field{Key: "carried", Value: carried})
	return nil
}

// matchPrevious finds the old pattern the new one descends from. Callers
// must hold s.mu.
func (s *TransactionStore) matchPrevious(pattern models.RecurringTransaction) (models.RecurringTransaction, bool) {
	for _, old := range s.recurring {
		if old.Merchant != pattern.Merchant || old.Type != pattern.Type {
			continue
		}
		if membersIntersect(old.MemberSmsIDs, pattern.MemberSmsIDs) {
			return old, true
		}
	}
	return models.RecurringTransaction{}, false
}

func membersIntersect(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

// GetRecurring returns a copy of the persisted recurring patterns.
func (s *TransactionStore) GetRecurring() []models.RecurringTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]models.RecurringTransaction, len(s.recurring))
	copy(snapshot, s.recurring)
	return snapshot
}

// SetRecurringStatus updates the user decision on one pattern and
// persists the change. Confirmed and dismissed are mutually exclusive;
// setting one clears the other.
func (s *TransactionStore) SetRecurringStatus(id string, confirmed, dismissed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.recurring {
		if s.recurring[i].ID != id {
			continue
		}
		s.recurring[i].Confirmed = confirmed
		s.recurring[i].Dismissed = dismissed
		return s.writeYAML(recurringFile, recurringDoc{Recurring: s.recurring})
	}
	return fmt.Errorf("no recurring pattern with id %s", id)
}

// ClearRecurring removes all recurring patterns, including confirmed
// ones, and persists the empty set.
func (s *TransactionStore) ClearRecurring() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeYAML(recurringFile, recurringDoc{}); err != nil {
		return err
	}
	s.recurring = nil
	return nil
}
