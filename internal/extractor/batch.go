package extractor

import (
	"context"
	"runtime"
	"sync"

	"pennywise/sms-ledger/internal/bankregistry"
	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"
	"pennywise/sms-ledger/internal/parsererror"
)

// sequentialThreshold is the batch size below which the worker pool costs
// more than it saves.
const sequentialThreshold = 100

// BatchExtractor runs extraction across a batch of messages. Parsing is
// pure and stateless per message, so messages fan out to a worker pool;
// results come back in input order regardless of completion order.
type BatchExtractor struct {
	extractor   *Extractor
	registry    *bankregistry.Registry
	logger      logging.Logger
	workerCount int
}

// NewBatchExtractor creates a BatchExtractor with one worker per CPU.
func NewBatchExtractor(registry *bankregistry.Registry, logger logging.Logger) *BatchExtractor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &BatchExtractor{
		extractor:   New(logger),
		registry:    registry,
		logger:      logger,
		workerCount: runtime.NumCPU(),
	}
}

// extractOutcome pairs one message's result with its input position so the
// collector can restore batch order.
type extractOutcome struct {
	index       int
	transaction *models.ParsedTransaction
	failure     *parsererror.ExtractionFailure
}

// ProcessMessages extracts every message in the batch. A failed message
// never aborts the batch: failures are collected alongside successes, both
// in input order. The context cancels remaining work between messages.
func (b *BatchExtractor) ProcessMessages(ctx context.Context, msgs []models.RawMessage) ([]*models.ParsedTransaction, []*parsererror.ExtractionFailure) {
	if len(msgs) < sequentialThreshold {
		return b.processSequential(ctx, msgs)
	}
	return b.processConcurrent(ctx, msgs)
}

func (b *BatchExtractor) processSequential(ctx context.Context, msgs []models.RawMessage) ([]*models.ParsedTransaction, []*parsererror.ExtractionFailure) {
	outcomes := make([]extractOutcome, 0, len(msgs))
	for i, msg := range msgs {
		if ctx.Err() != nil {
			break
		}
		txn, failure := b.extractOne(msg)
		outcomes = append(outcomes, extractOutcome{index: i, transaction: txn, failure: failure})
	}
	return splitOutcomes(outcomes, len(msgs))
}

func (b *BatchExtractor) processConcurrent(ctx context.Context, msgs []models.RawMessage) ([]*models.ParsedTransaction, []*parsererror.ExtractionFailure) {
	type job struct {
		index int
		msg   models.RawMessage
	}

	jobChan := make(chan job, b.workerCount)
	resultChan := make(chan extractOutcome, len(msgs))

	var wg sync.WaitGroup
	for i := 0; i < b.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobChan {
				txn, failure := b.extractOne(j.msg)
				select {
				case resultChan <- extractOutcome{index: j.index, transaction: txn, failure: failure}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for i, msg := range msgs {
			select {
			case jobChan <- job{index: i, msg: msg}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	outcomes := make([]extractOutcome, 0, len(msgs))
	for outcome := range resultChan {
		outcomes = append(outcomes, outcome)
	}

	b.logger.Debug("Concurrent extraction completed",
		logging.Field{Key: logging.FieldCount, Value: len(msgs)},
		logging.Field{Key: "workers", Value: b.workerCount})
	return splitOutcomes(outcomes, len(msgs))
}

func (b *BatchExtractor) extractOne(msg models.RawMessage) (*models.ParsedTransaction, *parsererror.ExtractionFailure) {
	entry, _ := b.registry.FindBySender(msg.SenderAddress)
	return b.extractor.Extract(msg, entry)
}

// splitOutcomes reassembles outcomes into input-ordered transaction and
// failure slices.
func splitOutcomes(outcomes []extractOutcome, total int) ([]*models.ParsedTransaction, []*parsererror.ExtractionFailure) {
	ordered := make([]extractOutcome, total)
	seen := make([]bool, total)
	for _, o := range outcomes {
		ordered[o.index] = o
		seen[o.index] = true
	}

	var transactions []*models.ParsedTransaction
	var failures []*parsererror.ExtractionFailure
	for i := 0; i < total; i++ {
		if !seen[i] {
			continue // cancelled before this message was processed
		}
		if ordered[i].transaction != nil {
			transactions = append(transactions, ordered[i].transaction)
		} else if ordered[i].failure != nil {
			failures = append(failures, ordered[i].failure)
		}
	}
	return transactions, failures
}
