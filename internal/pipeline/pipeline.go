// Package pipeline orchestrates one extraction run: classify incoming
// messages, extract transactions in parallel, drop duplicates, persist
// the survivors and write the review report for anything that failed.
package pipeline

import (
	"context"
	"time"

	"pennywise/sms-ledger/internal/classifier"
	"pennywise/sms-ledger/internal/dedup"
	"pennywise/sms-ledger/internal/extractor"
	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"
	"pennywise/sms-ledger/internal/parsererror"
	"pennywise/sms-ledger/internal/report"
	"pennywise/sms-ledger/internal/store"
)

// Result summarizes one pipeline run.
type Result struct {
	Received   int
	Classified int
	Extracted  int
	Failed     int
	Duplicates int
	Saved      int
	Duration   time.Duration
}

// Pipeline wires the extraction stages together.
type Pipeline struct {
	classifier   *classifier.Classifier
	extractor    *extractor.BatchExtractor
	deduplicator *dedup.Deduplicator
	store        *store.TransactionStore
	reporter     *report.Writer
	reportPath   string
	logger       logging.Logger
}

// Options configures a pipeline instance.
type Options struct {
	// ReportPath is where the unparsed-message review file goes. Empty
	// disables the report.
	ReportPath string
	// DedupWindow bounds the timestamp distance for cross-message
	// duplicate detection. Zero uses the default window.
	DedupWindow time.Duration
}

// New assembles a pipeline on top of the given store and classifier.
func New(cls *classifier.Classifier, ext *extractor.BatchExtractor, st *store.TransactionStore, opts Options, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	window := opts.DedupWindow
	if window <= 0 {
		window = dedup.DefaultWindow
	}
	return &Pipeline{
		classifier:   cls,
		extractor:    ext,
		deduplicator: dedup.New(window, logger),
		store:        st,
		reporter:     report.NewWriter(logger),
		reportPath:   opts.ReportPath,
		logger:       logger,
	}
}

// Run processes a batch of raw messages end to end. Messages the
// classifier rejects are dropped silently; extraction failures are
// collected into the review report. Re-running over the same input is a
// no-op thanks to the identity check against the store.
func (p *Pipeline) Run(ctx context.Context, msgs []models.RawMessage) (*Result, error) {
	start := time.Now()
	result := &Result{Received: len(msgs)}

	bankMsgs := make([]models.RawMessage, 0, len(msgs))
	for _, msg := range msgs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.classifier.IsBankMessage(msg) {
			bankMsgs = append(bankMsgs, msg)
		}
	}
	result.Classified = len(bankMsgs)
	p.logger.Debug("Classification completed",
		logging.Field{Key: logging.FieldStage, Value: "classify"},
		logging.Field{Key: logging.FieldCount, Value: len(bankMsgs)})

	transactions, failures := p.extractor.ProcessMessages(ctx, bankMsgs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.Extracted = len(transactions)
	result.Failed = len(failures)

	kept := p.deduplicator.Dedupe(transactions, p.store)
	result.Duplicates = len(transactions) - len(kept)

	toSave := make([]models.ParsedTransaction, 0, len(kept))
	for _, t := range kept {
		toSave = append(toSave, *t)
	}
	saved, err := p.store.SaveAll(toSave)
	if err != nil {
		return nil, err
	}
	result.Saved = saved

	if p.reportPath != "" {
		if err := p.writeReport(failures); err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)
	p.logger.Info("Pipeline run completed",
		logging.Field{Key: logging.FieldCount, Value: result.Saved},
		logging.Field{Key: "failed", Value: result.Failed},
		logging.Field{Key: "duplicates", Value: result.Duplicates},
		logging.Field{Key: logging.FieldDuration, Value: result.Duration.Milliseconds()})
	return result, nil
}

func (p *Pipeline) writeReport(failures []*parsererror.ExtractionFailure) error {
	return p.reporter.WriteUnparsed(p.reportPath, failures)
}
