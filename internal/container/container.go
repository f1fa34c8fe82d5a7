// Package container provides dependency injection for the sms-ledger
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"
	"time"

	"pennywise/sms-ledger/internal/bankregistry"
	"pennywise/sms-ledger/internal/classifier"
	"pennywise/sms-ledger/internal/config"
	"pennywise/sms-ledger/internal/extractor"
	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/pipeline"
	"pennywise/sms-ledger/internal/recurring"
	"pennywise/sms-ledger/internal/store"
)

// Container holds all application dependencies and provides methods to
// access them. It is immutable after creation; all fields are private and
// only reachable through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	registry   *bankregistry.Registry
	store      *store.TransactionStore
	classifier *classifier.Classifier
	extractor  *extractor.BatchExtractor
	pipeline   *pipeline.Pipeline
	detector   *recurring.Detector
}

// NewContainer creates and wires all application dependencies. This is
// the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	// Bank registry: built-ins plus the optional user bank file
	registry := bankregistry.NewBuiltin(logger)
	if cfg.Banks.File != "" {
		loaded, err := registry.LoadBanksFile(cfg.Banks.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load bank definitions: %w", err)
		}
		if loaded > 0 {
			logger.Info("Loaded user bank definitions",
				logging.Field{Key: logging.FieldFile, Value: cfg.Banks.File},
				logging.Field{Key: logging.FieldCount, Value: loaded})
		}
	}

	txnStore, err := store.New(cfg.Data.Directory, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction store: %w", err)
	}

	cls := classifier.New(registry, logger)
	ext := extractor.NewBatchExtractor(registry, logger)

	pipe := pipeline.New(cls, ext, txnStore, pipeline.Options{
		ReportPath:  cfg.Data.ReportFile,
		DedupWindow: time.Duration(cfg.Dedup.WindowMinutes) * time.Minute,
	}, logger)

	// Recurring detection, with the Gemini fallback only when enabled
	var typeClassifier recurring.TypeClassifier
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		typeClassifier = recurring.NewAIClassifier(cfg.AI.APIKey, cfg.AI.Model, logger)
		logger.Info("AI merchant classification enabled",
			logging.Field{Key: "model", Value: cfg.AI.Model})
	}
	detector := recurring.NewDetector(recurring.Options{
		AmountTolerance:   cfg.Recurring.AmountTolerance,
		IntervalTolerance: cfg.Recurring.IntervalTolerance,
		MinOccurrences:    cfg.Recurring.MinOccurrences,
	}, typeClassifier, logger)

	logger.Info("Container initialized successfully",
		logging.Field{Key: "banks", Value: registry.Count()},
		logging.Field{Key: "ai_enabled", Value: cfg.AI.Enabled})

	return &Container{
		logger:     logger,
		config:     cfg,
		registry:   registry,
		store:      txnStore,
		classifier: cls,
		extractor:  ext,
		pipeline:   pipe,
		detector:   detector,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetRegistry returns the bank registry.
func (c *Container) GetRegistry() *bankregistry.Registry {
	return c.registry
}

// GetStore returns the transaction store.
func (c *Container) GetStore() *store.TransactionStore {
	return c.store
}

// GetPipeline returns the extraction pipeline.
func (c *Container) GetPipeline() *pipeline.Pipeline {
	return c.pipeline
}

// GetDetector returns the recurring-pattern detector.
func (c *Container) GetDetector() *recurring.Detector {
	return c.detector
}

// Close performs cleanup of container resources. This method should be
// called when the container is no longer needed.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
