// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory  string `mapstructure:"directory" yaml:"directory"`
		ReportFile string `mapstructure:"report_file" yaml:"report_file"`
	} `mapstructure:"data" yaml:"data"`

	Banks struct {
		// File is an optional YAML file with additional bank
		// definitions layered over the built-ins.
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"banks" yaml:"banks"`

	Dedup struct {
		WindowMinutes int `mapstructure:"window_minutes" yaml:"window_minutes"`
	} `mapstructure:"dedup" yaml:"dedup"`

	Recurring struct {
		AmountTolerance   float64 `mapstructure:"amount_tolerance" yaml:"amount_tolerance"`
		IntervalTolerance float64 `mapstructure:"interval_tolerance" yaml:"interval_tolerance"`
		MinOccurrences    int     `mapstructure:"min_occurrences" yaml:"min_occurrences"`
	} `mapstructure:"recurring" yaml:"recurring"`

	AI struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Model   string `mapstructure:"model" yaml:"model"`
		APIKey  string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.sms-ledger")
	v.AddConfigPath(".sms-ledger")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("SMSLEDGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found or invalid is OK, we'll use defaults and env vars
	}

	// 5. Handle special case for API key (always from env, not prefixed)
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Data defaults
	v.SetDefault("data.directory", "data")
	v.SetDefault("data.report_file", "data/unparsed.yaml")

	// Bank registry defaults
	v.SetDefault("banks.file", "banks.yaml")

	// Dedup defaults
	v.SetDefault("dedup.window_minutes", 10)

	// Recurring detection defaults
	v.SetDefault("recurring.amount_tolerance", 0.05)
	v.SetDefault("recurring.interval_tolerance", 0.20)
	v.SetDefault("recurring.min_occurrences", 3)

	// AI defaults
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-1.5-flash")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate dedup window
	if config.Dedup.WindowMinutes < 1 || config.Dedup.WindowMinutes > 1440 {
		return fmt.Errorf("dedup.window_minutes must be between 1 and 1440, got: %d", config.Dedup.WindowMinutes)
	}

	// Validate recurring thresholds
	if config.Recurring.AmountTolerance <= 0 || config.Recurring.AmountTolerance > 0.5 {
		return fmt.Errorf("recurring.amount_tolerance must be in (0, 0.5], got: %f", config.Recurring.AmountTolerance)
	}
	if config.Recurring.IntervalTolerance <= 0 || config.Recurring.IntervalTolerance > 1.0 {
		return fmt.Errorf("recurring.interval_tolerance must be in (0, 1], got: %f", config.Recurring.IntervalTolerance)
	}
	if config.Recurring.MinOccurrences < 2 {
		return fmt.Errorf("recurring.min_occurrences must be at least 2, got: %d", config.Recurring.MinOccurrences)
	}

	// Validate AI configuration
	if config.AI.Enabled && config.AI.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
	}

	return nil
}
