// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"pennywise/sms-ledger/internal/config"
	"pennywise/sms-ledger/internal/container"
	"pennywise/sms-ledger/internal/xmlutils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
	Format string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "sms-ledger",
		Short: "A CLI tool to extract financial transactions from bank SMS messages.",
		Long: `sms-ledger parses bank and wallet SMS messages into structured
transactions, weeds out duplicates and detects recurring payments such as
subscriptions, EMIs and salaries.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to sms-ledger!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()
			xmlutils.SetLogger(Log)
		},
	}

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}

	containerOnce sync.Once
	appContainer  *container.Container
	containerErr  error
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "csv", "Input format (csv or xml)")
}

// GetContainer builds the application container on first use. Commands
// share one instance so the store is opened exactly once per run.
func GetContainer() (*container.Container, error) {
	containerOnce.Do(func() {
		cfg, err := config.InitializeConfig()
		if err != nil {
			containerErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appContainer, containerErr = container.NewContainer(cfg)
	})
	return appContainer, containerErr
}
