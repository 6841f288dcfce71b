// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/gphunter1004/automation/internal/config"
	"github.com/gphunter1004/automation/internal/container"
	"github.com/gphunter1004/automation/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// ConfigFile is an explicit configuration file; empty means search the
	// standard locations.
	ConfigFile string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	appContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "receipt-ledger",
		Short: "A CLI tool to classify receipt files and export expense ledgers.",
		Long: `receipt-ledger classifies receipt images by filename, builds the remark
of each ledger line and exports OCR results as an XLSX or CSV expense ledger.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to receipt-ledger!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Initialize()
		},
	}
)

// Init registers the persistent flags of the root command.
func Init() {
	if Cmd.PersistentFlags().Lookup("config") != nil {
		return
	}
	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.receipt-ledger, .receipt-ledger or .)")
	Cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
}

// Initialize loads .env and the configuration, configures logging and wires
// the application container.
func Initialize() error {
	envFile, envErr := config.LoadEnv()

	cfg, err := config.InitializeConfigFromFile(ConfigFile)
	if err != nil {
		return err
	}
	if LogLevel != "" {
		cfg.Log.Level = LogLevel
	}

	Log = config.ConfigureLoggingFromConfig(cfg)
	if envErr != nil {
		Log.WithError(envErr).Warn("Error loading .env file")
	} else if envFile != "" {
		Log.Debug("Loaded environment variables", logging.Field{Key: logging.FieldFilePath, Value: envFile})
	}

	c, err := container.NewContainerWithLogger(cfg, Log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	appContainer = c
	return nil
}

// GetContainer returns the application container, initializing it on first use.
func GetContainer() (*container.Container, error) {
	if appContainer == nil {
		if err := Initialize(); err != nil {
			return nil, err
		}
	}
	return appContainer, nil
}

// SetContainer replaces the application container and logger.
func SetContainer(c *container.Container) {
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}
