// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/finanai/internal/config"
	"fjacquet/finanai/internal/container"
	"fjacquet/finanai/internal/logging"
)

// GlobalFlags holds the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigFile string
	StorePath  string
	Backend    string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig *config.Config

	// AppContainer holds the wired dependencies for the running command
	AppContainer *container.Container

	// Flags are the persistent flags of the root command
	Flags = GlobalFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finanai",
		Short: "Personal finance behavior analyzer",
		Long: `finanai records income, expenses and savings goals, and analyzes your
financial behavior: savings rate, spending by category, trend, alerts
and recommendations. Transactions can also be imported from CAMT.053
bank statements.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to close resources")
			}
			AppContainer = nil
		},
	}
)

// Init registers the persistent flags of the root command
func Init() {
	Cmd.PersistentFlags().StringVarP(&Flags.ConfigFile, "config", "c", "", "Config file (default: $HOME/.finanai/config.yaml)")
	Cmd.PersistentFlags().StringVarP(&Flags.StorePath, "store", "s", "", "Data store location (overrides store.path)")
	Cmd.PersistentFlags().StringVarP(&Flags.Backend, "backend", "b", "", "Data store backend: json, yaml, csv or sqlite")
}

func initialize(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfig(Flags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyOverrides(cfg, Flags)

	Log = config.NewLogger(cfg)
	AppConfig = cfg

	c, err := container.NewContainerWithLogger(cfg, Log)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	AppContainer = c
	return nil
}

func applyOverrides(cfg *config.Config, flags GlobalFlags) {
	if flags.StorePath != "" {
		cfg.Store.Path = flags.StorePath
	}
	if flags.Backend != "" {
		cfg.Store.Backend = flags.Backend
	}
}

// GetContainer returns the dependency container, or an error when the
// root command has not been initialized.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return AppContainer, nil
}

// GetConfig returns the loaded configuration, or nil before initialization.
func GetConfig() *config.Config {
	return AppConfig
}

// Context returns the command context, or a background context when the
// command is invoked outside Execute.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
