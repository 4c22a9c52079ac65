// Package cmd implements the CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/zorak1103/dbscripts/internal/config"
	"github.com/zorak1103/dbscripts/internal/logging"
	"github.com/zorak1103/dbscripts/internal/version"
)

var (
	cfgFile       string
	verbose       bool
	cfg           *config.Config
	errConfigLoad error
	logger        = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "dbscripts",
	Short: "Scaffold local database container scripts",
	Long: `dbscripts writes start-database.sh and stop-database.sh into a project so a
local development database can be started in Docker or Podman with one command.

It features:
  - Provider-specific start scripts (postgres, mysql) rendered from templates
  - Docker-safe container names derived from the project name
  - A provider-agnostic stop script
  - Custom template directories for teams that ship their own scripts
  - Container status lookup through the Docker API`,
	Version:      version.GetFullVersion(),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger = logging.New(cmd.ErrOrStderr(), verbose)
		slog.SetDefault(logger)

		skipConfig := cmd.Name() == "init" || cmd.Name() == "help" || cmd.Name() == "version"
		if skipConfig {
			return nil
		}

		cfg, errConfigLoad = nil, nil

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			// Stored rather than returned; commands that need config fail in requireConfig.
			errConfigLoad = err
			logger.Warn("could not load config", "error", err)
			return nil
		}

		logger.Debug("loaded configuration",
			"file", cfg.ConfigFilePath,
			"templates", cfg.TemplateSource(),
			"provider", cfg.Install.Provider,
		)

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./dbscripts.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// GetConfig returns the loaded configuration or nil if not loaded.
// Must be called after rootCmd.PersistentPreRunE has executed.
func GetConfig() *config.Config {
	return cfg
}

// GetConfigLoadError returns any error encountered during config loading.
// Returns nil if configuration loaded successfully or was not attempted.
func GetConfigLoadError() error {
	return errConfigLoad
}

// IsVerbose returns whether verbose mode is enabled via the -v flag.
func IsVerbose() bool {
	return verbose
}

// requireConfig returns the loaded configuration or a user-facing error explaining why it is missing.
func requireConfig() (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	if errConfigLoad != nil {
		return nil, fmt.Errorf("configuration could not be loaded: %w\n\nFix the file or run 'dbscripts init --force' to recreate it", errConfigLoad)
	}
	return nil, fmt.Errorf("configuration not loaded")
}
