package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zorak1103/dbscripts/internal/installer"
	"github.com/zorak1103/dbscripts/internal/version"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the effective configuration",
	Long: `Display the effective configuration that dbscripts will use at runtime.

This shows the merged configuration from:
  1. Default values
  2. Configuration file (dbscripts.yaml)
  3. Environment variables (highest priority, DBSCRIPTS_ prefix)`,
	Example: `  # Show current configuration
  dbscripts config

  # Show with custom config file
  dbscripts config --config /etc/dbscripts/dbscripts.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		source := cfg.ConfigFilePath
		if source == "" {
			source = "(defaults and environment)"
		}

		fmt.Fprintln(out, "=== dbscripts Effective Configuration ===")
		fmt.Fprintf(out, "   Config File:    %s\n", source)
		fmt.Fprintln(out)

		fmt.Fprintln(out, "📄 Templates:")
		fmt.Fprintf(out, "   Directory:      %s\n", cfg.TemplateSource())
		fmt.Fprintf(out, "   Placeholder:    %s (contract %s)\n", installer.Placeholder, version.TemplateContract)
		fmt.Fprintln(out)

		fmt.Fprintln(out, "🛠️  Install Defaults:")
		fmt.Fprintf(out, "   Provider:       %s\n", cfg.Provider())
		fmt.Fprintf(out, "   Project Name:   %s\n", displayProjectName(cfg.Install.ProjectName))
		fmt.Fprintln(out)

		fmt.Fprintln(out, "🐳 Docker Configuration:")
		fmt.Fprintf(out, "   Socket Path:    %s\n", cfg.Docker.SocketPath)
		fmt.Fprintln(out)

		return nil
	},
}

func displayProjectName(name string) string {
	if name == installer.CurrentDirName {
		return `"." (derived from project directory)`
	}
	return name
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(configCmd)
}
