package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/zorak1103/dbscripts/internal/installer"
	"github.com/zorak1103/dbscripts/internal/sanitize"
)

var providersName string

var providersCmd = &cobra.Command{
	Use:   "providers [project-dir]",
	Short: "List database providers and their start-database templates",
	Long: `Providers lists every known database provider, whether the active template
directory ships a start-database script for it, and the container name the
script would create for the project.

Providers without a template (e.g. sqlite) have no local container to start.`,
	Example: `  # List providers for the project in the current directory
  dbscripts providers

  # Preview container names for another project name
  dbscripts providers --name "My Shop"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}

		projectDir := "."
		if len(args) > 0 {
			projectDir = args[0]
		}
		name := cfg.Install.ProjectName
		if providersName != "" {
			name = providersName
		}
		name = installer.EffectiveName(projectDir, name)

		available, err := installer.New(cfg.TemplateFS()).Providers()
		if err != nil {
			return fmt.Errorf("failed to read templates from %s: %w", cfg.TemplateSource(), err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderProviders(available, name, cfg.Provider()))
		fmt.Fprintf(cmd.OutOrStdout(), "Templates: %s\n", cfg.TemplateSource())
		return nil
	},
}

// renderProviders builds the providers table. Known providers come first in
// their canonical order, followed by any extra providers found in the template directory.
func renderProviders(available []installer.Provider, projectName string, defaultProvider installer.Provider) string {
	hasTemplate := make(map[installer.Provider]bool, len(available))
	for _, p := range available {
		hasTemplate[p] = true
	}

	rows := append([]installer.Provider{}, installer.KnownProviders...)
	for _, p := range available {
		if !p.IsKnown() {
			rows = append(rows, p)
		}
	}

	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Provider", "Template", "Container", "Default"})

	for _, p := range rows {
		template := text.FgRed.Sprint("missing")
		container := "-"
		if hasTemplate[p] {
			template = text.FgGreen.Sprint(p.String() + ".sh")
			container = sanitize.ContainerName(projectName, p.String())
		}

		def := ""
		if p == defaultProvider {
			def = "*"
		}

		tw.AppendRow(table.Row{p.String(), template, container, def})
	}

	return tw.Render()
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(providersCmd)

	providersCmd.Flags().StringVarP(&providersName, "name", "n", "", `project name used for container names ("." = project directory name)`)
}
