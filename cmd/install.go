package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zorak1103/dbscripts/internal/config"
	apperrors "github.com/zorak1103/dbscripts/internal/errors"
	"github.com/zorak1103/dbscripts/internal/installer"
)

var (
	installProvider string
	installName     string
)

var installCmd = &cobra.Command{
	Use:   "install [project-dir]",
	Short: "Write start-database.sh and stop-database.sh into a project",
	Long: `Install writes two executable scripts into the project directory:

  - start-database.sh  rendered from the provider template, with the
                       placeholder "project1" replaced by the sanitized project name
  - stop-database.sh   copied verbatim (same file for every provider)

The project name is sanitized for Docker: every character outside
[a-zA-Z0-9_.-] becomes "_" and the result is lowercased. A name of "."
uses the last segment of the project directory instead.

Existing scripts are overwritten, so install can safely be re-run.`,
	Example: `  # Install postgres scripts into the current directory
  dbscripts install

  # Install mysql scripts into ./shop, naming the container "my_shop_-mysql"
  dbscripts install ./shop --provider mysql --name "My Shop!"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}

		opts, err := installOptions(cfg, args, installProvider, installName)
		if err != nil {
			return err
		}

		inst := installer.New(cfg.TemplateFS(), installer.WithLogger(logger))
		res, err := inst.Install(opts)
		if err != nil {
			var notFound *apperrors.TemplateNotFoundError
			if errors.As(err, &notFound) {
				return fmt.Errorf("%w\n\nRun 'dbscripts providers' to see which providers ship a start-database template", err)
			}
			return fmt.Errorf("failed to install database scripts: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Created %s\n", res.StartScript)
		fmt.Fprintf(out, "✅ Created %s\n", res.StopScript)
		fmt.Fprintf(out, "\n🐳 Container name: %s\n", res.ContainerName)
		fmt.Fprintln(out, "\n📝 Next steps:")
		fmt.Fprintln(out, "   1. Set DATABASE_URL in your project's .env")
		fmt.Fprintln(out, "   2. Run ./start-database.sh to start the database")
		fmt.Fprintln(out, "   3. Run ./stop-database.sh when you are done")

		return nil
	},
}

// installOptions merges positional args and flags over the configured defaults.
func installOptions(cfg *config.Config, args []string, providerFlag, nameFlag string) (installer.Options, error) {
	opts := installer.Options{
		ProjectDir:  ".",
		Provider:    cfg.Provider(),
		ProjectName: cfg.Install.ProjectName,
	}

	if len(args) > 0 {
		opts.ProjectDir = args[0]
	}

	if providerFlag != "" {
		p, err := installer.ParseProvider(providerFlag)
		if err != nil {
			return installer.Options{}, err
		}
		opts.Provider = p
	}

	if nameFlag != "" {
		opts.ProjectName = nameFlag
	}

	return opts, nil
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().StringVarP(&installProvider, "provider", "p", "", "database provider (default from config: install.provider)")
	installCmd.Flags().StringVarP(&installName, "name", "n", "", `project name used for the container ("." = project directory name)`)
}
