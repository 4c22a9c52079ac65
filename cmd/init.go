package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/zorak1103/dbscripts/internal/installer"
	"github.com/zorak1103/dbscripts/internal/templates"
)

var (
	force bool
)

// templatesExportDir is where init copies the built-in templates for customization.
const templatesExportDir = "templates"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a dbscripts configuration and editable templates",
	Long: `Init creates the configuration files and a copy of the built-in templates.

This command will create:
  - dbscripts.yaml (sample configuration file)
  - .env (environment variable overrides)
  - templates/start-database/ (editable copies of the built-in scripts)

Point templates.dir in dbscripts.yaml at ./templates to use the edited copies.
Start templates must keep the "project1" placeholder where the project name goes.`,
	Example: `  # Initialize in current directory
  dbscripts init

  # Force overwrite existing files
  dbscripts init --force`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "🔧 Initializing dbscripts...")

		files := []struct {
			name    string
			content []byte
		}{
			{"dbscripts.yaml", templates.ConfigYAML},
			{".env", templates.EnvFile},
		}

		for _, f := range files {
			if err := writeIfAbsent(out, f.name, f.content, 0o600); err != nil {
				return err
			}
		}

		if err := exportTemplates(out, templates.Scripts(), templatesExportDir); err != nil {
			return err
		}

		fmt.Fprintln(out, "\n🎉 Initialization complete!")
		fmt.Fprintln(out, "\n📝 Next steps:")
		fmt.Fprintln(out, "   1. Edit dbscripts.yaml to pick your default provider")
		fmt.Fprintln(out, "   2. Optionally set templates.dir: ./templates and edit the scripts")
		fmt.Fprintln(out, "   3. Run 'dbscripts install <project-dir>' to write the scripts")

		return nil
	},
}

// writeIfAbsent writes content to name unless it exists and --force is not set.
func writeIfAbsent(out io.Writer, name string, content []byte, mode os.FileMode) error {
	if _, err := os.Stat(name); err == nil && !force {
		fmt.Fprintf(out, "⚠️  Skipping %s (already exists, use --force to overwrite)\n", name)
		return nil
	}

	if err := os.WriteFile(name, content, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Chmod(name, mode); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", name, err)
	}

	fmt.Fprintf(out, "✅ Created %s\n", name)
	return nil
}

// exportTemplates copies every script in src under destDir, keeping the
// start-database/ layout so destDir can be used as templates.dir.
func exportTemplates(out io.Writer, src fs.FS, destDir string) error {
	return fs.WalkDir(src, templates.StartDatabaseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		target := filepath.Join(destDir, filepath.FromSlash(p))
		if d.IsDir() {
			if err := os.MkdirAll(target, 0o750); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			return nil
		}

		if path.Ext(p) != ".sh" {
			return nil
		}

		data, err := fs.ReadFile(src, p)
		if err != nil {
			return fmt.Errorf("failed to read embedded template %s: %w", p, err)
		}
		return writeIfAbsent(out, target, data, installer.ScriptMode)
	})
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration files and templates")
}
