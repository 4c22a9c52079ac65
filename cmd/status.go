package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/zorak1103/dbscripts/internal/docker"
	"github.com/zorak1103/dbscripts/internal/installer"
	"github.com/zorak1103/dbscripts/internal/sanitize"
)

var (
	statusProvider string
	statusName     string
	statusTimeout  time.Duration
)

// newDockerClient is replaced in tests.
var newDockerClient = docker.NewClient

var statusCmd = &cobra.Command{
	Use:   "status [project-dir]",
	Short: "Show the state of the project's database container",
	Long: `Status asks the Docker daemon for the container that start-database.sh
creates for this project and prints its state.

The container name is derived exactly like install does it:
<sanitized project name>-<provider>.`,
	Example: `  # Status of the postgres container for the current directory
  dbscripts status

  # Status of the mysql container for ./shop
  dbscripts status ./shop --provider mysql`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}

		opts, err := installOptions(cfg, args, statusProvider, statusName)
		if err != nil {
			return err
		}
		containerName := sanitize.ContainerName(
			installer.EffectiveName(opts.ProjectDir, opts.ProjectName),
			opts.Provider.String(),
		)

		client, err := newDockerClient(cfg.Docker.SocketPath)
		if err != nil {
			return fmt.Errorf("failed to create Docker client: %w", err)
		}
		// Close error not actionable after the lookup has completed
		defer func() { _ = client.Close() }()

		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		ctx, cancel := context.WithTimeout(parent, statusTimeout)
		defer cancel()

		if err := client.Ping(ctx); err != nil {
			return fmt.Errorf("docker daemon not reachable at %s: %w", cfg.Docker.SocketPath, err)
		}

		logger.Debug("looking up container", "name", containerName, "socket", cfg.Docker.SocketPath)

		out := cmd.OutOrStdout()
		containers, err := docker.FindByName(ctx, client, containerName)
		if errors.Is(err, docker.ErrNotFound) {
			fmt.Fprintf(out, "⚠️  No container named %s\n", containerName)
			fmt.Fprintln(out, "   Run ./start-database.sh to create it")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to look up container %s: %w", containerName, err)
		}

		fmt.Fprintln(out, renderContainers(containers))
		return nil
	},
}

func renderContainers(containers []docker.Container) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Container", "State", "Status", "Image", "ID"})
	for _, c := range containers {
		state := "⏹️  " + c.State
		if c.IsRunning() {
			state = "✅ " + c.State
		}
		tw.AppendRow(table.Row{c.Name, state, c.Status, c.Image, shortID(c.ID)})
	}
	return tw.Render()
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusProvider, "provider", "p", "", "database provider (default from config: install.provider)")
	statusCmd.Flags().StringVarP(&statusName, "name", "n", "", `project name used for the container ("." = project directory name)`)
	statusCmd.Flags().DurationVar(&statusTimeout, "timeout", 10*time.Second, "timeout for Docker API calls")
}
