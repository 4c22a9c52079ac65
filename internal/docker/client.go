// Package docker provides a client for interacting with the Docker API.
package docker

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	apperrors "github.com/zorak1103/dbscripts/internal/errors"
)

// Common errors
var (
	ErrConnectionFailed = errors.New("docker connection failed")
	ErrNotFound         = errors.New("container not found")
)

// Client defines the interface for Docker client operations.
// All methods accept context.Context for cancellation and timeout support.
type Client interface {
	// Ping verifies the Docker daemon is accessible. Returns error if connection fails.
	Ping(ctx context.Context) error
	// Close closes the Docker client connection and releases resources.
	Close() error

	// ListContainers lists containers matching the provided filter options.
	//
	// Example usage with filters:
	//   opts := FilterOptions{
	//       IncludeAll:  true,                    // Include stopped containers
	//       NamePattern: "^my-app-postgres$",     // Match the project's database container
	//   }
	//   containers, err := client.ListContainers(ctx, opts)
	ListContainers(ctx context.Context, opts FilterOptions) ([]Container, error)
}

// apiClient is the subset of the Docker SDK client the wrapper calls.
type apiClient interface {
	Ping(ctx context.Context) (types.Ping, error)
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	Close() error
}

// dockerClientWrapper wraps the Docker client to implement our interface
type dockerClientWrapper struct {
	cli        apiClient
	socketPath string
}

// Compile-time verification that dockerClientWrapper implements Client
var _ Client = (*dockerClientWrapper)(nil)

// NewClient connects to the Docker daemon at socketPath (or default if empty).
func NewClient(socketPath string) (Client, error) {
	opts := []client.Opt{
		client.WithAPIVersionNegotiation(),
	}

	if socketPath != "" {
		opts = append(opts, client.WithHost(socketPath))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, &apperrors.DockerConnectionError{SocketPath: socketPath, Operation: "NewClient", Err: err}
	}

	return newClientWithAPI(cli, socketPath), nil
}

func newClientWithAPI(cli apiClient, socketPath string) *dockerClientWrapper {
	return &dockerClientWrapper{cli: cli, socketPath: socketPath}
}

func (w *dockerClientWrapper) Ping(ctx context.Context) error {
	if _, err := w.cli.Ping(ctx); err != nil {
		return &apperrors.DockerConnectionError{
			SocketPath: w.socketPath,
			Operation:  "Ping",
			Err:        fmt.Errorf("%w: %w", ErrConnectionFailed, err),
		}
	}
	return nil
}

func (w *dockerClientWrapper) Close() error {
	return w.cli.Close()
}

func (w *dockerClientWrapper) ListContainers(ctx context.Context, opts FilterOptions) ([]Container, error) {
	summaries, err := w.cli.ContainerList(ctx, container.ListOptions{All: opts.IncludeAll})
	if err != nil {
		return nil, &apperrors.DockerConnectionError{SocketPath: w.socketPath, Operation: "ListContainers", Err: err}
	}

	return filterContainers(summaries, opts.NamePattern)
}

// filterContainers converts API summaries and keeps those whose name matches pattern.
func filterContainers(summaries []container.Summary, pattern string) ([]Container, error) {
	var nameFilter *regexp.Regexp
	if pattern != "" {
		var err error
		nameFilter, err = regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid name pattern '%s': %w", pattern, err)
		}
	}

	var result []Container
	for _, ctr := range summaries {
		// Extract container name (remove leading slash)
		name := ""
		if len(ctr.Names) > 0 {
			name = ctr.Names[0]
			if name != "" && name[0] == '/' {
				name = name[1:]
			}
		}

		if nameFilter != nil && !nameFilter.MatchString(name) {
			continue
		}

		result = append(result, Container{
			ID:     ctr.ID,
			Name:   name,
			State:  string(ctr.State),
			Status: ctr.Status,
			Image:  ctr.Image,
			Labels: ctr.Labels,
		})
	}

	return result, nil
}

// FindByName returns the containers, running or stopped, whose name is exactly name.
// It returns ErrNotFound when none exist.
func FindByName(ctx context.Context, c Client, name string) ([]Container, error) {
	containers, err := c.ListContainers(ctx, FilterOptions{
		IncludeAll:  true,
		NamePattern: "^" + regexp.QuoteMeta(name) + "$",
	})
	if err != nil {
		return nil, err
	}
	if len(containers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return containers, nil
}
