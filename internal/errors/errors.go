// Package apperrors provides domain-specific error types for dbscripts.
// These error types include contextual information to aid debugging and error reporting.
package apperrors

import "fmt"

// Script operations reported by ScriptError.
const (
	OpRead  = "read"
	OpWrite = "write"
	OpChmod = "chmod"
	OpCopy  = "copy"
)

// ConfigurationError represents configuration-related errors.
// It includes the configuration file path and specific key that caused the error.
type ConfigurationError struct {
	ConfigPath string // Path to the configuration file
	Key        string // Configuration key that caused the error
	Err        error  // Underlying error
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration error in %s (key: %s): %v", e.ConfigPath, e.Key, e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %v", e.ConfigPath, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// TemplateNotFoundError is returned when no start script template exists for a provider.
// It unwraps to fs.ErrNotExist.
type TemplateNotFoundError struct {
	Provider string // Requested database provider
	Path     string // Template path inside the template directory
	Err      error  // Underlying error
}

// Error implements the error interface for TemplateNotFoundError.
func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("no start-database template for provider %q (%s): %v", e.Provider, e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *TemplateNotFoundError) Unwrap() error {
	return e.Err
}

// ScriptError represents a failure while reading, writing or marking a script executable.
type ScriptError struct {
	Op   string // One of OpRead, OpWrite, OpChmod, OpCopy
	Path string // File the operation targeted
	Err  error  // Underlying error
}

// Error implements the error interface for ScriptError.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *ScriptError) Unwrap() error {
	return e.Err
}

// DockerConnectionError represents Docker connection and operation errors.
// It includes the socket path and the operation that failed.
type DockerConnectionError struct {
	SocketPath string // Docker socket path (e.g., /var/run/docker.sock)
	Operation  string // Operation that failed (e.g., "Ping", "ListContainers")
	Err        error  // Underlying error
}

// Error implements the error interface for DockerConnectionError.
func (e *DockerConnectionError) Error() string {
	if e.SocketPath != "" {
		return fmt.Sprintf("docker %s failed (socket: %s): %v", e.Operation, e.SocketPath, e.Err)
	}
	return fmt.Sprintf("docker %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *DockerConnectionError) Unwrap() error {
	return e.Err
}
