// Package installer writes the start-database.sh and stop-database.sh scripts
// into a scaffolded project.
package installer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/zorak1103/dbscripts/internal/errors"
	"github.com/zorak1103/dbscripts/internal/logging"
	"github.com/zorak1103/dbscripts/internal/projectpath"
	"github.com/zorak1103/dbscripts/internal/sanitize"
	"github.com/zorak1103/dbscripts/internal/templates"
)

// Placeholder is the literal token start templates use for the project name.
// Every template shipped for a provider must use exactly this token.
const Placeholder = "project1"

// CurrentDirName is the project name meaning "derive the name from the project directory".
const CurrentDirName = "."

// Output file names written into the project directory.
const (
	StartScriptName = "start-database.sh"
	StopScriptName  = "stop-database.sh"
)

// ScriptMode is the permission applied to both written scripts.
const ScriptMode fs.FileMode = 0o755

// Options describes one installer invocation.
type Options struct {
	ProjectDir  string
	Provider    Provider
	ProjectName string
}

// Result describes the files written by Install.
type Result struct {
	StartScript   string
	StopScript    string
	ProjectName   string // sanitized name substituted into the start script
	ContainerName string
}

// Installer materializes database container scripts from a template FS.
type Installer struct {
	templates fs.FS
	logger    *slog.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Installer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New creates an Installer reading templates from tmpl.
// tmpl must contain start-database/<provider>.sh files and start-database/stop-database.sh.
func New(tmpl fs.FS, opts ...Option) *Installer {
	i := &Installer{
		templates: tmpl,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install writes start-database.sh and stop-database.sh into opts.ProjectDir.
//
// The start script is rendered from the provider template with every occurrence
// of Placeholder replaced by the sanitized project name; the stop script is copied
// verbatim. Both end up with mode 0755. A missing provider template is reported as
// *apperrors.TemplateNotFoundError before anything is written. Later failures are
// *apperrors.ScriptError and leave already written files in place.
func (i *Installer) Install(opts Options) (*Result, error) {
	startSrc := templatePath(string(opts.Provider))
	if !validProviderName(string(opts.Provider)) {
		return nil, &apperrors.TemplateNotFoundError{Provider: string(opts.Provider), Path: startSrc, Err: fs.ErrNotExist}
	}

	scriptText, err := fs.ReadFile(i.templates, startSrc)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &apperrors.TemplateNotFoundError{Provider: string(opts.Provider), Path: startSrc, Err: err}
		}
		return nil, &apperrors.ScriptError{Op: apperrors.OpRead, Path: startSrc, Err: err}
	}

	name := EffectiveName(opts.ProjectDir, opts.ProjectName)
	sanitized := sanitize.Name(name)

	i.logger.Debug("rendering start script",
		"provider", opts.Provider,
		"template", startSrc,
		"project_name", name,
		"sanitized", sanitized,
		"placeholders", strings.Count(string(scriptText), Placeholder),
	)

	startDest := filepath.Join(opts.ProjectDir, StartScriptName)
	rendered := strings.ReplaceAll(string(scriptText), Placeholder, sanitized)
	if err := writeExecutable(startDest, []byte(rendered)); err != nil {
		return nil, err
	}
	i.logger.Debug("wrote script", "path", startDest)

	stopSrc := templatePath("stop-database")
	stopDest := filepath.Join(opts.ProjectDir, StopScriptName)
	if err := i.copyExecutable(stopSrc, stopDest); err != nil {
		return nil, err
	}
	i.logger.Debug("copied script", "from", stopSrc, "path", stopDest)

	return &Result{
		StartScript:   startDest,
		StopScript:    stopDest,
		ProjectName:   sanitized,
		ContainerName: sanitize.ContainerName(name, string(opts.Provider)),
	}, nil
}

// EffectiveName returns the project name to substitute: projectName itself,
// or the last segment of projectDir when projectName is CurrentDirName.
func EffectiveName(projectDir, projectName string) string {
	if projectName != CurrentDirName {
		return projectName
	}
	name, _ := projectpath.Parse(projectDir)
	return name
}

// Providers lists the providers that have a start template, sorted by name.
func (i *Installer) Providers() ([]Provider, error) {
	entries, err := fs.ReadDir(i.templates, templates.StartDatabaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates in %s: %w", templates.StartDatabaseDir, err)
	}

	var providers []Provider
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sh" || e.Name() == StopScriptName {
			continue
		}
		providers = append(providers, Provider(strings.TrimSuffix(e.Name(), ".sh")))
	}
	sort.Slice(providers, func(a, b int) bool { return providers[a] < providers[b] })

	return providers, nil
}

// validProviderName rejects names that would resolve outside start-database/
// or onto the shared stop script.
func validProviderName(name string) bool {
	if name == "" || name == "stop-database" || strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

func templatePath(name string) string {
	return path.Join(templates.StartDatabaseDir, name+".sh")
}

// writeExecutable creates or truncates dest with data and sets ScriptMode.
// WriteFile keeps the mode of an existing file and is subject to the umask,
// so the mode is always applied with Chmod afterwards.
func writeExecutable(dest string, data []byte) error {
	if err := os.WriteFile(dest, data, ScriptMode); err != nil { // nolint:gosec // scripts must be executable
		return &apperrors.ScriptError{Op: apperrors.OpWrite, Path: dest, Err: err}
	}
	if err := os.Chmod(dest, ScriptMode); err != nil {
		return &apperrors.ScriptError{Op: apperrors.OpChmod, Path: dest, Err: err}
	}
	return nil
}

// copyExecutable copies src from the template FS to dest byte-for-byte and sets ScriptMode.
func (i *Installer) copyExecutable(src, dest string) error {
	in, err := i.templates.Open(src)
	if err != nil {
		return &apperrors.ScriptError{Op: apperrors.OpRead, Path: src, Err: err}
	}
	// Read-only handle; a close error cannot affect the copied bytes.
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, ScriptMode) // nolint:gosec // scripts must be executable
	if err != nil {
		return &apperrors.ScriptError{Op: apperrors.OpWrite, Path: dest, Err: err}
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return &apperrors.ScriptError{Op: apperrors.OpCopy, Path: dest, Err: err}
	}
	if err := out.Close(); err != nil {
		return &apperrors.ScriptError{Op: apperrors.OpWrite, Path: dest, Err: err}
	}

	if err := os.Chmod(dest, ScriptMode); err != nil {
		return &apperrors.ScriptError{Op: apperrors.OpChmod, Path: dest, Err: err}
	}
	return nil
}
