package installer

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/zorak1103/dbscripts/internal/errors"
	"github.com/zorak1103/dbscripts/internal/logging"
	"github.com/zorak1103/dbscripts/internal/sanitize"
	"github.com/zorak1103/dbscripts/internal/templates"
)

const (
	testPostgresTemplate = "#!/usr/bin/env bash\nDB_CONTAINER_NAME=\"project1-postgres\"\ndocker run -e POSTGRES_DB=project1 --name $DB_CONTAINER_NAME postgres\n"
	testMySQLTemplate    = "#!/usr/bin/env bash\nDB_CONTAINER_NAME=\"project1-mysql\"\n"
	testStopTemplate     = "#!/usr/bin/env bash\n# reads the container name from start-database.sh\r\n\x00binary-safe\n"
)

func testTemplates() fstest.MapFS {
	return fstest.MapFS{
		"start-database/postgres.sh":      {Data: []byte(testPostgresTemplate)},
		"start-database/mysql.sh":         {Data: []byte(testMySQLTemplate)},
		"start-database/stop-database.sh": {Data: []byte(testStopTemplate)},
		"start-database/README.md":        {Data: []byte("not a template")},
	}
}

// failingFS returns a fixed error when opening selected paths.
type failingFS struct {
	base fs.FS
	fail map[string]error
}

func (f failingFS) Open(name string) (fs.File, error) {
	if err, ok := f.fail[name]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return f.base.Open(name)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func assertExecutable(t *testing.T, path string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits are not supported on Windows")
	}
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, ScriptMode, info.Mode().Perm(), "mode of %s", path)
	assert.Equal(t, fs.FileMode(0o111), info.Mode().Perm()&0o111, "execute bits of %s", path)
}

func TestInstall_WritesScripts(t *testing.T) {
	dir := t.TempDir()
	inst := New(testTemplates())

	res, err := inst.Install(Options{ProjectDir: dir, Provider: ProviderPostgres, ProjectName: "My App!"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, StartScriptName), res.StartScript)
	assert.Equal(t, filepath.Join(dir, StopScriptName), res.StopScript)
	assert.Equal(t, "my_app_", res.ProjectName)
	assert.Equal(t, "my_app_-postgres", res.ContainerName)

	start := readFile(t, res.StartScript)
	assert.NotContains(t, start, Placeholder)
	assert.Equal(t, 2, strings.Count(start, "my_app_"))
	assert.Equal(t, strings.ReplaceAll(testPostgresTemplate, Placeholder, "my_app_"), start)

	assert.Equal(t, testStopTemplate, readFile(t, res.StopScript))

	assertExecutable(t, res.StartScript)
	assertExecutable(t, res.StopScript)
}

func TestInstall_CurrentDirectoryName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "My-Shop")
	require.NoError(t, os.Mkdir(dir, 0o750))

	res, err := New(testTemplates()).Install(Options{ProjectDir: dir, Provider: ProviderMySQL, ProjectName: CurrentDirName})
	require.NoError(t, err)

	assert.Equal(t, sanitize.Name("My-Shop"), res.ProjectName)
	assert.Equal(t, "my-shop", res.ProjectName)
	assert.Contains(t, readFile(t, res.StartScript), `DB_CONTAINER_NAME="my-shop-mysql"`)
}

func TestInstall_StopScriptIndependentOfProvider(t *testing.T) {
	for _, provider := range []Provider{ProviderPostgres, ProviderMySQL} {
		t.Run(string(provider), func(t *testing.T) {
			dir := t.TempDir()
			res, err := New(testTemplates()).Install(Options{ProjectDir: dir, Provider: provider, ProjectName: "app"})
			require.NoError(t, err)

			got, err := os.ReadFile(res.StopScript)
			require.NoError(t, err)
			assert.True(t, bytes.Equal([]byte(testStopTemplate), got), "stop script must be a byte-for-byte copy")
		})
	}
}

func TestInstall_TemplateWithoutPlaceholder(t *testing.T) {
	tmpl := testTemplates()
	tmpl["start-database/postgres.sh"] = &fstest.MapFile{Data: []byte("#!/bin/sh\necho static\n")}

	dir := t.TempDir()
	res, err := New(tmpl).Install(Options{ProjectDir: dir, Provider: ProviderPostgres, ProjectName: "app"})
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho static\n", readFile(t, res.StartScript))
}

func TestInstall_OverwritesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	start := filepath.Join(dir, StartScriptName)
	stop := filepath.Join(dir, StopScriptName)
	require.NoError(t, os.WriteFile(start, []byte(strings.Repeat("old content\n", 100)), 0o600))
	require.NoError(t, os.WriteFile(stop, []byte(strings.Repeat("old content\n", 100)), 0o600))

	res, err := New(testTemplates()).Install(Options{ProjectDir: dir, Provider: ProviderMySQL, ProjectName: "app"})
	require.NoError(t, err)

	assert.Equal(t, strings.ReplaceAll(testMySQLTemplate, Placeholder, "app"), readFile(t, res.StartScript))
	assert.Equal(t, testStopTemplate, readFile(t, res.StopScript))
	assertExecutable(t, start)
	assertExecutable(t, stop)
}

func TestInstall_Rerun(t *testing.T) {
	dir := t.TempDir()
	inst := New(testTemplates())

	first, err := inst.Install(Options{ProjectDir: dir, Provider: ProviderPostgres, ProjectName: "app"})
	require.NoError(t, err)
	firstContent := readFile(t, first.StartScript)

	second, err := inst.Install(Options{ProjectDir: dir, Provider: ProviderPostgres, ProjectName: "app"})
	require.NoError(t, err)
	assert.Equal(t, firstContent, readFile(t, second.StartScript))
}

func TestInstall_TemplateNotFound(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
	}{
		{name: "provider without template", provider: ProviderSQLite},
		{name: "unknown provider", provider: "oracle"},
		{name: "empty provider", provider: ""},
		{name: "path traversal", provider: "../start-database/postgres"},
		{name: "stop script as provider", provider: "stop-database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			_, err := New(testTemplates()).Install(Options{ProjectDir: dir, Provider: tt.provider, ProjectName: "app"})
			require.Error(t, err)

			var notFound *apperrors.TemplateNotFoundError
			require.True(t, errors.As(err, &notFound), "expected TemplateNotFoundError, got %T", err)
			assert.Equal(t, string(tt.provider), notFound.Provider)
			assert.ErrorIs(t, err, fs.ErrNotExist)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "no files may be written when the template is missing")
		})
	}
}

func TestInstall_ReadFailure(t *testing.T) {
	tmpl := failingFS{
		base: testTemplates(),
		fail: map[string]error{"start-database/postgres.sh": fs.ErrPermission},
	}
	dir := t.TempDir()

	_, err := New(tmpl).Install(Options{ProjectDir: dir, Provider: ProviderPostgres, ProjectName: "app"})

	var scriptErr *apperrors.ScriptError
	require.True(t, errors.As(err, &scriptErr))
	assert.Equal(t, apperrors.OpRead, scriptErr.Op)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestInstall_MissingProjectDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := New(testTemplates()).Install(Options{ProjectDir: dir, Provider: ProviderPostgres, ProjectName: "app"})

	var scriptErr *apperrors.ScriptError
	require.True(t, errors.As(err, &scriptErr))
	assert.Equal(t, apperrors.OpWrite, scriptErr.Op)
	assert.Equal(t, filepath.Join(dir, StartScriptName), scriptErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestInstall_MissingStopTemplateKeepsStartScript(t *testing.T) {
	tmpl := testTemplates()
	delete(tmpl, "start-database/stop-database.sh")
	dir := t.TempDir()

	_, err := New(tmpl).Install(Options{ProjectDir: dir, Provider: ProviderPostgres, ProjectName: "app"})

	var scriptErr *apperrors.ScriptError
	require.True(t, errors.As(err, &scriptErr))
	assert.Equal(t, apperrors.OpRead, scriptErr.Op)
	assert.FileExists(t, filepath.Join(dir, StartScriptName))
	assert.NoFileExists(t, filepath.Join(dir, StopScriptName))
}

func TestInstall_EmbeddedTemplates(t *testing.T) {
	for _, provider := range []Provider{ProviderPostgres, ProviderMySQL} {
		t.Run(string(provider), func(t *testing.T) {
			dir := t.TempDir()
			res, err := New(templates.Scripts()).Install(Options{ProjectDir: dir, Provider: provider, ProjectName: "Acme Store"})
			require.NoError(t, err)

			start := readFile(t, res.StartScript)
			assert.NotContains(t, start, Placeholder)
			assert.Contains(t, start, `DB_CONTAINER_NAME="acme_store-`+string(provider)+`"`)

			stop, err := fs.ReadFile(templates.Scripts(), "start-database/stop-database.sh")
			require.NoError(t, err)
			assert.Equal(t, string(stop), readFile(t, res.StopScript))
		})
	}
}

func TestInstall_LogsDebugSteps(t *testing.T) {
	var buf bytes.Buffer
	inst := New(testTemplates(), WithLogger(logging.New(&buf, true)))

	_, err := inst.Install(Options{ProjectDir: t.TempDir(), Provider: ProviderPostgres, ProjectName: "app"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "rendering start script")
	assert.Contains(t, out, "placeholders=2")
	assert.Contains(t, out, "wrote script")
	assert.Contains(t, out, "copied script")
}

func TestProviders(t *testing.T) {
	providers, err := New(testTemplates()).Providers()
	require.NoError(t, err)
	assert.Equal(t, []Provider{ProviderMySQL, ProviderPostgres}, providers)
}

func TestProviders_EmbeddedTemplates(t *testing.T) {
	providers, err := New(templates.Scripts()).Providers()
	require.NoError(t, err)
	assert.Equal(t, []Provider{ProviderMySQL, ProviderPostgres}, providers)
}

func TestProviders_MissingDirectory(t *testing.T) {
	_, err := New(fstest.MapFS{}).Providers()
	assert.Error(t, err)
}

func TestEffectiveName(t *testing.T) {
	assert.Equal(t, "my-app", EffectiveName("/home/user/my-app", CurrentDirName))
	assert.Equal(t, "My App!", EffectiveName("/home/user/my-app", "My App!"))
	assert.Equal(t, "my_app_", sanitize.Name(EffectiveName("/srv/x", "My App!")))
	assert.Equal(t, sanitize.Name("my-app"), sanitize.Name(EffectiveName("/home/user/my-app/", CurrentDirName)))
}
