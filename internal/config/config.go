// Package config handles configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	apperrors "github.com/zorak1103/dbscripts/internal/errors"
	"github.com/zorak1103/dbscripts/internal/installer"
	"github.com/zorak1103/dbscripts/internal/templates"
)

// EnvPrefix is the prefix for environment variable overrides (DBSCRIPTS_INSTALL_PROVIDER, ...).
const EnvPrefix = "DBSCRIPTS"

// Common errors
var (
	ErrUnknownProvider = errors.New("unknown database provider")
	ErrTemplateDir     = errors.New("template directory not usable")
)

// Config represents the application configuration
type Config struct {
	Templates TemplatesConfig `mapstructure:"templates"`
	Install   InstallConfig   `mapstructure:"install"`
	Docker    DockerConfig    `mapstructure:"docker"`

	// ConfigFilePath stores the path to the loaded config file (not marshaled from YAML)
	ConfigFilePath string `mapstructure:"-"`
}

// TemplatesConfig points at the base template directory.
type TemplatesConfig struct {
	// Dir holds start-database/<provider>.sh and start-database/stop-database.sh.
	// Empty selects the embedded templates.
	Dir string `mapstructure:"dir"`
}

// InstallConfig holds defaults for the install command
type InstallConfig struct {
	Provider    string `mapstructure:"provider"`
	ProjectName string `mapstructure:"project_name"`
}

// DockerConfig contains Docker-specific settings
type DockerConfig struct {
	SocketPath string `mapstructure:"socket_path"`
}

// autoDetectDockerSocket determines the Docker socket path based on environment and platform.
func autoDetectDockerSocket() string {
	if os.Getenv("DOCKER_HOST") != "" {
		return os.Getenv("DOCKER_HOST")
	}
	// Check for Unix socket
	if _, err := os.Stat("/var/run/docker.sock"); err == nil {
		return "unix:///var/run/docker.sock"
	}
	// Default to Windows named pipe if Unix socket not found
	return "npipe:////./pipe/docker_engine"
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("dbscripts")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/dbscripts")
		v.AddConfigPath("/etc/dbscripts")
	}

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			configFile := v.ConfigFileUsed()
			if configFile == "" {
				configFile = configPath
			}
			return nil, fmt.Errorf("error reading config file from %s: %w", configFile, err)
		}
		// Config file not found; using defaults and env vars
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		configFile := v.ConfigFileUsed()
		if configFile == "" {
			configFile = "(using defaults and environment variables)"
		}
		return nil, fmt.Errorf("error unmarshaling config from %s: %w", configFile, err)
	}

	cfg.ConfigFilePath = v.ConfigFileUsed()

	if cfg.Docker.SocketPath == "" {
		cfg.Docker.SocketPath = autoDetectDockerSocket()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Empty values are still registered so AutomaticEnv can override them.
	v.SetDefault("templates.dir", "")

	v.SetDefault("install.provider", string(installer.ProviderPostgres))
	v.SetDefault("install.project_name", installer.CurrentDirName)

	v.SetDefault("docker.socket_path", "")
}

// Validate ensures all required fields are set and values are within valid ranges.
func (c *Config) Validate() error {
	configSource := c.ConfigFilePath
	if configSource == "" {
		configSource = "(defaults/environment)"
	}

	if _, err := installer.ParseProvider(c.Install.Provider); err != nil {
		return &apperrors.ConfigurationError{
			ConfigPath: configSource,
			Key:        "install.provider",
			Err:        fmt.Errorf("%w: %w", ErrUnknownProvider, err),
		}
	}

	if c.Install.ProjectName == "" {
		return &apperrors.ConfigurationError{
			ConfigPath: configSource,
			Key:        "install.project_name",
			Err:        errors.New("must not be empty (use \".\" to derive it from the project directory)"),
		}
	}

	if c.Docker.SocketPath == "" {
		return &apperrors.ConfigurationError{
			ConfigPath: configSource,
			Key:        "docker.socket_path",
			Err:        errors.New("is required"),
		}
	}

	return c.validateTemplateDir(configSource)
}

func (c *Config) validateTemplateDir(configSource string) error {
	if c.Templates.Dir == "" {
		return nil
	}

	info, err := os.Stat(c.Templates.Dir)
	if err != nil {
		return &apperrors.ConfigurationError{
			ConfigPath: configSource,
			Key:        "templates.dir",
			Err:        fmt.Errorf("%w: %w", ErrTemplateDir, err),
		}
	}
	if !info.IsDir() {
		return &apperrors.ConfigurationError{
			ConfigPath: configSource,
			Key:        "templates.dir",
			Err:        fmt.Errorf("%w: %s is not a directory", ErrTemplateDir, c.Templates.Dir),
		}
	}
	return nil
}

// Provider returns the configured default provider.
// Validate guarantees it parses.
func (c *Config) Provider() installer.Provider {
	p, _ := installer.ParseProvider(c.Install.Provider)
	return p
}

// TemplateFS returns the base template directory as an fs.FS.
func (c *Config) TemplateFS() fs.FS {
	if c.Templates.Dir == "" {
		return templates.Scripts()
	}
	return os.DirFS(c.Templates.Dir)
}

// TemplateSource describes where templates are read from, for display.
func (c *Config) TemplateSource() string {
	if c.Templates.Dir == "" {
		return "(embedded)"
	}
	return c.Templates.Dir
}
