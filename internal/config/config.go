// Package config loads deck settings from ~/.deck/config.toml with DECK_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	Dir        = ".deck"
	fileName   = "config"
	fileType   = "toml"
	envPrefix  = "DECK"
	DriverToml = "toml"
	DriverPg   = "postgres"

	SecretsPass = "pass"
	SecretsFile = "file"
)

type Config struct {
	Backend  BackendConfig  `mapstructure:"backend"`
	Database DatabaseConfig `mapstructure:"database"`
	Secrets  SecretsConfig  `mapstructure:"secrets"`
	Log      LogConfig      `mapstructure:"log"`
	Stream   StreamConfig   `mapstructure:"stream"`
}

type BackendConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URL    string `mapstructure:"url"`
	Path   string `mapstructure:"path"`
}

type SecretsConfig struct {
	// Backend is "pass" (with file fallback) or "file".
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type StreamConfig struct {
	StatusTimeout       time.Duration `mapstructure:"status_timeout"`
	ReconnectMaxElapsed time.Duration `mapstructure:"reconnect_max_elapsed"`
}

// Load reads the config file if present, applies environment overrides and
// validates the result. v is left configured so adapters can read from it.
func Load(v *viper.Viper) (Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, Dir)

	setDefaults(v, configDir)

	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("backend.url", "http://localhost:8000/api")
	v.SetDefault("backend.timeout", 30*time.Second)
	v.SetDefault("database.driver", DriverToml)
	v.SetDefault("database.url", "")
	v.SetDefault("database.path", filepath.Join(configDir, "db.toml"))
	v.SetDefault("secrets.backend", SecretsPass)
	v.SetDefault("secrets.dir", filepath.Join(configDir, "secrets"))
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("stream.status_timeout", 10*time.Second)
	v.SetDefault("stream.reconnect_max_elapsed", time.Minute)
}

func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Backend.URL) == "" {
		errs = append(errs, errors.New("backend.url is required"))
	}
	switch c.Database.Driver {
	case DriverToml:
		if strings.TrimSpace(c.Database.Path) == "" {
			errs = append(errs, errors.New("database.path is required for the toml driver"))
		}
	case DriverPg:
		if strings.TrimSpace(c.Database.URL) == "" {
			errs = append(errs, errors.New("database.url is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver %q must be %q or %q", c.Database.Driver, DriverToml, DriverPg))
	}
	switch c.Secrets.Backend {
	case SecretsPass, SecretsFile:
	default:
		errs = append(errs, fmt.Errorf("secrets.backend %q must be %q or %q", c.Secrets.Backend, SecretsPass, SecretsFile))
	}
	if c.Stream.StatusTimeout < 0 || c.Stream.ReconnectMaxElapsed < 0 {
		errs = append(errs, errors.New("stream timeouts must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}
