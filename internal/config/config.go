// Package config loads credvault settings from an optional YAML file and
// CREDVAULT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	AppName   = "credvault"
	EnvPrefix = "CREDVAULT"
	// EnvConfigFile names the config file when --config is not given
	EnvConfigFile = "CREDVAULT_CONFIG"
)

// Config is the full configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Key     KeyConfig     `mapstructure:"key" yaml:"key"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// StorageConfig locates the encrypted blob
type StorageConfig struct {
	Dir      string `mapstructure:"dir" yaml:"dir"`
	Backend  string `mapstructure:"backend" yaml:"backend"`     // file, bolt
	BlobFile string `mapstructure:"blob_file" yaml:"blob_file"` // relative to dir unless absolute
}

// KeyConfig locates the master key
type KeyConfig struct {
	Source         string `mapstructure:"source" yaml:"source"` // file, keyring
	File           string `mapstructure:"file" yaml:"file"`     // relative to storage.dir unless absolute
	KeyringAccount string `mapstructure:"keyring_account" yaml:"keyring_account"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // console, json
}

// BlobPath returns the absolute blob location
func (c *Config) BlobPath() string {
	name := c.Storage.BlobFile
	if name == "" {
		name = defaultBlobFile(c.Storage.Backend)
	}
	return resolve(c.Storage.Dir, name)
}

// KeyPath returns the absolute key file location
func (c *Config) KeyPath() string {
	return resolve(c.Storage.Dir, c.Key.File)
}

func resolve(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func defaultBlobFile(backend string) string {
	if backend == "bolt" {
		return "passwords.db"
	}
	return "passwords.enc"
}

// DefaultDir returns the per-user data directory
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(dir, AppName)
}

// DefaultConfigPath returns the config file read when none is specified
func DefaultConfigPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.dir", DefaultDir())
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.blob_file", "")
	v.SetDefault("key.source", "file")
	v.SetDefault("key.file", "secret.key")
	v.SetDefault("key.keyring_account", "default")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

// Default returns the configuration used when no file or environment overrides exist
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Unmarshalling plain defaults cannot fail
	_ = v.Unmarshal(cfg)
	return cfg
}

// Load reads configuration. Priority: environment > config file > defaults.
// An explicit configPath must exist; the default path is optional.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := configPath != ""
	if !explicit {
		configPath = os.Getenv(EnvConfigFile)
		explicit = configPath != ""
	}
	if !explicit {
		configPath = DefaultConfigPath()
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if explicit || !missing {
			return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Write saves cfg as YAML at path, creating parent directories
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
