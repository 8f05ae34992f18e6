// Package config handles keychainctl configuration: where its files live and
// which backends it uses.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the directory name under the config root.
	AppName = "keychainctl"

	// FileName is the config file inside Dir().
	FileName = "config.toml"

	// AuditFileName is the audit log inside Dir().
	AuditFileName = "audit.log"

	// EnvPrefix prefixes environment overrides, e.g. KEYCHAINCTL_BACKEND.
	EnvPrefix = "KEYCHAINCTL"

	// RootEnvVar overrides the config root directory.
	RootEnvVar = "XDG_CONFIG_HOME"
)

// Config is the effective configuration.
type Config struct {
	// Backend selects the secret store: security, keyring or system.
	Backend string `mapstructure:"backend" toml:"backend"`

	Security SecurityConfig `mapstructure:"security" toml:"security"`
	Identity IdentityConfig `mapstructure:"identity" toml:"identity"`
	Registry RegistryConfig `mapstructure:"registry" toml:"registry"`
	Keyring  KeyringConfig  `mapstructure:"keyring" toml:"keyring"`
	Audit    AuditConfig    `mapstructure:"audit" toml:"audit"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
	UI       UIConfig       `mapstructure:"ui" toml:"ui"`
}

// SecurityConfig configures the macOS security tool backend.
type SecurityConfig struct {
	Binary string `mapstructure:"binary" toml:"binary"`
}

// IdentityConfig configures account fallback resolution.
type IdentityConfig struct {
	// Whoami is run when neither --account nor $USER names the account.
	Whoami string `mapstructure:"whoami" toml:"whoami"`
}

// RegistryConfig configures the service index.
type RegistryConfig struct {
	// Driver is "text" (registry.txt) or "sqlite" (registry.db).
	Driver string `mapstructure:"driver" toml:"driver"`
	// Dir overrides the directory holding the registry; defaults to Dir().
	Dir string `mapstructure:"dir" toml:"dir,omitempty"`
}

// KeyringConfig configures the 99designs keyring backend.
type KeyringConfig struct {
	Backends []string `mapstructure:"backends" toml:"backends,omitempty"`
	FileDir  string   `mapstructure:"file_dir" toml:"file_dir,omitempty"`
}

// AuditConfig toggles the operation log.
type AuditConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled"`
}

// LogConfig configures diagnostics on stderr.
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
}

// UIConfig holds terminal styling preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0".."255") or "#RRGGBB".
	Accent string `mapstructure:"accent" toml:"accent,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:  "security",
		Security: SecurityConfig{Binary: "/usr/bin/security"},
		Identity: IdentityConfig{Whoami: "/usr/bin/whoami"},
		Registry: RegistryConfig{Driver: "text"},
		Log:      LogConfig{Level: "warn"},
	}
}

// Dir returns the configuration directory: $XDG_CONFIG_HOME/keychainctl when
// that variable is set and not blank, else ~/.config/keychainctl.
func Dir() (string, error) {
	return dirFrom(os.Getenv, os.UserHomeDir)
}

func dirFrom(getenv func(string) string, home func() (string, error)) (string, error) {
	if root := getenv(RootEnvVar); strings.TrimSpace(root) != "" {
		return filepath.Join(root, AppName), nil
	}
	h, err := home()
	if err != nil {
		return "", fmt.Errorf("cannot locate home directory: %w", err)
	}
	if strings.TrimSpace(h) == "" {
		return "", errors.New("cannot locate home directory: HOME not set")
	}
	return filepath.Join(h, ".config", AppName), nil
}

// DefaultPath returns Dir()/config.toml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// RegistryDir returns the directory holding the registry.
func (c *Config) RegistryDir(configDir string) string {
	if strings.TrimSpace(c.Registry.Dir) != "" {
		return c.Registry.Dir
	}
	return configDir
}

// Load reads the config file at path (when it exists) and applies
// KEYCHAINCTL_* environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(path) != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("backend", d.Backend)
	v.SetDefault("security.binary", d.Security.Binary)
	v.SetDefault("identity.whoami", d.Identity.Whoami)
	v.SetDefault("registry.driver", d.Registry.Driver)
	v.SetDefault("registry.dir", d.Registry.Dir)
	v.SetDefault("keyring.backends", d.Keyring.Backends)
	v.SetDefault("keyring.file_dir", d.Keyring.FileDir)
	v.SetDefault("audit.enabled", d.Audit.Enabled)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("ui.accent", d.UI.Accent)
}
