// pkg/core/config.go
package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. INITIO_RETRY_ATTEMPTS.
const EnvPrefix = "INITIO"

// DefaultCatalogURL is where the published catalog lives.
const DefaultCatalogURL = "https://raw.githubusercontent.com/UriCaBa/Initio/main/catalog.json"

// Config holds initio configuration
type Config struct {
	Debug    bool          `mapstructure:"debug"`
	LogLevel string        `mapstructure:"loglevel"`
	Winget   WingetConfig  `mapstructure:"winget"`
	Shell    ShellConfig   `mapstructure:"shell"`
	Timeouts TimeoutConfig `mapstructure:"timeouts"`
	Retry    RetryConfig   `mapstructure:"retry"`
	Catalog  CatalogConfig `mapstructure:"catalog"`
	State    StateConfig   `mapstructure:"state"`
	Setup    SetupConfig   `mapstructure:"setup"`
}

type WingetConfig struct {
	Path   string `mapstructure:"path"`
	Silent bool   `mapstructure:"silent"`
}

type ShellConfig struct {
	Path string `mapstructure:"path"`
}

// TimeoutConfig bounds every external invocation.
type TimeoutConfig struct {
	Version       time.Duration `mapstructure:"version"`
	Install       time.Duration `mapstructure:"install"`
	List          time.Duration `mapstructure:"list"`
	Catalog       time.Duration `mapstructure:"catalog"`
	Detect        time.Duration `mapstructure:"detect"`
	Remove        time.Duration `mapstructure:"remove"`
	VerifyRemoved time.Duration `mapstructure:"verify_removed"`
}

type RetryConfig struct {
	Attempts int           `mapstructure:"attempts"`
	Backoff  time.Duration `mapstructure:"backoff"`
}

type CatalogConfig struct {
	URL       string `mapstructure:"url"`
	CachePath string `mapstructure:"cache_path"`
	Retries   int    `mapstructure:"retries"`
}

type StateConfig struct {
	Path string `mapstructure:"path"`
}

type SetupConfig struct {
	Path string `mapstructure:"path"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	dataDir := AppDataDir()
	return &Config{
		LogLevel: "info",
		Winget: WingetConfig{
			Path:   "winget",
			Silent: true,
		},
		Shell: ShellConfig{
			Path: "powershell.exe",
		},
		Timeouts: TimeoutConfig{
			Version:       30 * time.Second,
			Install:       15 * time.Minute,
			List:          15 * time.Second,
			Catalog:       5 * time.Second,
			Detect:        30 * time.Second,
			Remove:        60 * time.Second,
			VerifyRemoved: 10 * time.Second,
		},
		Retry: RetryConfig{
			Attempts: 2,
			Backoff:  4 * time.Second,
		},
		Catalog: CatalogConfig{
			URL:       DefaultCatalogURL,
			CachePath: filepath.Join(dataDir, "catalog_cache.json"),
		},
		State: StateConfig{
			Path: filepath.Join(dataDir, "state.db"),
		},
	}
}

// AppDataDir is the per-user application data directory (%APPDATA%\Initio on
// Windows, ~/.config/Initio elsewhere).
func AppDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "Initio")
	}
	if home, err := homedir.Dir(); err == nil {
		return filepath.Join(home, ".config", "Initio")
	}
	return filepath.Join(os.TempDir(), "Initio")
}

// DefaultConfigPath is where LoadConfig looks when no path is given.
func DefaultConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(AppDataDir(), "config.yaml")
	}
	return filepath.Join(home, ".config", "initio", "config.yaml")
}

// LoadConfig loads configuration from file, falling back to defaults when the
// file does not exist. INITIO_* environment variables override both.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultConfigPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the orchestrator cannot run with.
func (c *Config) Validate() error {
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("retry.attempts must be at least 1, got %d", c.Retry.Attempts)
	}
	if c.Retry.Backoff < 0 {
		return fmt.Errorf("retry.backoff must not be negative")
	}
	if c.Catalog.Retries < 0 {
		return fmt.Errorf("catalog.retries must not be negative")
	}
	if c.Winget.Path == "" {
		return fmt.Errorf("winget.path is required")
	}
	if c.Shell.Path == "" {
		return fmt.Errorf("shell.path is required")
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	for key, value := range cfg.settings() {
		v.SetDefault(key, value)
	}
}

// settings flattens the config into dotted keys, durations as strings so the
// written file stays readable.
func (c *Config) settings() map[string]interface{} {
	return map[string]interface{}{
		"debug":                   c.Debug,
		"loglevel":                c.LogLevel,
		"winget.path":             c.Winget.Path,
		"winget.silent":           c.Winget.Silent,
		"shell.path":              c.Shell.Path,
		"timeouts.version":        c.Timeouts.Version.String(),
		"timeouts.install":        c.Timeouts.Install.String(),
		"timeouts.list":           c.Timeouts.List.String(),
		"timeouts.catalog":        c.Timeouts.Catalog.String(),
		"timeouts.detect":         c.Timeouts.Detect.String(),
		"timeouts.remove":         c.Timeouts.Remove.String(),
		"timeouts.verify_removed": c.Timeouts.VerifyRemoved.String(),
		"retry.attempts":          c.Retry.Attempts,
		"retry.backoff":           c.Retry.Backoff.String(),
		"catalog.url":             c.Catalog.URL,
		"catalog.cache_path":      c.Catalog.CachePath,
		"catalog.retries":         c.Catalog.Retries,
		"state.path":              c.State.Path,
		"setup.path":              c.Setup.Path,
	}
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(Settings(cfg))
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Settings renders cfg as the nested document SaveConfig writes.
func Settings(cfg *Config) map[string]interface{} {
	return nest(cfg.settings())
}

// nest turns {"a.b": 1} into {"a": {"b": 1}}.
func nest(flat map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for key, value := range flat {
		parts := strings.Split(key, ".")
		m := out
		for _, p := range parts[:len(parts)-1] {
			child, ok := m[p].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				m[p] = child
			}
			m = child
		}
		m[parts[len(parts)-1]] = value
	}
	return out
}
