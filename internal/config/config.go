// Package config loads tada settings from YAML files and TADA_* environment
// variables.
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

// Store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendRemote = "remote"
)

type Config struct {
	Store  StoreConfig  `mapstructure:"store" yaml:"store"`
	Remote RemoteConfig `mapstructure:"remote" yaml:"remote"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	UI     UIConfig     `mapstructure:"ui" yaml:"ui"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	// Path of the local store file; empty means a file under Dir().
	Path string `mapstructure:"path" yaml:"path"`
}

type RemoteConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
	// Zero means no client timeout.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
	// When set, requests must carry "Authorization: Bearer <token>".
	Token string `mapstructure:"token" yaml:"token,omitempty"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // console | json
	File   string `mapstructure:"file" yaml:"file"`
}

type UIConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"` // classic | neon | mono
	Color string `mapstructure:"color" yaml:"color"` // auto | always | never
}

func Default() *Config {
	return &Config{
		Store: StoreConfig{Backend: BackendJSON},
		Remote: RemoteConfig{
			URL: "http://127.0.0.1:8420/api",
		},
		Server: ServerConfig{Addr: "127.0.0.1:8420"},
		Log:    LogConfig{Level: "warn", Format: "console"},
		UI:     UIConfig{Theme: "classic", Color: "auto"},
	}
}

// Dir is the per-user tada directory (~/.tada).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".tada"), nil
}

// GlobalPath is ~/.tada/config.yaml.
func GlobalPath() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// ProjectPath is ./.tada/config.yaml.
func ProjectPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".tada", "config.yaml")
}

// Load merges defaults, the global file, the project file and TADA_*
// environment variables, later sources winning. A non-empty explicit path
// replaces the two file lookups and must exist.
func Load(explicit string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, Default())

	v.SetEnvPrefix("TADA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", explicit, err)
		}
	} else {
		for _, p := range []string{GlobalPath(), ProjectPath()} {
			if err := mergeFile(v, p); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can see it on Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("remote.url", d.Remote.URL)
	v.SetDefault("remote.timeout", d.Remote.Timeout)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.token", d.Server.Token)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.color", d.UI.Color)
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendSQLite, BackendRemote:
	default:
		return fmt.Errorf("store.backend: unknown backend %q (want json, sqlite or remote)", c.Store.Backend)
	}
	if c.Store.Backend == BackendRemote && strings.TrimSpace(c.Remote.URL) == "" {
		return fmt.Errorf("remote.url is required for the remote backend")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	switch c.UI.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("ui.color: unknown mode %q", c.UI.Color)
	}
	return nil
}

// StorePath resolves Store.Path, defaulting to fileName under Dir().
func (c *Config) StorePath(fileName string) (string, error) {
	if c.Store.Path != "" {
		return expandHome(c.Store.Path)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// LogPath resolves Log.File, defaulting to ~/.tada/tada.log.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return expandHome(c.Log.File)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tada.log"), nil
}

func expandHome(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}
