package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const configDirName = ".shoplist"

// Config holds all shoplist settings. Precedence: flags > env > file > defaults.
type Config struct {
	Store StoreConfig `yaml:"store"`

	// IDScheme picks the item id generator: "uuid" (default) or "clock".
	IDScheme string `yaml:"id_scheme"`

	// Theme for the list panel: classic, neon, mono.
	Theme string `yaml:"theme"`

	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig selects where the list is persisted.
type StoreConfig struct {
	Backend string `yaml:"backend"` // json, sqlite, memory
	Path    string `yaml:"path"`    // empty: shoplist.json / shoplist.db in the working dir
	Key     string `yaml:"key"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	// File receives logs while the TUI owns the terminal.
	File string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: "json",
			Key:     "shoppingList",
		},
		IDScheme: "uuid",
		Theme:    "classic",
		Logging: LoggingConfig{
			Level: "warn",
			File:  "shoplist.log",
		},
	}
}

// DefaultPath is ~/.shoplist/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, configDirName, "config.yaml"), nil
}

// Load reads path over the defaults and applies env overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("SHOPLIST_STORE")); v != "" {
		c.Store.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("SHOPLIST_PATH")); v != "" {
		c.Store.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("SHOPLIST_KEY")); v != "" {
		c.Store.Key = v
	}
	if v := strings.TrimSpace(os.Getenv("SHOPLIST_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("SHOPLIST_ID_SCHEME")); v != "" {
		c.IDScheme = v
	}
}

// Validate rejects values nothing downstream knows how to handle.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "json", "sqlite", "memory":
	default:
		return fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend)
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		return errors.New("store.key: must not be empty")
	}
	switch c.IDScheme {
	case "uuid", "clock":
	default:
		return fmt.Errorf("id_scheme: unknown scheme %q", c.IDScheme)
	}
	return nil
}
