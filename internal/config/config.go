package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the deck-builder server configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Catalog CatalogConfig `toml:"catalog"`
	Scoring ScoringConfig `toml:"scoring"`
	Store   StoreConfig   `toml:"store"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"` // listen address, e.g. ":8080"
}

// CatalogConfig locates the card database.
type CatalogConfig struct {
	Path string `toml:"path"` // YAML card database file
}

// ScoringConfig locates the Genesys point table.
type ScoringConfig struct {
	Path string `toml:"path"` // YAML name → points file
}

// StoreConfig contains deck persistence settings.
type StoreConfig struct {
	Path     string `toml:"path"`     // SQLite database file
	Autosave bool   `toml:"autosave"` // write the current deck slot on every change
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8080"},
		Catalog: CatalogConfig{Path: "cards.yaml"},
		Scoring: ScoringConfig{Path: "points.yaml"},
		Store:   StoreConfig{Path: "decks.db", Autosave: true},
	}
}

// Load reads a TOML config file, falling back to defaults if the file does
// not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as TOML.
func Save(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
