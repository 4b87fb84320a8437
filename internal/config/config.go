// Package config handles MoodTracker configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds all configuration
type Config struct {
	// Paths
	DataDir string `json:"data_dir"`

	// Server
	Server ServerConfig `json:"server"`

	// AI provider
	OpenAI OpenAIConfig `json:"openai"`

	// Vault
	Vault VaultConfig `json:"vault"`

	// Logging
	LogLevel string `json:"log_level"`
}

// ServerConfig for the HTTP API
type ServerConfig struct {
	Port int    `json:"port"`
	Host string `json:"host"`
}

// OpenAIConfig for the insight provider. The API key itself is not part of
// the config file; it is stored sealed in the database.
type OpenAIConfig struct {
	BaseURL        string `json:"base_url"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// VaultConfig for credential sealing
type VaultConfig struct {
	// Passphrase protecting stored credentials. Overridable via
	// MOODTRACKER_VAULT_PASSPHRASE.
	Passphrase string `json:"passphrase"`
}

// Default returns default configuration
func Default() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		DataDir: filepath.Join(home, ".moodtracker"),
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		OpenAI: OpenAIConfig{
			BaseURL:        "https://api.openai.com",
			Model:          "gpt-4",
			TimeoutSeconds: 60,
		},
		Vault: VaultConfig{
			Passphrase: "moodtracker-device-secret",
		},
		LogLevel: "info",
	}
}

// Load loads config from file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if pass := os.Getenv("MOODTRACKER_VAULT_PASSPHRASE"); pass != "" {
		c.Vault.Passphrase = pass
	}
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		c.OpenAI.BaseURL = base
	}
}

// Save saves config to file
func (c *Config) Save(path string) error {
	if path == "" {
		path = filepath.Join(c.DataDir, "config.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// DatabasePath returns the SQLite file location under the data dir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "mood_tracker.db")
}
