/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the cohbin configuration
type Config struct {
	Archive         string            `yaml:"archive"`
	MessagesArchive string            `yaml:"messages_archive,omitempty"`
	MessagesEntry   string            `yaml:"messages_entry"`
	DataDir         string            `yaml:"data_dir"`
	Port            int               `yaml:"port"`
	Bind            string            `yaml:"bind"`
	Security        Security          `yaml:"security"`
	Logging         Logging           `yaml:"logging"`
	Decode          Decode            `yaml:"decode"`
	Entries         map[string]string `yaml:"entries,omitempty"`
}

// Security contains security-related configuration
type Security struct {
	APIKey string `yaml:"api_key"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Decode tunes bin decoding
type Decode struct {
	Workers     int `yaml:"workers"`
	MaxFileSize int `yaml:"max_file_size"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Archive:       "./piggs/bin.pigg",
		MessagesEntry: "texts/English/clientmessages-res.bin",
		DataDir:       "./data",
		Port:          8080,
		Bind:          "127.0.0.1",
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Decode: Decode{
			Workers:     4,
			MaxFileSize: 256 << 20,
		},
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}
	if c.Decode.Workers < 0 {
		return fmt.Errorf("invalid decode workers: %d", c.Decode.Workers)
	}
	if c.Decode.MaxFileSize < 0 {
		return fmt.Errorf("invalid max file size: %d", c.Decode.MaxFileSize)
	}
	return nil
}

// EntryFor returns the archive entry configured for kind, or fallback
func (c *Config) EntryFor(kind, fallback string) string {
	if entry, ok := c.Entries[kind]; ok && entry != "" {
		return entry
	}
	return fallback
}

// MessagesArchivePath returns the archive holding the message store
func (c *Config) MessagesArchivePath() string {
	if c.MessagesArchive != "" {
		return c.MessagesArchive
	}
	return c.Archive
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: the file may hold the API key
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig writes a new configuration, optionally with a generated API key
func BootstrapConfig(configPath string, archive string, withAPIKey bool) (*Config, error) {
	config := DefaultConfig()
	if archive != "" {
		config.Archive = archive
	}

	if withAPIKey {
		key, err := GenerateSecureKey(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate API key: %w", err)
		}
		config.Security.APIKey = key
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./cohbin.yaml"
	}

	// ~/.config/cohbin/config.yaml
	configDir := filepath.Join(homeDir, ".config", "cohbin")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
