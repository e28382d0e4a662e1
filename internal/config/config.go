// Package config loads the controller configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// #region types
// Config is the full controller configuration.
type Config struct {
	Progress ProgressConfig `yaml:"progress"`
	Oracle   OracleConfig   `yaml:"oracle"`
	Log      LogConfig      `yaml:"log"`
	GRPC     ServerConfig   `yaml:"grpc"`
	HTTP     ServerConfig   `yaml:"http"`
	Queue    QueueConfig    `yaml:"queue"`
}

// ProgressConfig selects where level and XP are kept.
type ProgressConfig struct {
	Backend string `yaml:"backend"` // sqlite, badger or memory
	Path    string `yaml:"path"`
}

// OracleConfig selects the responder for IA prompts.
type OracleConfig struct {
	Provider string `yaml:"provider"` // offline or gemini
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type QueueConfig struct {
	Buffer int `yaml:"buffer"`
}
// #endregion types

// #region defaults
// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Progress: ProgressConfig{Backend: "sqlite", Path: "hecatestia.db"},
		Oracle:   OracleConfig{Provider: "offline"},
		Log:      LogConfig{Level: "info"},
		GRPC:     ServerConfig{Addr: "localhost:50061"},
		HTTP:     ServerConfig{Addr: "localhost:8089"},
		Queue:    QueueConfig{Buffer: 16},
	}
}
// #endregion defaults

// #region load-save
// Load reads path over the defaults. A missing file yields the defaults.
// Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
// #endregion load-save

// #region env
func (c *Config) applyEnvOverrides() {
	c.Progress.Path = envOr("HECATE_DB", c.Progress.Path)
	c.Progress.Backend = envOr("HECATE_PROGRESS_BACKEND", c.Progress.Backend)
	c.Log.Level = envOr("HECATE_LOG_LEVEL", c.Log.Level)
	c.GRPC.Addr = envOr("HECATE_GRPC_ADDR", c.GRPC.Addr)
	c.HTTP.Addr = envOr("HECATE_HTTP_ADDR", c.HTTP.Addr)
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Oracle.APIKey = key
		c.Oracle.Provider = "gemini"
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
// #endregion env

// #region validate
// Validate rejects unknown backends and providers.
func (c *Config) Validate() error {
	switch c.Progress.Backend {
	case "sqlite", "badger", "memory":
	default:
		return fmt.Errorf("progress.backend %q must be sqlite, badger or memory", c.Progress.Backend)
	}
	if c.Progress.Backend != "memory" && c.Progress.Path == "" {
		return fmt.Errorf("progress.path is required for backend %s", c.Progress.Backend)
	}
	switch c.Oracle.Provider {
	case "offline":
	case "gemini":
		if c.Oracle.APIKey == "" {
			return fmt.Errorf("oracle.api_key is required for provider gemini")
		}
	default:
		return fmt.Errorf("oracle.provider %q must be offline or gemini", c.Oracle.Provider)
	}
	if c.Queue.Buffer < 0 {
		return fmt.Errorf("queue.buffer must be >= 0")
	}
	return nil
}
// #endregion validate
