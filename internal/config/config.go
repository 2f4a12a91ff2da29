package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds server settings. Values come from the config file,
// overridden by TASKHUB_* environment variables, overridden by CLI
// flags.
type Config struct {
	ListenAddr  string `yaml:"listen_addr" json:"listen_addr"`
	DatabaseURL string `yaml:"database_url" json:"database_url"` // postgres:// URL or SQLite path

	// AccessPolicy selects who may work inside a project: "owner"
	// (owner-only, the default) or "member" (owner-or-member).
	AccessPolicy string `yaml:"access_policy" json:"access_policy"`

	// SessionTTLHours is the login lifetime; 0 means the default
	// (7 days).
	SessionTTLHours int `yaml:"session_ttl_hours" json:"session_ttl_hours"`

	LogLevel   string `yaml:"log_level" json:"log_level"`
	LogFile    string `yaml:"log_file" json:"log_file"`
	LogConsole bool   `yaml:"log_console" json:"log_console"`
}

// DefaultConfig returns default settings with env overrides applied.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	dbPath := "taskhub.db"
	if home != "" {
		logPath = filepath.Join(home, ".taskhub", "logs", "taskhub-server.log")
		dbPath = filepath.Join(home, ".taskhub", "taskhub.db")
	}

	return &Config{
		ListenAddr:   getEnv("TASKHUB_LISTEN_ADDR", ":8080"),
		DatabaseURL:  getEnv("TASKHUB_DATABASE_URL", dbPath),
		AccessPolicy: getEnv("TASKHUB_ACCESS_POLICY", "owner"),
		LogLevel:     getEnv("TASKHUB_LOG_LEVEL", "INFO"),
		LogFile:      getEnv("TASKHUB_LOG_FILE", logPath),
		LogConsole:   getEnv("TASKHUB_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load reads a config file, falling back to defaults when path is
// empty or the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".taskhub", "server.yaml")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
