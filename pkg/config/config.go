package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Session backends understood by the session package
const (
	SessionBackendFile   = "file"
	SessionBackendSQLite = "sqlite"
	SessionBackendMemory = "memory"
)

type Config struct {
	// CLI
	CLI struct {
		APIBaseURL string `toml:"api_base_url"` // Base URL of the URL admin backend
	} `toml:"cli"`

	// Session persistence
	Session struct {
		Backend string `toml:"backend"` // file, sqlite or memory
		Path    string `toml:"path"`    // empty = default location in the config dir
	} `toml:"session"`

	// Logging
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`

	// API (development backend)
	API struct {
		Host        string `toml:"host"`
		Port        int    `toml:"port"`
		Username    string `toml:"username"`
		Password    string `toml:"password"`
		JWTSecret   string `toml:"jwt_secret"`
		DatabaseURL string `toml:"database_url"` // empty = keep records in memory
	} `toml:"api"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.CLI.APIBaseURL = "http://localhost:8080"
	cfg.Session.Backend = SessionBackendFile
	cfg.Session.Path = ""
	cfg.Log.Level = "info"
	cfg.API.Host = "0.0.0.0"
	cfg.API.Port = 8080
	cfg.API.Username = "admin"
	cfg.API.Password = "admin"
	return cfg
}

// Dir returns the directory holding config, session state and logs
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "url-admin"), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// SessionPath returns the file used by the session backend. An explicit
// session.path wins; otherwise the default depends on the backend.
func (c *Config) SessionPath() (string, error) {
	if c.Session.Path != "" {
		return expandHome(c.Session.Path)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if c.Session.Backend == SessionBackendSQLite {
		return filepath.Join(dir, "session.db"), nil
	}
	return filepath.Join(dir, "session.toml"), nil
}

// Load reads configuration from ~/.config/url-admin/config.toml
// Creates the file with defaults if it doesn't exist
func Load() (*Config, error) {
	// A missing .env is the common case
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := Save(cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		if err := applyEnv(cfg); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Merge with defaults for any missing values
	defaultCfg := DefaultConfig()
	if cfg.CLI.APIBaseURL == "" {
		cfg.CLI.APIBaseURL = defaultCfg.CLI.APIBaseURL
	}
	if cfg.Session.Backend == "" {
		cfg.Session.Backend = defaultCfg.Session.Backend
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultCfg.Log.Level
	}
	if cfg.API.Host == "" {
		cfg.API.Host = defaultCfg.API.Host
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = defaultCfg.API.Port
	}
	if cfg.API.Username == "" {
		cfg.API.Username = defaultCfg.API.Username
	}
	if cfg.API.Password == "" {
		cfg.API.Password = defaultCfg.API.Password
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv overrides file values with environment variables (useful for Docker)
func applyEnv(cfg *Config) error {
	if baseURL := os.Getenv("API_BASE_URL"); baseURL != "" {
		cfg.CLI.APIBaseURL = baseURL
	}
	if backend := os.Getenv("URL_ADMIN_SESSION_BACKEND"); backend != "" {
		cfg.Session.Backend = backend
	}
	if level := os.Getenv("URL_ADMIN_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.API.DatabaseURL = dbURL
	}
	if port := os.Getenv("API_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid API_PORT value: %s", port)
		}
		cfg.API.Port = p
	}
	return nil
}

// Validate rejects values the rest of the program cannot work with
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case SessionBackendFile, SessionBackendSQLite, SessionBackendMemory:
	default:
		return fmt.Errorf("unknown session backend: %q", c.Session.Backend)
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("invalid api port: %d", c.API.Port)
	}
	return nil
}

// Save writes the configuration to the config file
func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold the dev backend password
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return strings.Replace(path, "~", homeDir, 1), nil
}
