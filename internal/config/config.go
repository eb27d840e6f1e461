// Package config provides configuration loading and validation for the service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
)

// Config represents the service configuration. It can be loaded from a JSON
// or YAML file and from the environment. All fields are optional; missing
// values come from Defaults.
type Config struct {
	// Server
	Port    int    `json:"port,omitempty" yaml:"port,omitempty"`         // HTTP listen port
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"` // Base of shared resume links

	// Storage
	StorageDriver string `json:"storage_driver,omitempty" yaml:"storage_driver,omitempty"` // memory, sqlite, postgres or redis
	SQLitePath    string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`       // SQLite database file
	DatabaseURL   string `json:"database_url,omitempty" yaml:"database_url,omitempty"`     // PostgreSQL connection URL
	RedisAddr     string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`         // Redis host:port
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty"` // Redis password
	RedisDB       int    `json:"redis_db,omitempty" yaml:"redis_db,omitempty"`             // Redis database number

	// Text generation
	LLMProvider string `json:"llm_provider,omitempty" yaml:"llm_provider,omitempty"` // gemini or anthropic
	APIKey      string `json:"api_key,omitempty" yaml:"api_key,omitempty"`           // Provider API key
	LLMModel    string `json:"llm_model,omitempty" yaml:"llm_model,omitempty"`       // Model used for every tier instead of the provider defaults

	// Behavior
	AutosaveInterval string `json:"autosave_interval,omitempty" yaml:"autosave_interval,omitempty"` // Duration string, e.g. "30s"
	DefaultTemplate  string `json:"default_template,omitempty" yaml:"default_template,omitempty"`   // Template for new sessions
	ChromePath       string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`             // Chrome binary for PDF export
	LogLevel         string `json:"log_level,omitempty" yaml:"log_level,omitempty"`                 // debug, info, warn or error
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Port:             8080,
		BaseURL:          "http://localhost:8080/",
		StorageDriver:    db.DriverSQLite,
		SQLitePath:       "resume-builder.db",
		LLMProvider:      string(llm.ProviderAnthropic),
		AutosaveInterval: "30s",
		DefaultTemplate:  string(types.DefaultTemplate),
		LogLevel:         "info",
	}
}

// LoadConfig loads configuration from a file. Files ending in .yaml or .yml
// are parsed as YAML, anything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. Unset variables
// leave fields empty. The API key follows LLM_PROVIDER: GEMINI_API_KEY for
// gemini, ANTHROPIC_API_KEY otherwise.
func FromEnv() (Config, error) {
	cfg := Config{
		BaseURL:          os.Getenv("BASE_URL"),
		StorageDriver:    os.Getenv("STORAGE_DRIVER"),
		SQLitePath:       os.Getenv("SQLITE_PATH"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		LLMProvider:      os.Getenv("LLM_PROVIDER"),
		LLMModel:         os.Getenv("LLM_MODEL"),
		AutosaveInterval: os.Getenv("AUTOSAVE_INTERVAL"),
		DefaultTemplate:  os.Getenv("DEFAULT_TEMPLATE"),
		ChromePath:       os.Getenv("CHROME_PATH"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config error: PORT must be a number: %w", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config error: REDIS_DB must be a number: %w", err)
		}
		cfg.RedisDB = n
	}

	if llm.ParseProvider(strings.ToLower(cfg.LLMProvider)) == llm.ProviderGemini {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	} else {
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Empty fields are accepted; they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config error: 'redis_db' must be non-negative")
	}

	switch c.StorageDriver {
	case "", db.DriverMemory:
	case db.DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("config error: sqlite storage requires 'sqlite_path'")
		}
	case db.DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: postgres storage requires 'database_url'")
		}
	case db.DriverRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config error: redis storage requires 'redis_addr'")
		}
	default:
		return fmt.Errorf("config error: unknown storage driver %q", c.StorageDriver)
	}

	if c.LLMProvider != "" {
		switch llm.Provider(strings.ToLower(c.LLMProvider)) {
		case llm.ProviderGemini, llm.ProviderAnthropic:
		default:
			return fmt.Errorf("config error: unknown llm provider %q", c.LLMProvider)
		}
	}

	if c.DefaultTemplate != "" && !types.TemplateID(c.DefaultTemplate).IsKnown() {
		return fmt.Errorf("config error: unknown template %q", c.DefaultTemplate)
	}

	if c.AutosaveInterval != "" {
		d, err := time.ParseDuration(c.AutosaveInterval)
		if err != nil {
			return fmt.Errorf("config error: invalid 'autosave_interval': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'autosave_interval' must be positive")
		}
	}

	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: invalid 'log_level': %w", err)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer file, environment and built-in values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fillString(&result.BaseURL, defaults.BaseURL)
	fillString(&result.StorageDriver, defaults.StorageDriver)
	fillString(&result.SQLitePath, defaults.SQLitePath)
	fillString(&result.DatabaseURL, defaults.DatabaseURL)
	fillString(&result.RedisAddr, defaults.RedisAddr)
	fillString(&result.RedisPassword, defaults.RedisPassword)
	fillString(&result.LLMProvider, defaults.LLMProvider)
	fillString(&result.APIKey, defaults.APIKey)
	fillString(&result.LLMModel, defaults.LLMModel)
	fillString(&result.AutosaveInterval, defaults.AutosaveInterval)
	fillString(&result.DefaultTemplate, defaults.DefaultTemplate)
	fillString(&result.ChromePath, defaults.ChromePath)
	fillString(&result.LogLevel, defaults.LogLevel)

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}

	return result
}

// Autosave returns the parsed autosave interval, or 30s when unset or invalid.
func (c *Config) Autosave() time.Duration {
	d, err := time.ParseDuration(c.AutosaveInterval)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// StoreOptions maps the storage fields to db.Options.
func (c *Config) StoreOptions() db.Options {
	return db.Options{
		Driver:        c.StorageDriver,
		SQLitePath:    c.SQLitePath,
		DatabaseURL:   c.DatabaseURL,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
	}
}

// LLMConfig returns the model configuration for the configured provider.
// LLMModel, when set, replaces the model of every tier.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.ConfigFor(llm.ParseProvider(strings.ToLower(c.LLMProvider)))
	if model := strings.TrimSpace(c.LLMModel); model != "" {
		for _, tier := range []llm.ModelTier{llm.TierLite, llm.TierStandard, llm.TierAdvanced} {
			cfg = cfg.WithModel(tier, model)
		}
	}
	return cfg
}

func fillString(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}
