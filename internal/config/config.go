package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreBadger   = "badger"
	StoreMemory   = "memory"
)

type Config struct {
	Store       string `yaml:"store"`
	DatabaseURL string `yaml:"database_url"`
	BadgerPath  string `yaml:"badger_path"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	ExportDir   string `yaml:"export_dir"`
}

func defaults() *Config {
	return &Config{
		Store:       StoreSQLite,
		DatabaseURL: "compass.db",
		BadgerPath:  "compass-data",
		LogLevel:    "info",
		LogFormat:   "text",
		ExportDir:   ".",
	}
}

// Load builds the configuration from built-in defaults, then an optional YAML
// file (path from COMPASS_CONFIG or configPath), then the environment.
// A .env file in the working directory is loaded first when present.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if configPath == "" {
		configPath = os.Getenv("COMPASS_CONFIG")
	}
	if configPath != "" {
		if err := cfg.loadFile(configPath); err != nil {
			return nil, err
		}
	}

	cfg.Store = getEnv("COMPASS_STORE", cfg.Store)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.BadgerPath = getEnv("BADGER_PATH", cfg.BadgerPath)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.ExportDir = getEnv("EXPORT_DIR", cfg.ExportDir)

	// A postgres DSN implies the postgres store, as the database package does.
	if cfg.isPostgresDSN() && cfg.Store == StoreSQLite {
		cfg.Store = StorePostgres
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StorePostgres, StoreBadger, StoreMemory:
	default:
		return fmt.Errorf("unsupported store: %q", c.Store)
	}
	if c.Store == StorePostgres && !c.isPostgresDSN() {
		return fmt.Errorf("store %q needs a postgres DATABASE_URL, got %q", c.Store, c.DatabaseURL)
	}
	if c.Store == StoreSQLite && c.isPostgresDSN() {
		return fmt.Errorf("store %q cannot use the postgres DATABASE_URL", c.Store)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unsupported log format: %q", c.LogFormat)
	}
	return nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// NewLogger builds the process logger described by the configuration.
func (c *Config) NewLogger() *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func (c *Config) isPostgresDSN() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
