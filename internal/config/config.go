package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceFile   = "file"
	SourceHTTP   = "http"
	SourceSQLite = "sqlite"
)

// Transport modes.
const (
	ModeHTTP  = "http"
	ModeStdio = "stdio"
)

// MinSessionTTL is the shortest accepted idle session lifetime.
const MinSessionTTL = time.Second

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Source    SourceConfig    `yaml:"source"`
	DB        DBConfig        `yaml:"db"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// SourceConfig selects where catalogs load their projects from. Location is
// a file path for "file" and a URL for "http"; "sqlite" reads DB.Path.
type SourceConfig struct {
	Kind     string `yaml:"kind"`
	Location string `yaml:"location"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type CatalogConfig struct {
	PageSize   int           `yaml:"page_size"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: ModeHTTP,
		},
		Source: SourceConfig{
			Kind:     SourceFile,
			Location: "projects-data.json",
		},
		DB: DBConfig{
			Path: "listings.db",
		},
		Catalog: CatalogConfig{
			PageSize:   6,
			SessionTTL: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional .env file, an optional YAML
// file and environment variables, in that order of precedence (lowest
// first).
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("LISTINGS_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case ModeHTTP, ModeStdio:
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	switch c.Source.Kind {
	case SourceFile, SourceHTTP:
		if c.Source.Location == "" {
			return fmt.Errorf("source kind %q needs a location", c.Source.Kind)
		}
	case SourceSQLite:
		if c.DB.Path == "" {
			return errors.New("source kind sqlite needs db.path")
		}
	default:
		return fmt.Errorf("invalid source kind %q", c.Source.Kind)
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("invalid page size %d", c.Catalog.PageSize)
	}
	if c.Catalog.SessionTTL < MinSessionTTL {
		return fmt.Errorf("invalid session ttl %s: must be at least %s", c.Catalog.SessionTTL, MinSessionTTL)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("LISTINGS_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("LISTINGS_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid LISTINGS_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("LISTINGS_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if kind := os.Getenv("LISTINGS_SOURCE_KIND"); kind != "" {
		cfg.Source.Kind = kind
	}
	if location := os.Getenv("LISTINGS_SOURCE_LOCATION"); location != "" {
		cfg.Source.Location = location
	}
	if dbPath := os.Getenv("LISTINGS_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if sizeStr := os.Getenv("LISTINGS_PAGE_SIZE"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return fmt.Errorf("invalid LISTINGS_PAGE_SIZE: %w", err)
		}
		cfg.Catalog.PageSize = size
	}
	if ttlStr := os.Getenv("LISTINGS_SESSION_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return fmt.Errorf("invalid LISTINGS_SESSION_TTL: %w", err)
		}
		cfg.Catalog.SessionTTL = ttl
	}
	if level := os.Getenv("LISTINGS_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("LISTINGS_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
