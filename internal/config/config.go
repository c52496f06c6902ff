// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Both binaries (registration-server and registration-client) read the
// same file; each uses the sections it needs.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means loading fails if that value is missing:
// the process stops at boot instead of running with a wrong default.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StoragePath is the filesystem path to the SQLite .db file.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`

	HTTPServer `yaml:"http_server"`

	Cache      Cache      `yaml:"cache"`
	Client     Client     `yaml:"client"`
	Validation Validation `yaml:"validation"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr         string        `yaml:"address"       env:"HTTP_SERVER_ADDR" env-default:"localhost:8082"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"HTTP_SERVER_READ_TIMEOUT"  env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  env:"HTTP_SERVER_IDLE_TIMEOUT"  env-default:"60s"`
}

// Cache controls the course-list cache in front of the store.
type Cache struct {
	Disabled bool          `yaml:"disabled" env:"CACHE_DISABLED" env-default:"false"`
	TTL      time.Duration `yaml:"ttl"      env:"CACHE_TTL"      env-default:"5m"`
}

// Client holds settings for the terminal client's remote data store.
type Client struct {
	ServerURL string        `yaml:"server_url" env:"CLIENT_SERVER_URL" env-default:"http://localhost:8082"`
	Timeout   time.Duration `yaml:"timeout"    env:"CLIENT_TIMEOUT"    env-default:"5s"`
}

// Validation makes the form rules adjustable per institution.
type Validation struct {
	// StudentIDLength is the exact number of digits a student id must have.
	StudentIDLength int `yaml:"student_id_length" env:"VALIDATION_STUDENT_ID_LENGTH" env-default:"8"`

	// StrictEmail switches from the basic local@domain.tld shape check to
	// full RFC-style address validation.
	StrictEmail bool `yaml:"strict_email" env:"VALIDATION_STRICT_EMAIL" env-default:"false"`
}

// Load reads the YAML file at path, applies environment overrides and
// defaults, and checks required values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	// cleanenv.ReadConfig reads the YAML file and populates the struct.
	// It also reads any env:"..." tagged fields from the environment,
	// fills env-default values, and validates env-required constraints.
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if cfg.Validation.StudentIDLength <= 0 {
		return nil, fmt.Errorf("validation.student_id_length must be positive, got %d",
			cfg.Validation.StudentIDLength)
	}

	return &cfg, nil
}

// MustLoad resolves the config path from CONFIG_PATH or the --config flag
// and loads it, exiting the process on failure.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}
