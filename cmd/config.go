package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/tailscale/hujson"
)

// DefaultConfigFile is read from the working directory when -config is not set.
const DefaultConfigFile = ".cst.json"

// Environment variables, they are also passed to extensions.
const (
	EnvStore       = "CST_STORE"
	EnvBackend     = "CST_BACKEND"
	EnvShareOrigin = "CST_SHARE_ORIGIN"
	EnvSharePath   = "CST_SHARE_PATH"
	EnvVerbose     = "CST_VERBOSE"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds the settings of the application.
type Config struct {
	// Store is the storage directory, or the database file of the sqlite backend.
	Store       string `json:"store" env:"CST_STORE"`
	Backend     string `json:"backend" env:"CST_BACKEND"`
	ShareOrigin string `json:"shareOrigin" env:"CST_SHARE_ORIGIN"`
	SharePath   string `json:"sharePath" env:"CST_SHARE_PATH"`
	Verbose     bool   `json:"verbose" env:"CST_VERBOSE"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Backend:     BackendFile,
		ShareOrigin: "http://localhost:3000",
		SharePath:   "/",
	}
}

// StorePath returns the store location, defaulting per backend.
func (c Config) StorePath() string {
	switch {
	case c.Store != "":
		return c.Store
	case c.Backend == BackendSQLite:
		return ".cst.db"
	default:
		return ".cst"
	}
}

func (c Config) validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
		return nil
	}
	return fmt.Errorf("unknown storage backend %q, want %q or %q", c.Backend, BackendFile, BackendSQLite)
}

// loadConfig layers the configuration file, the environment and the flags
// that were set over the defaults.
//
// A missing file is only an error when it was named explicitly.
func loadConfig(file string, environ map[string]string, flags map[string]string) (Config, error) {
	cfg := DefaultConfig()

	explicit := file != ""
	if !explicit {
		file = DefaultConfigFile
	}
	data, err := os.ReadFile(file)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	default:
		if err := decodeConfig(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config file %q: %w", file, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	for name, value := range flags {
		switch name {
		case "store":
			cfg.Store = value
		case "backend":
			cfg.Backend = value
		case "v":
			cfg.Verbose = value == "true"
		}
	}
	return cfg, cfg.validate()
}

// decodeConfig reads a JSON config file, comments and trailing commas allowed.
func decodeConfig(data []byte, cfg *Config) error {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("invalid JSONC: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
