// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file and
// environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"port"`

	// DatabaseDSN selects the PostgreSQL slot when non-empty.
	DatabaseDSN string `json:"database_dsn"`

	// StorageDir holds the file slots when no DSN is configured.
	StorageDir string `json:"storage_dir"`

	// StorageKey is the slot the account list is stored under.
	StorageKey string `json:"storage_key"`

	// SeedDemo installs the demo accounts into an empty slot.
	SeedDemo bool `json:"seed_demo"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.StorageDir, "s", "data", "directory for file storage")
	flag.StringVar(&options.StorageKey, "k", "accounts", "storage key of the account list")
	flag.BoolVar(&options.SeedDemo, "demo", false, "seed demo accounts into empty storage")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the config file and environment
// variables, in that order of precedence from lowest to highest.
func Parse() (*Options, error) {
	flag.Parse()
	if err := apply(options); err != nil {
		return nil, err
	}
	return options, nil
}

// apply overlays the config file and environment variables onto opts.
// A missing config file is not an error.
func apply(opts *Options) error {
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		opts.Config = configPath
	}

	if opts.Config != "" {
		if _, err := os.Stat(opts.Config); err == nil {
			data, err := os.ReadFile(opts.Config)
			if err != nil {
				return fmt.Errorf("read config file: %w", err)
			}
			if err := json.Unmarshal(data, opts); err != nil {
				return fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		opts.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		opts.DatabaseDSN = dsn
	}
	if dir := os.Getenv("STORAGE_DIR"); dir != "" {
		opts.StorageDir = dir
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		opts.LogLevel = level
	}
	if seed := os.Getenv("SEED_DEMO"); seed != "" {
		v, err := strconv.ParseBool(seed)
		if err != nil {
			return fmt.Errorf("parse SEED_DEMO: %w", err)
		}
		opts.SeedDemo = v
	}

	return nil
}
