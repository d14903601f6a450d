// Package config loads server and CLI settings from an optional YAML file
// and the environment.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfig        = "UIPATH_MCP_CONFIG"
	EnvLogPath       = "UIPATH_MCP_LOG"
	EnvLogLevel      = "UIPATH_MCP_LOG_LEVEL"
	EnvSnapshotDB    = "UIPATH_MCP_SNAPSHOT_DB"
	EnvCacheMaxSize  = "UIPATH_MCP_CACHE_SIZE"
	EnvCacheTimeout  = "UIPATH_MCP_CACHE_TIMEOUT"
	EnvResolverDepth = "UIPATH_MCP_RESOLVER_DEPTH"
)

var (
	ErrConfigRead    = zerr.New("failed to read config file")
	ErrConfigParse   = zerr.New("failed to parse config file")
	ErrConfigInvalid = zerr.New("invalid configuration")
)

type Config struct {
	Log      Log      `yaml:"log"`
	Cache    Cache    `yaml:"cache"`
	Resolver Resolver `yaml:"resolver"`
	Menu     Menu     `yaml:"menu"`
	Snapshot Snapshot `yaml:"snapshot"`
}

type Log struct {
	// Path is the log file; empty keeps the logger's default location.
	Path  string `yaml:"path"`
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

type Cache struct {
	MaxSize         int           `yaml:"max_size" validate:"gte=1,lte=1000"`
	Timeout         time.Duration `yaml:"timeout" validate:"gt=0"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" validate:"gte=0"`
}

type Resolver struct {
	MaxDepth int `yaml:"max_depth" validate:"gte=1,lte=500"`
}

type Menu struct {
	MaxDepth    int `yaml:"max_depth" validate:"gte=1,lte=20"`
	Suggestions int `yaml:"suggestions" validate:"gte=1,lte=100"`
}

type Snapshot struct {
	DB     string `yaml:"db" validate:"required"`
	Bucket string `yaml:"bucket" validate:"required"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: Log{Level: "info"},
		Cache: Cache{
			MaxSize:         10,
			Timeout:         30 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Resolver: Resolver{MaxDepth: 50},
		Menu:     Menu{MaxDepth: 5, Suggestions: 5},
		Snapshot: Snapshot{DB: defaultSnapshotDB(), Bucket: "snapshots"},
	}
}

var validate = validator.New()

// Load builds the configuration: defaults, then the YAML file at path (or
// $UIPATH_MCP_CONFIG when path is empty), then environment overrides. The
// result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := readYAML(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		f := fields[0]
		return zerr.With(zerr.With(zerr.Wrap(ErrConfigInvalid, f.Error()), "field", f.Namespace()), "rule", f.Tag())
	}
	return zerr.Wrap(err, ErrConfigInvalid.Error())
}

func readYAML(path string, cfg *Config) error {
	// #nosec G304 -- path is chosen by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(ErrConfigRead, err.Error()), "path", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return zerr.With(zerr.Wrap(ErrConfigParse, err.Error()), "path", path)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogPath); v != "" {
		cfg.Log.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvSnapshotDB); v != "" {
		cfg.Snapshot.DB = v
	}
	if v := os.Getenv(EnvCacheMaxSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvCacheMaxSize, v)
		}
		cfg.Cache.MaxSize = n
	}
	if v := os.Getenv(EnvCacheTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError(EnvCacheTimeout, v)
		}
		cfg.Cache.Timeout = d
	}
	if v := os.Getenv(EnvResolverDepth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvResolverDepth, v)
		}
		cfg.Resolver.MaxDepth = n
	}
	return nil
}

func envError(name, value string) error {
	return zerr.With(zerr.With(zerr.Wrap(ErrConfigInvalid, "malformed environment override"), "env", name), "value", value)
}

func defaultSnapshotDB() string {
	home, _ := os.UserHomeDir()
	if home == "" {
		home = "."
	}
	return filepath.Join(home, ".cache", "uipath-mcp", "snapshots.db")
}
