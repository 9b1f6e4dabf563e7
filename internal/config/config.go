// Package config loads command-line defaults from the environment and an
// optional .env file.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment variables read by Load.
const (
	EnvWorkers  = "AGRAD_WORKERS"
	EnvPropto   = "AGRAD_PROPTO"
	EnvLogLevel = "AGRAD_LOG_LEVEL"
)

// ErrInvalid is returned for a variable that cannot be parsed.
var ErrInvalid = errors.New("invalid configuration value")

// maxEnvDepth bounds the upward search for a .env file.
const maxEnvDepth = 5

// Config holds settings shared by the command-line tools.
type Config struct {
	Workers  int        // Goroutines evaluating draws.
	Propto   bool       // Drop constant terms of the density.
	LogLevel slog.Level // Minimum level logged.
	EnvFile  string     // .env file that was read, if any.
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Workers:  1,
		Propto:   true,
		LogLevel: slog.LevelInfo,
	}
}

// Load reads configuration starting from the working directory.
func Load() (*Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "config: working directory")
	}
	return LoadFrom(dir)
}

// LoadFrom reads the first .env found in dir or up to four of its parents,
// then the process environment. Process variables take precedence over the
// file.
func LoadFrom(dir string) (*Config, error) {
	file := map[string]string{}
	path := findEnvFile(dir)
	if path != "" {
		vars, err := godotenv.Read(path)
		if err != nil {
			return nil, errors.Wrapf(err, "config: read %s", path)
		}
		file = vars
	}

	cfg, err := parse(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	})
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = path
	return cfg, nil
}

func findEnvFile(dir string) string {
	for i := 0; i < maxEnvDepth; i++ {
		path := filepath.Join(dir, ".env")
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func parse(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvWorkers); ok && v != "" {
		if strings.EqualFold(v, "auto") {
			cfg.Workers = runtime.NumCPU()
		} else {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, errors.Wrapf(ErrInvalid, "%s=%q: want a positive integer or \"auto\"", EnvWorkers, v)
			}
			cfg.Workers = n
		}
	}

	if v, ok := lookup(EnvPropto); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalid, "%s=%q: want a boolean", EnvPropto, v)
		}
		cfg.Propto = b
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, errors.Wrapf(ErrInvalid, "%s=%q: want debug, info, warn or error", EnvLogLevel, v)
		}
	}

	return &cfg, nil
}
