package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/alnah/go-iconfont/internal/config"
)

// ErrInvalidEnv is returned when an ICONFONT_* variable cannot be parsed.
var ErrInvalidEnv = errors.New("invalid environment variable")

// envPrefix namespaces every recognized variable.
const envPrefix = "ICONFONT_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string `env:"ICONFONT_CONFIG"`          // config file name or path
	Mapping       string `env:"ICONFONT_MAPPING"`         // mapping file
	SourceDir     string `env:"ICONFONT_SOURCE_DIR"`      // SVG directory
	OutputDir     string `env:"ICONFONT_OUTPUT_DIR"`      // artifact directory
	FontName      string `env:"ICONFONT_FONT_NAME"`       // font id and file stem
	Prefix        string `env:"ICONFONT_PREFIX"`          // glyph name namespace
	Workers       int    `env:"ICONFONT_WORKERS"`         // parallel repair workers
	OnRepairError string `env:"ICONFONT_ON_REPAIR_ERROR"` // fail or skip

	// Set records which variables are present, empty ones included, so
	// ICONFONT_PREFIX= or ICONFONT_WORKERS=0 still replace config values.
	Set map[string]bool `env:"-"`
}

// knownEnvVars lists valid ICONFONT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"ICONFONT_CONFIG":          true,
	"ICONFONT_MAPPING":         true,
	"ICONFONT_SOURCE_DIR":      true,
	"ICONFONT_OUTPUT_DIR":      true,
	"ICONFONT_FONT_NAME":       true,
	"ICONFONT_PREFIX":          true,
	"ICONFONT_WORKERS":         true,
	"ICONFONT_ON_REPAIR_ERROR": true,
}

// loadEnvConfig reads configuration from KEY=value pairs.
func loadEnvConfig(environ []string) (*envConfig, error) {
	vars := env.ToMap(environ)
	cfg := &envConfig{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnv, err)
	}
	for name := range knownEnvVars {
		if _, ok := vars[name]; !ok {
			continue
		}
		if cfg.Set == nil {
			cfg.Set = make(map[string]bool)
		}
		cfg.Set[name] = true
	}
	return cfg, nil
}

// warnUnknownEnvVars logs warnings for unrecognized ICONFONT_* variables.
// Helps catch typos like ICONFONT_SOURCE instead of ICONFONT_SOURCE_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables replace config file values even when empty; CLI flags are
// applied later via mergeFlags. Precedence: CLI flags > env vars > config
// file > defaults.
func applyEnvConfig(e *envConfig, cfg *config.Config) {
	if e.Set["ICONFONT_MAPPING"] {
		cfg.Mapping.File = e.Mapping
	}
	if e.Set["ICONFONT_SOURCE_DIR"] {
		cfg.Source.Dir = e.SourceDir
	}
	if e.Set["ICONFONT_OUTPUT_DIR"] {
		cfg.Output.Dir = e.OutputDir
	}
	if e.Set["ICONFONT_FONT_NAME"] {
		cfg.Font.Name = e.FontName
	}
	if e.Set["ICONFONT_PREFIX"] {
		cfg.Mapping.Prefix = e.Prefix
	}
	if e.Set["ICONFONT_WORKERS"] {
		cfg.Build.Workers = e.Workers
	}
	if e.Set["ICONFONT_ON_REPAIR_ERROR"] {
		cfg.Build.OnRepairError = e.OnRepairError
	}
}
