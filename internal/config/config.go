package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-iconfont/internal/fileutil"
	"github.com/alnah/go-iconfont/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxFontNameLength = 64   // used as file name and font id
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxPrefixLength   = 64   // "codicon:"
	MaxStyleLength    = 20   // "normal", "italic", "oblique 10deg"
	MaxWeightLength   = 20   // "normal", "bold", "400"
)

// Code point and metric bounds.
const (
	PrivateUseStart = 0xE000
	PrivateUseEnd   = 0xF8FF
	MinUnitsPerEm   = 16
	MaxUnitsPerEm   = 16384
	MaxWorkers      = 256
)

// Policy values accepted in build.onRepairError and build.onDuplicate.
const (
	RepairFail         = "fail"
	RepairSkip         = "skip"
	DuplicateOverwrite = "overwrite"
	DuplicateError     = "error"
)

// Defaults applied by DefaultConfig.
const (
	DefaultFontName      = "icons"
	DefaultPrefix        = "codicon:"
	DefaultOutputDir     = "dist"
	DefaultUnitsPerEm    = 1000
	DefaultCodePointBase = PrivateUseStart
)

var fontNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Config holds all configuration for an icon font build.
type Config struct {
	Font    FontConfig    `yaml:"font"`
	Mapping MappingConfig `yaml:"mapping"`
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Build   BuildConfig   `yaml:"build"`
}

// FontConfig defines the generated font and its descriptor metadata.
type FontConfig struct {
	Name          string `yaml:"name"`          // font id, also the output file stem
	CodePointBase int    `yaml:"codePointBase"` // first private-use code point (default: 0xE000)
	UnitsPerEm    int    `yaml:"unitsPerEm"`    // em square size (default: 1000)
	Descent       int    `yaml:"descent"`       // units below the baseline (default: 0)
	Weight        string `yaml:"weight"`        // descriptor "weight" (default: "normal")
	Style         string `yaml:"style"`         // descriptor "style" (default: "normal")
}

// MappingConfig defines where the icon mapping comes from.
type MappingConfig struct {
	File   string `yaml:"file"`   // YAML or JSON mapping table
	Prefix string `yaml:"prefix"` // namespace stripped from glyph names
}

// SourceConfig defines the SVG source directory.
type SourceConfig struct {
	Dir string `yaml:"dir"` // holds <id>.svg files
}

// OutputConfig defines where artifacts are written.
type OutputConfig struct {
	Dir string `yaml:"dir"` // default: "dist"
}

// BuildConfig defines pipeline behavior.
type BuildConfig struct {
	Workers       int    `yaml:"workers"`       // 0 = auto
	OnRepairError string `yaml:"onRepairError"` // "fail" (default) or "skip"
	OnDuplicate   string `yaml:"onDuplicate"`   // "overwrite" (default) or "error"
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	// Font
	if err := validateFieldLength("font.name", c.Font.Name, MaxFontNameLength); err != nil {
		return err
	}
	if c.Font.Name != "" && !fontNamePattern.MatchString(c.Font.Name) {
		return fmt.Errorf("%w: font.name %q (letters, digits, '.', '_' and '-' only)", ErrInvalidField, c.Font.Name)
	}
	if c.Font.CodePointBase != 0 && (c.Font.CodePointBase < PrivateUseStart || c.Font.CodePointBase > PrivateUseEnd) {
		return fmt.Errorf("%w: font.codePointBase %#x (must be between %#x and %#x)",
			ErrInvalidField, c.Font.CodePointBase, PrivateUseStart, PrivateUseEnd)
	}
	if c.Font.UnitsPerEm != 0 && (c.Font.UnitsPerEm < MinUnitsPerEm || c.Font.UnitsPerEm > MaxUnitsPerEm) {
		return fmt.Errorf("%w: font.unitsPerEm %d (must be between %d and %d)",
			ErrInvalidField, c.Font.UnitsPerEm, MinUnitsPerEm, MaxUnitsPerEm)
	}
	if c.Font.Descent < 0 {
		return fmt.Errorf("%w: font.descent must not be negative, got %d", ErrInvalidField, c.Font.Descent)
	}
	if c.Font.UnitsPerEm != 0 && c.Font.Descent >= c.Font.UnitsPerEm {
		return fmt.Errorf("%w: font.descent %d must be smaller than font.unitsPerEm %d",
			ErrInvalidField, c.Font.Descent, c.Font.UnitsPerEm)
	}
	if err := validateFieldLength("font.weight", c.Font.Weight, MaxWeightLength); err != nil {
		return err
	}
	if err := validateFieldLength("font.style", c.Font.Style, MaxStyleLength); err != nil {
		return err
	}

	// Paths
	if err := validateFieldLength("mapping.file", c.Mapping.File, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("mapping.prefix", c.Mapping.Prefix, MaxPrefixLength); err != nil {
		return err
	}
	if err := validateFieldLength("source.dir", c.Source.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}

	// Build
	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers must be between 0 and %d, got %d", ErrInvalidField, MaxWorkers, c.Build.Workers)
	}
	if c.Build.OnRepairError != "" {
		switch strings.ToLower(c.Build.OnRepairError) {
		case RepairFail, RepairSkip:
			// valid
		default:
			return fmt.Errorf("%w: build.onRepairError %q (must be fail or skip)", ErrInvalidField, c.Build.OnRepairError)
		}
	}
	if c.Build.OnDuplicate != "" {
		switch strings.ToLower(c.Build.OnDuplicate) {
		case DuplicateOverwrite, DuplicateError:
			// valid
		default:
			return fmt.Errorf("%w: build.onDuplicate %q (must be overwrite or error)", ErrInvalidField, c.Build.OnDuplicate)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Font: FontConfig{
			Name:          DefaultFontName,
			CodePointBase: DefaultCodePointBase,
			UnitsPerEm:    DefaultUnitsPerEm,
			Weight:        "normal",
			Style:         "normal",
		},
		Mapping: MappingConfig{Prefix: DefaultPrefix},
		Output:  OutputConfig{Dir: DefaultOutputDir},
		Build: BuildConfig{
			OnRepairError: RepairFail,
			OnDuplicate:   DuplicateOverwrite,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Relative paths in the file are relative to the file itself.
	base := filepath.Dir(configPath)
	cfg.Mapping.File = resolveRelative(base, cfg.Mapping.File)
	cfg.Source.Dir = resolveRelative(base, cfg.Source.Dir)

	return cfg, nil
}

// resolveRelative joins p onto base unless p is empty or absolute.
func resolveRelative(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// SearchPaths lists the files LoadConfig tries for nameOrPath, in order.
// A path is returned as is; a name expands to <name>.yaml and <name>.yml
// in the current directory, then in the user config directory under
// go-iconfont/.
func SearchPaths(nameOrPath string) []string {
	if fileutil.IsFilePath(nameOrPath) {
		return []string{nameOrPath}
	}

	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, nameOrPath+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-iconfont", nameOrPath+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in SearchPaths order.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
