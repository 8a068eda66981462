package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	iconfont "github.com/alnah/go-iconfont"
	"github.com/alnah/go-iconfont/internal/config"
)

// mustParseBuildFlags parses args or fails the test.
func mustParseBuildFlags(t *testing.T, args ...string) *buildFlags {
	t.Helper()
	flags, _, err := parseBuildFlags(args)
	if err != nil {
		t.Fatalf("parseBuildFlags(%v) error = %v", args, err)
	}
	return flags
}

// ---------------------------------------------------------------------------
// TestResolveConfig - Precedence: flags > env > config file > defaults
// ---------------------------------------------------------------------------

func TestResolveConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "iconfont.yaml")
	writeFile(t, cfgPath, `font:
  name: from-file
  descent: 100
mapping:
  file: mapping.yaml
source:
  dir: icons
build:
  workers: 2
`)

	t.Run("defaults only", func(t *testing.T) {
		t.Parallel()

		cfg, err := resolveConfig(mustParseBuildFlags(t), nil)
		if err != nil {
			t.Fatalf("resolveConfig() error = %v", err)
		}
		if cfg.Font.Name != config.DefaultFontName {
			t.Errorf("Font.Name = %q, want %q", cfg.Font.Name, config.DefaultFontName)
		}
		if cfg.Output.Dir != config.DefaultOutputDir {
			t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, config.DefaultOutputDir)
		}
	})

	t.Run("config file resolves relative paths", func(t *testing.T) {
		t.Parallel()

		cfg, err := resolveConfig(mustParseBuildFlags(t, "-c", cfgPath), nil)
		if err != nil {
			t.Fatalf("resolveConfig() error = %v", err)
		}
		if cfg.Font.Name != "from-file" {
			t.Errorf("Font.Name = %q, want %q", cfg.Font.Name, "from-file")
		}
		if want := filepath.Join(dir, "icons"); cfg.Source.Dir != want {
			t.Errorf("Source.Dir = %q, want %q", cfg.Source.Dir, want)
		}
	})

	t.Run("config path from environment", func(t *testing.T) {
		t.Parallel()

		cfg, err := resolveConfig(mustParseBuildFlags(t), []string{"ICONFONT_CONFIG=" + cfgPath})
		if err != nil {
			t.Fatalf("resolveConfig() error = %v", err)
		}
		if cfg.Font.Name != "from-file" {
			t.Errorf("Font.Name = %q, want %q", cfg.Font.Name, "from-file")
		}
	})

	t.Run("env overrides config file", func(t *testing.T) {
		t.Parallel()

		cfg, err := resolveConfig(mustParseBuildFlags(t, "-c", cfgPath), []string{
			"ICONFONT_FONT_NAME=from-env",
			"ICONFONT_WORKERS=4",
		})
		if err != nil {
			t.Fatalf("resolveConfig() error = %v", err)
		}
		if cfg.Font.Name != "from-env" {
			t.Errorf("Font.Name = %q, want %q", cfg.Font.Name, "from-env")
		}
		if cfg.Build.Workers != 4 {
			t.Errorf("Build.Workers = %d, want 4", cfg.Build.Workers)
		}
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Parallel()

		flags := mustParseBuildFlags(t, "-c", cfgPath, "-n", "from-flag", "--descent", "0")
		cfg, err := resolveConfig(flags, []string{"ICONFONT_FONT_NAME=from-env"})
		if err != nil {
			t.Fatalf("resolveConfig() error = %v", err)
		}
		if cfg.Font.Name != "from-flag" {
			t.Errorf("Font.Name = %q, want %q", cfg.Font.Name, "from-flag")
		}
		if cfg.Font.Descent != 0 {
			t.Errorf("Font.Descent = %d, want 0 (explicit flag)", cfg.Font.Descent)
		}
	})

	t.Run("missing config by name has hint", func(t *testing.T) {
		t.Parallel()

		_, err := resolveConfig(mustParseBuildFlags(t, "-c", "no-such-iconfont-config"), nil)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("error = %v, want %v", err, config.ErrConfigNotFound)
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("error should carry a hint, got %q", err)
		}
	})

	t.Run("invalid env value", func(t *testing.T) {
		t.Parallel()

		_, err := resolveConfig(mustParseBuildFlags(t), []string{"ICONFONT_WORKERS=many"})
		if !errors.Is(err, ErrInvalidEnv) {
			t.Errorf("error = %v, want %v", err, ErrInvalidEnv)
		}
	})

	t.Run("merged values are validated", func(t *testing.T) {
		t.Parallel()

		_, err := resolveConfig(mustParseBuildFlags(t, "--code-point-base", "0x41"), nil)
		if !errors.Is(err, config.ErrInvalidField) {
			t.Errorf("error = %v, want %v", err, config.ErrInvalidField)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeFlags - Only flags given on the command line apply
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Font.Descent = 120
	cfg.Mapping.Prefix = "lucide:"

	flags := mustParseBuildFlags(t,
		"-m", "map.yaml",
		"-s", "svg",
		"-o", "out",
		"--code-point-base", "0xE100",
		"--units-per-em", "2048",
		"--weight", "bold",
		"--style", "italic",
		"-w", "3",
		"--on-repair-error", "skip",
		"--on-duplicate", "error",
	)
	mergeFlags(flags, cfg)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"mapping", cfg.Mapping.File, "map.yaml"},
		{"source", cfg.Source.Dir, "svg"},
		{"output", cfg.Output.Dir, "out"},
		{"code point base", cfg.Font.CodePointBase, 0xE100},
		{"units per em", cfg.Font.UnitsPerEm, 2048},
		{"weight", cfg.Font.Weight, "bold"},
		{"style", cfg.Font.Style, "italic"},
		{"workers", cfg.Build.Workers, 3},
		{"repair policy", cfg.Build.OnRepairError, "skip"},
		{"duplicate policy", cfg.Build.OnDuplicate, "error"},
		// Not given on the command line: config values survive.
		{"descent", cfg.Font.Descent, 120},
		{"prefix", cfg.Mapping.Prefix, "lucide:"},
		{"name", cfg.Font.Name, config.DefaultFontName},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestMergeFlags_EmptyPrefix(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	mergeFlags(mustParseBuildFlags(t, "--prefix", ""), cfg)

	if cfg.Mapping.Prefix != "" {
		t.Errorf("Mapping.Prefix = %q, want empty (explicit flag)", cfg.Mapping.Prefix)
	}
}

// ---------------------------------------------------------------------------
// TestNewBuilder - Config to builder options
// ---------------------------------------------------------------------------

func TestNewBuilder(t *testing.T) {
	t.Parallel()

	t.Run("default config", func(t *testing.T) {
		t.Parallel()

		b, err := newBuilder(config.DefaultConfig())
		if err != nil {
			t.Fatalf("newBuilder() error = %v", err)
		}
		if b.FontName() != config.DefaultFontName {
			t.Errorf("FontName() = %q, want %q", b.FontName(), config.DefaultFontName)
		}
	})

	t.Run("zero metrics fall back to defaults", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Font.CodePointBase = 0
		cfg.Font.UnitsPerEm = 0
		if _, err := newBuilder(cfg); err != nil {
			t.Errorf("newBuilder() error = %v", err)
		}
	})

	t.Run("unknown policy", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Build.OnRepairError = "retry"
		_, err := newBuilder(cfg)
		if !errors.Is(err, config.ErrInvalidField) {
			t.Errorf("error = %v, want %v", err, config.ErrInvalidField)
		}
	})

	t.Run("descent beyond em square", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Font.Descent = cfg.Font.UnitsPerEm
		_, err := newBuilder(cfg)
		if !errors.Is(err, iconfont.ErrInvalidDescent) {
			t.Errorf("error = %v, want %v", err, iconfont.ErrInvalidDescent)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWithHint - Hints for pipeline errors
// ---------------------------------------------------------------------------

func TestWithHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"repair", iconfont.ErrVectorRepair, "--on-repair-error=skip"},
		{"duplicate", iconfont.ErrDuplicateGlyph, "--on-duplicate=overwrite"},
		{"overflow", iconfont.ErrCodePointOverflow, "7000 icons"},
		{"source", iconfont.ErrSourceDirNotFound, "--source"},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := withHint(fmt.Errorf("build: %w", tt.err), config.DefaultConfig(), 7000)
			if !errors.Is(err, tt.err) {
				t.Errorf("withHint() lost the wrapped error: %v", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("withHint() = %q, want it to contain %q", err, tt.contains)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPrintBuildResult - Output levels
// ---------------------------------------------------------------------------

func TestPrintBuildResult(t *testing.T) {
	t.Parallel()

	result := &iconfont.Result{
		FontName: "icons",
		Glyphs:   []iconfont.Glyph{{Name: "debug", CodePoint: 0xE000}},
		Skipped: []iconfont.SkippedIcon{
			{GlyphName: "gone", VectorID: "gone", Source: "icons/gone.svg", Reason: "missing source"},
			{GlyphName: "bad", VectorID: "bad", Source: "icons/bad.svg", Reason: "repair failed", Err: errors.New("no geometry")},
		},
		Timings: []iconfont.StageTiming{{Stage: "merge", Duration: 3 * time.Millisecond}},
	}
	report := buildReport{fontPath: "dist/icons.woff", descriptorPath: "dist/icons.json", elapsed: time.Second}

	t.Run("default", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv()
		printBuildResult(env, result, report)

		wantErr := "WARNING missing source icons/gone.svg (gone)\n" +
			"WARNING repair failed icons/bad.svg (bad): no geometry\n"
		if stderr.String() != wantErr {
			t.Errorf("stderr = %q, want %q", stderr, wantErr)
		}
		wantOut := "Created dist/icons.woff\nCreated dist/icons.json\n"
		if stdout.String() != wantOut {
			t.Errorf("stdout = %q, want %q", stdout, wantOut)
		}
	})

	t.Run("verbose", func(t *testing.T) {
		t.Parallel()

		r := report
		r.verbose = true
		env, stdout, _ := testEnv()
		printBuildResult(env, result, r)

		for _, want := range []string{"merge", "1 glyphs, 2 skipped (1s)"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("stdout missing %q, got:\n%s", want, stdout)
			}
		}
	})

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()

		r := report
		r.quiet = true
		env, stdout, stderr := testEnv()
		printBuildResult(env, result, r)

		if stdout.Len() != 0 || stderr.Len() != 0 {
			t.Errorf("quiet should print nothing, got stdout %q stderr %q", stdout, stderr)
		}
	})
}
