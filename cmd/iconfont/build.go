package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	iconfont "github.com/alnah/go-iconfont"
	"github.com/alnah/go-iconfont/internal/config"
	"github.com/alnah/go-iconfont/internal/hints"
)

// Sentinel errors for the build command.
var (
	ErrNoMapping      = errors.New("no mapping file specified")
	ErrNoSource       = errors.New("no source directory specified")
	ErrUnexpectedArgs = errors.New("unexpected arguments")
)

// runBuild resolves configuration, runs the pipeline and writes the font
// and descriptor into the output directory.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printBuildUsage(env.Stdout)
			return nil
		}
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: %v", ErrUnexpectedArgs, positional)
	}

	environ := env.Environ()
	warnUnknownEnvVars(env.Stderr, environ)

	cfg, err := resolveConfig(flags, environ)
	if err != nil {
		return err
	}

	if cfg.Mapping.File == "" {
		return fmt.Errorf("%w%s", ErrNoMapping, hints.ForMappingNotFound())
	}
	if cfg.Source.Dir == "" {
		return fmt.Errorf("%w%s", ErrNoSource, hints.ForSourceDir())
	}

	var extra []iconfont.Option
	if flags.common.verbose && !flags.common.quiet {
		extra = append(extra, iconfont.WithGlyphCallback(func(g iconfont.Glyph) {
			fmt.Fprintf(env.Stdout, "  %s U+%04X\n", g.Name, g.CodePoint)
		}))
	}

	builder, err := newBuilder(cfg, extra...)
	if err != nil {
		return err
	}

	mapping, err := iconfont.LoadMapping(cfg.Mapping.File)
	if err != nil {
		if errors.Is(err, iconfont.ErrMappingNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForMappingNotFound())
		}
		return err
	}

	start := env.Now()
	result, err := builder.Build(ctx, iconfont.Input{Mapping: mapping, SourceDir: cfg.Source.Dir})
	if err != nil {
		return withHint(err, cfg, len(mapping))
	}

	fontPath, descriptorPath, err := result.WriteFiles(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	}

	printBuildResult(env, result, buildReport{
		quiet:          flags.common.quiet,
		verbose:        flags.common.verbose,
		fontPath:       fontPath,
		descriptorPath: descriptorPath,
		elapsed:        env.Now().Sub(start),
	})
	return nil
}

// resolveConfig layers defaults, config file, environment and flags.
func resolveConfig(flags *buildFlags, environ []string) (*config.Config, error) {
	envCfg, err := loadEnvConfig(environ)
	if err != nil {
		return nil, err
	}

	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if configName != "" {
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(configName)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies CLI flags to config. Only flags given on the command
// line override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	set := func(name string) bool { return flags.changed[name] }

	if set("mapping") {
		cfg.Mapping.File = flags.input.mapping
	}
	if set("source") {
		cfg.Source.Dir = flags.input.source
	}
	if set("output") {
		cfg.Output.Dir = flags.input.output
	}
	if set("name") {
		cfg.Font.Name = flags.font.name
	}
	if set("prefix") {
		cfg.Mapping.Prefix = flags.font.prefix
	}
	if set("code-point-base") {
		cfg.Font.CodePointBase = flags.font.codePointBase
	}
	if set("units-per-em") {
		cfg.Font.UnitsPerEm = flags.font.unitsPerEm
	}
	if set("descent") {
		cfg.Font.Descent = flags.font.descent
	}
	if set("weight") {
		cfg.Font.Weight = flags.font.weight
	}
	if set("style") {
		cfg.Font.Style = flags.font.style
	}
	if set("workers") {
		cfg.Build.Workers = flags.policy.workers
	}
	if set("on-repair-error") {
		cfg.Build.OnRepairError = flags.policy.onRepairError
	}
	if set("on-duplicate") {
		cfg.Build.OnDuplicate = flags.policy.onDuplicate
	}
}

// newBuilder translates a validated config into builder options; extra
// options are applied last.
func newBuilder(cfg *config.Config, extra ...iconfont.Option) (*iconfont.Builder, error) {
	repair, err := iconfont.ParseRepairPolicy(cfg.Build.OnRepairError)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidField, err)
	}
	duplicates, err := iconfont.ParseDuplicatePolicy(cfg.Build.OnDuplicate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidField, err)
	}

	opts := []iconfont.Option{
		iconfont.WithFontName(cfg.Font.Name),
		iconfont.WithPrefix(cfg.Mapping.Prefix),
		iconfont.WithDescent(cfg.Font.Descent),
		iconfont.WithWeight(cfg.Font.Weight),
		iconfont.WithStyle(cfg.Font.Style),
		iconfont.WithWorkers(cfg.Build.Workers),
		iconfont.WithRepairPolicy(repair),
		iconfont.WithDuplicatePolicy(duplicates),
	}
	// Zero means "not set" in a config file.
	if cfg.Font.CodePointBase != 0 {
		opts = append(opts, iconfont.WithCodePointBase(rune(cfg.Font.CodePointBase)))
	}
	if cfg.Font.UnitsPerEm != 0 {
		opts = append(opts, iconfont.WithUnitsPerEm(cfg.Font.UnitsPerEm))
	}

	return iconfont.NewBuilder(append(opts, extra...)...)
}

// withHint appends an actionable hint to pipeline errors that have one.
func withHint(err error, cfg *config.Config, glyphs int) error {
	switch {
	case errors.Is(err, iconfont.ErrSourceDirNotFound):
		return fmt.Errorf("%w%s", err, hints.ForSourceDir())
	case errors.Is(err, iconfont.ErrVectorRepair):
		return fmt.Errorf("%w%s", err, hints.ForRepairFailure())
	case errors.Is(err, iconfont.ErrCodePointOverflow):
		base := rune(cfg.Font.CodePointBase)
		if base == 0 {
			base = iconfont.DefaultCodePointBase
		}
		return fmt.Errorf("%w%s", err, hints.ForCodePointOverflow(base, glyphs))
	case errors.Is(err, iconfont.ErrDuplicateGlyph):
		return fmt.Errorf("%w%s", err, hints.ForDuplicateGlyph())
	}
	return err
}

// buildReport carries what printBuildResult needs besides the result.
type buildReport struct {
	quiet          bool
	verbose        bool
	fontPath       string
	descriptorPath string
	elapsed        time.Duration
}

// printBuildResult writes skip warnings to stderr and the summary to stdout.
func printBuildResult(env *Environment, result *iconfont.Result, r buildReport) {
	if r.quiet {
		return
	}

	for _, s := range result.Skipped {
		if s.Err != nil {
			fmt.Fprintf(env.Stderr, "WARNING %s %s (%s): %v\n", s.Reason, s.Source, s.GlyphName, s.Err)
			continue
		}
		fmt.Fprintf(env.Stderr, "WARNING %s %s (%s)\n", s.Reason, s.Source, s.GlyphName)
	}

	if r.verbose {
		for _, st := range result.Timings {
			fmt.Fprintf(env.Stdout, "  %-22s %v\n", st.Stage, st.Duration.Round(time.Millisecond))
		}
	}

	fmt.Fprintf(env.Stdout, "Created %s\n", r.fontPath)
	fmt.Fprintf(env.Stdout, "Created %s\n", r.descriptorPath)

	if r.verbose {
		fmt.Fprintf(env.Stdout, "\n%d glyphs, %d skipped (%v)\n",
			len(result.Glyphs), len(result.Skipped), r.elapsed.Round(time.Millisecond))
	}
}
