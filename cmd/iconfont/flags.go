package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlag wraps flag parsing failures.
var ErrInvalidFlag = errors.New("invalid flag")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inputFlags holds where the build reads from and writes to.
type inputFlags struct {
	mapping string
	source  string
	output  string
}

// fontFlags holds font identity and metric flags.
type fontFlags struct {
	name          string
	prefix        string
	codePointBase int
	unitsPerEm    int
	descent       int
	weight        string
	style         string
}

// policyFlags holds pipeline behavior flags.
type policyFlags struct {
	workers       int
	onRepairError string
	onDuplicate   string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common commonFlags
	input  inputFlags
	font   fontFlags
	policy policyFlags

	// changed records flags given on the command line, so that zero values
	// like --descent 0 still override the config file.
	changed map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show glyph assignments and timing")
}

// addInputFlags adds input and output location flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVarP(&f.mapping, "mapping", "m", "", "mapping file (YAML or JSON)")
	fs.StringVarP(&f.source, "source", "s", "", "directory holding <id>.svg files")
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default \"dist\")")
}

// addFontFlags adds font flags to a FlagSet.
func addFontFlags(fs *flag.FlagSet, f *fontFlags) {
	fs.StringVarP(&f.name, "name", "n", "", "font name and output file stem (default \"icons\")")
	fs.StringVar(&f.prefix, "prefix", "", "namespace stripped from glyph names (default \"codicon:\")")
	fs.IntVar(&f.codePointBase, "code-point-base", 0, "first code point, e.g. 0xE000")
	fs.IntVar(&f.unitsPerEm, "units-per-em", 0, "em square size in font units (default 1000)")
	fs.IntVar(&f.descent, "descent", 0, "font units below the baseline")
	fs.StringVar(&f.weight, "weight", "", "font weight (default \"normal\")")
	fs.StringVar(&f.style, "style", "", "font style (default \"normal\")")
}

// addPolicyFlags adds pipeline behavior flags to a FlagSet.
func addPolicyFlags(fs *flag.FlagSet, f *policyFlags) {
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel repair workers (0 = auto)")
	fs.StringVar(&f.onRepairError, "on-repair-error", "", "fail or skip (default \"fail\")")
	fs.StringVar(&f.onDuplicate, "on-duplicate", "", "overwrite or error (default \"overwrite\")")
}

// newBuildFlagSet registers every build flag on a new FlagSet bound to f.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addFontFlags(fs, &f.font)
	addPolicyFlags(fs, &f.policy)
	return fs
}

// parseBuildFlags parses build command arguments.
// Returns the flags and any positional arguments.
func parseBuildFlags(args []string) (*buildFlags, []string, error) {
	f := &buildFlags{changed: make(map[string]bool)}
	fs := newBuildFlagSet(f)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}
	fs.Visit(func(fl *flag.Flag) {
		f.changed[fl.Name] = true
	})

	return f, fs.Args(), nil
}
