package iconfont

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-iconfont/internal/fileutil"
	"github.com/alnah/go-iconfont/internal/pipeline"
)

// fontNamePattern keeps font names usable as file names and font ids.
var fontNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Builder runs the icon font pipeline. Create with NewBuilder; a Builder
// holds no per-build state and may be used for several builds, including
// concurrent ones.
type Builder struct {
	cfg builderConfig
}

// NewBuilder creates a Builder with default configuration adjusted by opts.
// Returns an error if the resulting configuration is invalid.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{cfg: defaultBuilderConfig()}
	for _, opt := range opts {
		opt(b)
	}
	if err := b.cfg.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (c *builderConfig) validate() error {
	if err := fileutil.ValidateName(c.fontName); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFontName, err)
	}
	if !fontNamePattern.MatchString(c.fontName) {
		return fmt.Errorf("%w: %q (letters, digits, '.', '_' and '-' only)", ErrInvalidFontName, c.fontName)
	}
	if c.codePointBase < PrivateUseStart || c.codePointBase > PrivateUseEnd {
		return fmt.Errorf("%w: U+%04X", ErrInvalidCodePointBase, c.codePointBase)
	}
	if c.unitsPerEm < MinUnitsPerEm || c.unitsPerEm > MaxUnitsPerEm {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidUnitsPerEm, c.unitsPerEm, MinUnitsPerEm, MaxUnitsPerEm)
	}
	if c.descent < 0 || c.descent >= c.unitsPerEm {
		return fmt.Errorf("%w: %d (must be between 0 and units per em)", ErrInvalidDescent, c.descent)
	}
	if c.workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.workers)
	}
	return nil
}

// FontName returns the configured font name.
func (b *Builder) FontName() string {
	return b.cfg.fontName
}

// Build runs the pipeline on in and returns the generated font and
// descriptor. Nothing is written outside the scratch directory, which is
// removed before Build returns; call Result.WriteFiles to store the outputs.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (b *Builder) Build(ctx context.Context, in Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if !fileutil.DirExists(in.SourceDir) {
		return nil, fmt.Errorf("%w: %s", ErrSourceDirNotFound, in.SourceDir)
	}

	scratch, cleanup, err := fileutil.MakeScratchDir(b.cfg.scratchParent, "iconfont-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScratchDir, err)
	}
	defer cleanup()

	res := &Result{FontName: b.cfg.fontName}
	timed := func(stage string, start time.Time) {
		res.Timings = append(res.Timings, StageTiming{Stage: stage, Duration: time.Since(start)})
	}

	// Resolve
	start := time.Now()
	resolved := pipeline.Resolve(in.Mapping.entries(), b.cfg.prefix)
	timed("resolve", start)

	// Normalize
	start = time.Now()
	normalized, err := pipeline.Normalize(ctx, resolved, pipeline.NormalizeOptions{
		SourceDir:          in.SourceDir,
		ScratchDir:         scratch,
		UnitsPerEm:         b.cfg.unitsPerEm,
		Workers:            b.cfg.workers,
		SkipRepairFailures: b.cfg.repair == RepairSkip,
	})
	if err != nil {
		return nil, stageError(err)
	}
	for _, s := range normalized.Skipped {
		res.Skipped = append(res.Skipped, SkippedIcon(s))
	}
	timed("normalize", start)

	// Merge
	start = time.Now()
	var onGlyph func(pipeline.Glyph)
	if fn := b.cfg.onGlyph; fn != nil {
		onGlyph = func(g pipeline.Glyph) { fn(Glyph(g)) }
	}
	merged, err := pipeline.Merge(ctx, normalized.Icons, pipeline.MergeOptions{
		FamilyName:       b.cfg.fontName,
		UnitsPerEm:       b.cfg.unitsPerEm,
		Descent:          b.cfg.descent,
		CodePointBase:    b.cfg.codePointBase,
		RejectDuplicates: b.cfg.duplicates == DuplicateError,
		OnGlyph:          onGlyph,
	})
	if err != nil {
		return nil, stageError(err)
	}
	for _, g := range merged.Glyphs {
		res.Glyphs = append(res.Glyphs, Glyph(g))
	}
	timed("merge", start)

	// Transcode and descriptor only read the merge output.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	var g errgroup.Group
	g.Go(func() error {
		data, err := pipeline.Transcode(merged.SVGFont, pipeline.TranscodeOptions{
			Weight: b.cfg.weight,
			Style:  b.cfg.style,
		})
		if err != nil {
			return stageError(err)
		}
		res.WOFF = data
		return nil
	})
	g.Go(func() error {
		data, err := pipeline.Descriptor(merged.Glyphs, pipeline.DescriptorOptions{
			FontID: b.cfg.fontName,
			Weight: b.cfg.weight,
			Style:  b.cfg.style,
		})
		if err != nil {
			return stageError(err)
		}
		res.Descriptor = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	timed("transcode+descriptor", start)

	return res, nil
}

// stageError maps pipeline errors to the library's sentinels. Context
// errors pass through unchanged.
func stageError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, pipeline.ErrRepair):
		return fmt.Errorf("%w: %v", ErrVectorRepair, err)
	case errors.Is(err, pipeline.ErrCodePointOverflow):
		return fmt.Errorf("%w: %v", ErrCodePointOverflow, err)
	case errors.Is(err, pipeline.ErrDuplicateGlyph):
		return fmt.Errorf("%w: %v", ErrDuplicateGlyph, err)
	case errors.Is(err, pipeline.ErrMerge):
		return fmt.Errorf("%w: %v", ErrFontMerge, err)
	case errors.Is(err, pipeline.ErrTranscode):
		return fmt.Errorf("%w: %v", ErrTranscode, err)
	case errors.Is(err, pipeline.ErrDescriptor):
		return fmt.Errorf("%w: %v", ErrDescriptor, err)
	}
	return err
}
