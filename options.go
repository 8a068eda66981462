package iconfont

// Option configures a Builder.
type Option func(*Builder)

// builderConfig holds internal configuration for Builder.
type builderConfig struct {
	fontName      string
	prefix        string
	codePointBase rune
	unitsPerEm    int
	descent       int
	weight        string
	style         string
	workers       int
	repair        RepairPolicy
	duplicates    DuplicatePolicy
	scratchParent string
	onGlyph       func(Glyph)
}

func defaultBuilderConfig() builderConfig {
	return builderConfig{
		fontName:      DefaultFontName,
		prefix:        DefaultPrefix,
		codePointBase: DefaultCodePointBase,
		unitsPerEm:    DefaultUnitsPerEm,
		weight:        DefaultWeight,
		style:         DefaultStyle,
	}
}

// WithFontName sets the font name. It names the output files and is the
// font id in the descriptor.
func WithFontName(name string) Option {
	return func(b *Builder) {
		b.cfg.fontName = name
	}
}

// WithPrefix sets the namespace stripped from mapping keys to form glyph
// names. An empty prefix keeps keys as they are.
func WithPrefix(prefix string) Option {
	return func(b *Builder) {
		b.cfg.prefix = prefix
	}
}

// WithCodePointBase sets the first code point assigned.
func WithCodePointBase(base rune) Option {
	return func(b *Builder) {
		b.cfg.codePointBase = base
	}
}

// WithUnitsPerEm sets the size of the em square in font units.
func WithUnitsPerEm(upm int) Option {
	return func(b *Builder) {
		b.cfg.unitsPerEm = upm
	}
}

// WithDescent moves glyphs down by the given number of font units so that
// part of each icon sits below the baseline.
func WithDescent(descent int) Option {
	return func(b *Builder) {
		b.cfg.descent = descent
	}
}

// WithWeight sets the weight written into the font and the descriptor.
func WithWeight(weight string) Option {
	return func(b *Builder) {
		if weight != "" {
			b.cfg.weight = weight
		}
	}
}

// WithStyle sets the style written into the font and the descriptor.
func WithStyle(style string) Option {
	return func(b *Builder) {
		if style != "" {
			b.cfg.style = style
		}
	}
}

// WithWorkers bounds the number of icons repaired at the same time.
// Zero means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.cfg.workers = n
	}
}

// WithRepairPolicy sets how repair failures are handled.
func WithRepairPolicy(p RepairPolicy) Option {
	return func(b *Builder) {
		b.cfg.repair = p
	}
}

// WithDuplicatePolicy sets how repeated glyph names are handled.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(b *Builder) {
		b.cfg.duplicates = p
	}
}

// WithScratchDir sets the parent of the per-build scratch directory.
// Empty means the system temp directory.
func WithScratchDir(dir string) Option {
	return func(b *Builder) {
		b.cfg.scratchParent = dir
	}
}

// WithGlyphCallback sets a function called as each glyph receives its code
// point, in assignment order. It runs on the goroutine calling Build.
func WithGlyphCallback(fn func(Glyph)) Option {
	return func(b *Builder) {
		b.cfg.onGlyph = fn
	}
}
