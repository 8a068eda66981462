package iconfont

import (
	"fmt"
	"strings"
	"time"
)

// Private use area bounds. Code points are assigned from the base upwards
// and must not pass PrivateUseEnd.
const (
	PrivateUseStart = 0xE000
	PrivateUseEnd   = 0xF8FF
)

// Defaults applied by NewBuilder.
const (
	DefaultFontName      = "icons"
	DefaultPrefix        = "codicon:"
	DefaultCodePointBase = PrivateUseStart
	DefaultUnitsPerEm    = 1000
	DefaultWeight        = "normal"
	DefaultStyle         = "normal"
)

// Units per em accepted by the OpenType head table.
const (
	MinUnitsPerEm = 16
	MaxUnitsPerEm = 16384
)

// RepairPolicy decides what happens when a source SVG cannot be repaired.
type RepairPolicy int

const (
	// RepairFailFast fails the whole build on the first repair error.
	RepairFailFast RepairPolicy = iota
	// RepairSkip drops the icon with a warning, like a missing source.
	RepairSkip
)

func (p RepairPolicy) String() string {
	switch p {
	case RepairFailFast:
		return "fail"
	case RepairSkip:
		return "skip"
	}
	return fmt.Sprintf("RepairPolicy(%d)", int(p))
}

// ParseRepairPolicy accepts "fail" or "skip" in any case.
func ParseRepairPolicy(s string) (RepairPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail":
		return RepairFailFast, nil
	case "skip":
		return RepairSkip, nil
	}
	return 0, fmt.Errorf("unknown repair policy %q (expected fail or skip)", s)
}

// DuplicatePolicy decides what happens when two mapping entries produce the
// same glyph name.
type DuplicatePolicy int

const (
	// DuplicateOverwrite keeps both glyphs in the font; the descriptor entry
	// of the later one replaces the earlier one.
	DuplicateOverwrite DuplicatePolicy = iota
	// DuplicateError fails the build.
	DuplicateError
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateOverwrite:
		return "overwrite"
	case DuplicateError:
		return "error"
	}
	return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
}

// ParseDuplicatePolicy accepts "overwrite" or "error" in any case.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overwrite":
		return DuplicateOverwrite, nil
	case "error":
		return DuplicateError, nil
	}
	return 0, fmt.Errorf("unknown duplicate policy %q (expected overwrite or error)", s)
}

// Input is what a build reads.
type Input struct {
	Mapping   Mapping
	SourceDir string // directory holding <vector id>.svg files
}

// Glyph is an icon that made it into the font.
type Glyph struct {
	Name      string
	CodePoint rune
}

// FontCharacter returns the descriptor form of the code point, e.g. `\E000`.
func (g Glyph) FontCharacter() string {
	return fmt.Sprintf(`\%X`, g.CodePoint)
}

// SkippedIcon is a mapping entry that produced no glyph.
type SkippedIcon struct {
	GlyphName string
	VectorID  string
	Source    string // expected path of the source SVG
	Reason    string // "missing source" or "repair failed"
	Err       error  // repair error, if any
}

// StageTiming is the wall time spent in one pipeline stage.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}
