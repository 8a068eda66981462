package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-iconfont/internal/svgfont"
)

// Sentinel errors for the merge stage.
var (
	ErrMerge             = errors.New("font merge failed")
	ErrCodePointOverflow = errors.New("code point past the end of the private use area")
	ErrDuplicateGlyph    = errors.New("duplicate glyph name")
)

// PrivateUseEnd is the last code point of the BMP private use area.
const PrivateUseEnd = 0xF8FF

// MergeOptions configures Merge.
type MergeOptions struct {
	FamilyName    string
	UnitsPerEm    int
	Descent       int
	CodePointBase rune

	// RejectDuplicates makes a repeated glyph name fatal. Otherwise the
	// later glyph wins in the descriptor.
	RejectDuplicates bool

	// OnGlyph, if set, is called after each glyph is added.
	OnGlyph func(Glyph)
}

// Glyph is a glyph name bound to its code point.
type Glyph struct {
	Name      string
	CodePoint rune
}

// MergeResult is the merged SVG font with its glyphs in assignment order.
type MergeResult struct {
	SVGFont string
	Glyphs  []Glyph
}

// Merge streams the repaired icons, in order, into one SVG font. Each icon
// gets the next code point, starting at CodePointBase.
func Merge(ctx context.Context, icons []Normalized, opts MergeOptions) (*MergeResult, error) {
	var buf strings.Builder
	w := svgfont.NewWriter(&buf, svgfont.FontOptions{
		FamilyName: opts.FamilyName,
		UnitsPerEm: opts.UnitsPerEm,
		Descent:    opts.Descent,
	})

	seen := make(map[string]bool, len(icons))
	glyphs := make([]Glyph, 0, len(icons))
	next := opts.CodePointBase
	for _, icon := range icons {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if next > PrivateUseEnd {
			return nil, fmt.Errorf("%w: glyph %q would get U+%04X", ErrCodePointOverflow, icon.GlyphName, next)
		}
		if seen[icon.GlyphName] && opts.RejectDuplicates {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateGlyph, icon.GlyphName)
		}
		seen[icon.GlyphName] = true

		if err := addGlyph(w, icon, next); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMerge, err)
		}
		g := Glyph{Name: icon.GlyphName, CodePoint: next}
		glyphs = append(glyphs, g)
		if opts.OnGlyph != nil {
			opts.OnGlyph(g)
		}
		next++
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMerge, err)
	}
	return &MergeResult{SVGFont: buf.String(), Glyphs: glyphs}, nil
}

func addGlyph(w *svgfont.Writer, icon Normalized, cp rune) error {
	f, err := os.Open(icon.Path) // #nosec G304 -- scratch file written by Normalize
	if err != nil {
		return err
	}
	defer f.Close()
	return w.AddGlyph(icon.GlyphName, string(cp), f)
}
