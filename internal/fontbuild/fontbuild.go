// Package fontbuild turns a parsed SVG font into an OpenType font with CFF
// outlines.
package fontbuild

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/os2"

	"github.com/alnah/go-iconfont/internal/svgfont"
)

// Sentinel errors for font construction.
var (
	ErrNoFamilyName   = errors.New("font has no family name")
	ErrTooManyGlyphs  = errors.New("too many glyphs")
	ErrRuneOutOfRange = errors.New("code point outside the basic multilingual plane")
	ErrDuplicateRune  = errors.New("code point assigned twice")
)

// maxGlyphs leaves room for .notdef below the 16-bit glyph ID limit.
const maxGlyphs = math.MaxUint16 - 1

// fontTime is used for the head table timestamps so that identical
// input yields identical bytes.
var fontTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Options holds style metadata that the SVG font does not carry.
type Options struct {
	Weight string // CSS-like weight: "normal", "bold" or a number
	Style  string // "normal", "italic" or "oblique"
}

// Build converts f into an OpenType font. Glyph 0 is an empty .notdef,
// the SVG glyphs follow in document order and are reachable through a
// format 4 cmap.
func Build(f *svgfont.Font, opts Options) (*sfnt.Font, error) {
	family := sanitizeName(f.FamilyName)
	if family == "" {
		return nil, ErrNoFamilyName
	}
	if len(f.Glyphs) > maxGlyphs {
		return nil, fmt.Errorf("%w: %d, at most %d", ErrTooManyGlyphs, len(f.Glyphs), maxGlyphs)
	}

	upm := f.UnitsPerEm
	glyphs := make([]*cff.Glyph, 0, len(f.Glyphs)+1)
	glyphs = append(glyphs, cff.NewGlyph(".notdef", float64(f.Advance)))

	names := map[string]bool{".notdef": true}
	mapping := cmap.Format4{}
	for i, g := range f.Glyphs {
		if g.Rune < 0 || g.Rune > 0xFFFF {
			return nil, fmt.Errorf("%w: glyph %q has U+%04X", ErrRuneOutOfRange, g.Name, g.Rune)
		}
		key := uint16(g.Rune)
		if _, taken := mapping[key]; taken {
			return nil, fmt.Errorf("%w: U+%04X", ErrDuplicateRune, g.Rune)
		}
		gid := glyph.ID(i + 1)
		mapping[key] = gid

		cg := cff.NewGlyph(uniqueName(glyphName(g.Name, i), names), float64(g.Advance))
		for _, c := range g.Contours {
			if len(c) < 2 {
				continue
			}
			cg.MoveTo(c[0].X, c[0].Y)
			for _, p := range c[1:] {
				cg.LineTo(p.X, p.Y)
			}
		}
		glyphs = append(glyphs, cg)
	}

	// Single-byte encoding is required for a simple CFF font; icons are
	// reached through the cmap only.
	encoding := make([]glyph.ID, 256)

	outlines := &cff.Outlines{
		Glyphs: glyphs,
		Private: []*type1.PrivateDict{
			{
				BlueScale: 0.039625,
				BlueShift: 7,
				BlueFuzz:  1,
			},
		},
		FDSelect: func(glyph.ID) int { return 0 },
		Encoding: encoding,
	}

	ascent := f.Ascent
	if ascent == 0 {
		ascent = upm
	}
	weight := weightClass(opts.Weight)
	italic := isItalic(opts.Style)
	q := 1 / float64(upm)

	font := &sfnt.Font{
		FamilyName:         family,
		Ascent:             funit.Int16(ascent),
		Descent:            funit.Int16(f.Descent),
		LineGap:            0,
		UnderlinePosition:  funit.Float64(f.Descent - upm/10),
		UnderlineThickness: funit.Float64(upm / 20),
		CapHeight:          funit.Int16(ascent),
		XHeight:            funit.Int16(ascent / 2),
		Outlines:           outlines,
		Width:              os2.WidthNormal,
		Weight:             weight,
		IsBold:             weight >= os2.WeightBold,
		IsItalic:           italic,
		IsRegular:          weight < os2.WeightBold && !italic,
		PermUse:            os2.PermInstall,
		CreationTime:       fontTime,
		ModificationTime:   fontTime,
		UnitsPerEm:         uint16(upm),
		FontMatrix:         matrix.Matrix{q, 0, 0, q, 0, 0},
		CMapTable: cmap.Table{
			{PlatformID: 0, EncodingID: 3}: mapping.Encode(0),
			{PlatformID: 3, EncodingID: 1}: mapping.Encode(0),
		},
	}
	return font, nil
}

// Encode serializes font as OpenType (CFF flavored) bytes.
func Encode(font *sfnt.Font) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := font.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing OpenType font: %w", err)
	}
	return buf.Bytes(), nil
}

// glyphName returns a PostScript-safe glyph name. Names that sanitize to
// nothing fall back to the glyph index.
func glyphName(name string, index int) string {
	if s := sanitizeName(name); s != "" {
		return s
	}
	return "icon" + strconv.Itoa(index)
}

// uniqueName appends .1, .2, ... until name is unused, then records it.
func uniqueName(name string, used map[string]bool) string {
	candidate := name
	for n := 1; used[candidate]; n++ {
		candidate = name + "." + strconv.Itoa(n)
	}
	used[candidate] = true
	return candidate
}

// sanitizeName keeps printable ASCII except the PostScript delimiters and
// limits the result to 63 bytes.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r <= ' ' || r > '~' || strings.ContainsRune("[](){}<>/%", r) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	out := strings.Trim(b.String(), "_")
	if len(out) > 63 {
		out = out[:63]
	}
	return out
}

func weightClass(s string) os2.Weight {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 1000 {
		return os2.Weight(n)
	}
	switch s {
	case "", "normal", "regular":
		return os2.WeightNormal
	case "bold":
		return os2.WeightBold
	}
	if w := os2.WeightFromString(s); w != 0 {
		return w
	}
	return os2.WeightNormal
}

func isItalic(style string) bool {
	s := strings.ToLower(strings.TrimSpace(style))
	return strings.HasPrefix(s, "italic") || strings.HasPrefix(s, "oblique")
}
