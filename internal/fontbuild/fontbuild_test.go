package fontbuild

// Notes:
// - Fonts are checked by reading the encoded bytes back with sfnt.Read, the
//   same way a consumer would see them.

import (
	"bytes"
	"errors"
	"testing"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/os2"

	"github.com/alnah/go-iconfont/internal/outline"
	"github.com/alnah/go-iconfont/internal/svgfont"
)

func testFont(glyphs ...svgfont.Glyph) *svgfont.Font {
	return &svgfont.Font{
		ID:         "icons",
		FamilyName: "icons",
		UnitsPerEm: 1000,
		Ascent:     1000,
		Advance:    1000,
		Glyphs:     glyphs,
	}
}

func squareGlyph(name string, r rune) svgfont.Glyph {
	return svgfont.Glyph{
		Name:     name,
		Rune:     r,
		Advance:  1000,
		Contours: []outline.Contour{{{X: 100, Y: 100}, {X: 900, Y: 100}, {X: 900, Y: 900}, {X: 100, Y: 900}}},
	}
}

// ---------------------------------------------------------------------------
// TestBuild - OpenType construction and round trip
// ---------------------------------------------------------------------------

func TestBuild_RoundTrip(t *testing.T) {
	t.Parallel()

	f := testFont(squareGlyph("debug", 0xE000), squareGlyph("alert", 0xE001))
	font, err := Build(f, Options{Weight: "normal", Style: "normal"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	data, err := Encode(font)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("sfnt.Read() error = %v", err)
	}
	if !got.IsCFF() {
		t.Error("IsCFF() = false, want CFF outlines")
	}
	if got.NumGlyphs() != 3 {
		t.Errorf("NumGlyphs() = %d, want 3", got.NumGlyphs())
	}
	if got.FamilyName != "icons" {
		t.Errorf("FamilyName = %q, want %q", got.FamilyName, "icons")
	}
	if got.UnitsPerEm != 1000 {
		t.Errorf("UnitsPerEm = %d, want 1000", got.UnitsPerEm)
	}

	sub, err := got.CMapTable.GetBest()
	if err != nil {
		t.Fatalf("GetBest() error = %v", err)
	}
	for r, want := range map[rune]glyph.ID{0xE000: 1, 0xE001: 2, 'A': 0} {
		if gid := sub.Lookup(r); gid != want {
			t.Errorf("Lookup(U+%04X) = %d, want %d", r, gid, want)
		}
	}
	if name := got.GlyphName(1); name != "debug" {
		t.Errorf("GlyphName(1) = %q, want %q", name, "debug")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	encode := func() []byte {
		font, err := Build(testFont(squareGlyph("a", 0xE000)), Options{})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		data, err := Encode(font)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		return data
	}
	if !bytes.Equal(encode(), encode()) {
		t.Error("two builds of the same font differ")
	}
}

func TestBuild_EmptyFont(t *testing.T) {
	t.Parallel()

	font, err := Build(testFont(), Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := Encode(font); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	noName := testFont()
	noName.FamilyName = "  "

	tests := []struct {
		name    string
		font    *svgfont.Font
		wantErr error
	}{
		{"no family name", noName, ErrNoFamilyName},
		{"astral code point", testFont(squareGlyph("a", 0x1F600)), ErrRuneOutOfRange},
		{"same code point twice", testFont(squareGlyph("a", 0xE000), squareGlyph("b", 0xE000)), ErrDuplicateRune},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Build(tt.font, Options{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestGlyphNames - Names are made unique and PostScript-safe
// ---------------------------------------------------------------------------

func TestBuild_GlyphNames(t *testing.T) {
	t.Parallel()

	f := testFont(
		squareGlyph("arrow", 0xE000),
		squareGlyph("arrow", 0xE001),
		squareGlyph("a b/c", 0xE002),
		squareGlyph("", 0xE003),
		squareGlyph(".notdef", 0xE004),
	)
	font, err := Build(f, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []string{".notdef", "arrow", "arrow.1", "a_b_c", "icon3", ".notdef.1"}
	for gid, name := range want {
		if got := font.GlyphName(glyph.ID(gid)); got != name {
			t.Errorf("GlyphName(%d) = %q, want %q", gid, got, name)
		}
	}
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"debug", "debug"},
		{"debug-alt", "debug-alt"},
		{"héllo", "h_llo"},
		{"(x)", "x"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWeightClass - Descriptor weight to OS/2 weight class
// ---------------------------------------------------------------------------

func TestWeightClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want os2.Weight
	}{
		{"", os2.WeightNormal},
		{"normal", os2.WeightNormal},
		{"Bold", os2.WeightBold},
		{"300", os2.Weight(300)},
		{"nonsense", os2.WeightNormal},
	}
	for _, tt := range tests {
		if got := weightClass(tt.in); got != tt.want {
			t.Errorf("weightClass(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsItalic(t *testing.T) {
	t.Parallel()

	for style, want := range map[string]bool{"normal": false, "italic": true, "oblique 10deg": true, "": false} {
		if got := isItalic(style); got != want {
			t.Errorf("isItalic(%q) = %v, want %v", style, got, want)
		}
	}
}
