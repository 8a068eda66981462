package svgfont

import (
	"encoding/xml"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/alnah/go-iconfont/internal/outline"
)

// Font is a parsed SVG font.
type Font struct {
	ID         string
	FamilyName string
	UnitsPerEm int
	Ascent     int
	Descent    int // negative, as written in the document
	Advance    int // default glyph advance
	Glyphs     []Glyph
}

// Glyph is one glyph of a parsed SVG font, in document order.
type Glyph struct {
	Name     string
	Rune     rune
	Advance  int
	Contours []outline.Contour
}

type document struct {
	XMLName xml.Name  `xml:"svg"`
	Fonts   []docFont `xml:"defs>font"`
}

type docFont struct {
	ID        string     `xml:"id,attr"`
	HorizAdvX int        `xml:"horiz-adv-x,attr"`
	Face      docFace    `xml:"font-face"`
	Glyphs    []docGlyph `xml:"glyph"`
}

type docFace struct {
	FontFamily string `xml:"font-family,attr"`
	UnitsPerEm int    `xml:"units-per-em,attr"`
	Ascent     int    `xml:"ascent,attr"`
	Descent    int    `xml:"descent,attr"`
}

type docGlyph struct {
	Name      string `xml:"glyph-name,attr"`
	Unicode   string `xml:"unicode,attr"`
	HorizAdvX int    `xml:"horiz-adv-x,attr"`
	D         string `xml:"d,attr"`
}

// Parse reads an SVG font document. Only the first <font> element is used.
func Parse(r io.Reader) (*Font, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}
	if len(doc.Fonts) == 0 {
		return nil, fmt.Errorf("%w: no font element", ErrInvalidFont)
	}
	df := doc.Fonts[0]
	if df.Face.UnitsPerEm <= 0 {
		return nil, fmt.Errorf("%w: units-per-em must be positive, got %d", ErrInvalidFont, df.Face.UnitsPerEm)
	}

	f := &Font{
		ID:         df.ID,
		FamilyName: df.Face.FontFamily,
		UnitsPerEm: df.Face.UnitsPerEm,
		Ascent:     df.Face.Ascent,
		Descent:    df.Face.Descent,
		Advance:    df.HorizAdvX,
	}
	if f.FamilyName == "" {
		f.FamilyName = f.ID
	}
	if f.Advance == 0 {
		f.Advance = f.UnitsPerEm
	}

	for i, dg := range df.Glyphs {
		if utf8.RuneCountInString(dg.Unicode) != 1 {
			return nil, fmt.Errorf("%w: glyph %d (%q) needs exactly one character", ErrInvalidGlyph, i, dg.Name)
		}
		r, _ := utf8.DecodeRuneInString(dg.Unicode)
		contours, err := outline.ParsePathData(dg.D)
		if err != nil {
			return nil, fmt.Errorf("%w: glyph %q: %v", ErrInvalidGlyph, dg.Name, err)
		}
		adv := dg.HorizAdvX
		if adv == 0 {
			adv = f.Advance
		}
		f.Glyphs = append(f.Glyphs, Glyph{
			Name:     dg.Name,
			Rune:     r,
			Advance:  adv,
			Contours: contours,
		})
	}
	return f, nil
}
