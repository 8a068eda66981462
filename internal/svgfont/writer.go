// Package svgfont writes and reads SVG font documents: one <font> element
// holding a <glyph> per icon, with outlines in font units (y pointing up).
package svgfont

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-iconfont/internal/outline"
)

// Sentinel errors for SVG font operations.
var (
	ErrClosed       = errors.New("svg font writer is closed")
	ErrInvalidGlyph = errors.New("invalid glyph")
	ErrInvalidFont  = errors.New("invalid svg font")
)

const header = `<?xml version="1.0" standalone="no"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg xmlns="http://www.w3.org/2000/svg">
<defs>
`

// FontOptions describes the font a Writer produces.
type FontOptions struct {
	FamilyName string
	UnitsPerEm int
	Descent    int // units below the baseline, positive
}

// Writer streams glyphs into an SVG font document.
//
// The document header is written with the first glyph, and Close writes the
// closing elements. Errors are sticky: after the first failure every call
// returns the same error.
type Writer struct {
	w      *bufio.Writer
	opts   FontOptions
	begun  bool
	closed bool
	err    error
}

// NewWriter returns a Writer that writes the font to w.
func NewWriter(w io.Writer, opts FontOptions) *Writer {
	return &Writer{w: bufio.NewWriter(w), opts: opts}
}

// AddGlyph reads one SVG icon from src and appends it as a glyph.
// unicode must hold exactly one rune.
func (w *Writer) AddGlyph(name, unicode string, src io.Reader) error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return ErrClosed
	}
	if name == "" {
		return fmt.Errorf("%w: empty glyph name", ErrInvalidGlyph)
	}
	if len([]rune(unicode)) != 1 {
		return fmt.Errorf("%w: %q needs exactly one character, got %q", ErrInvalidGlyph, name, unicode)
	}

	contours, err := w.readIcon(src)
	if err != nil {
		return fmt.Errorf("glyph %q: %w", name, err)
	}
	if err := w.begin(); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(`    <glyph glyph-name="`)
	escape(&b, name)
	b.WriteString(`" unicode="`)
	for _, r := range unicode {
		fmt.Fprintf(&b, "&#x%X;", r)
	}
	fmt.Fprintf(&b, `" horiz-adv-x="%d" d="%s"/>`+"\n", w.opts.UnitsPerEm, outline.FormatPathData(contours))
	return w.write(b.String())
}

// Close finishes the document and flushes it. Close on a writer without
// glyphs still produces a valid, empty font.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return ErrClosed
	}
	if err := w.begin(); err != nil {
		return err
	}
	w.closed = true
	if err := w.write("  </font>\n</defs>\n</svg>\n"); err != nil {
		return err
	}
	if err := w.w.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

func (w *Writer) begin() error {
	if w.begun {
		return nil
	}
	w.begun = true

	var b strings.Builder
	b.WriteString(header)
	b.WriteString(`  <font id="`)
	escape(&b, w.opts.FamilyName)
	fmt.Fprintf(&b, `" horiz-adv-x="%d">`+"\n", w.opts.UnitsPerEm)
	b.WriteString(`    <font-face font-family="`)
	escape(&b, w.opts.FamilyName)
	fmt.Fprintf(&b, `" units-per-em="%d" ascent="%d" descent="%d"/>`+"\n",
		w.opts.UnitsPerEm, w.opts.UnitsPerEm-w.opts.Descent, -w.opts.Descent)
	b.WriteString(`    <missing-glyph horiz-adv-x="0"/>` + "\n")
	return w.write(b.String())
}

func (w *Writer) write(s string) error {
	if _, err := w.w.WriteString(s); err != nil {
		w.err = err
		return err
	}
	return nil
}

// readIcon collects the path data of an SVG icon and maps it from the
// icon's viewBox into font units.
func (w *Writer) readIcon(src io.Reader) ([]outline.Contour, error) {
	dec := xml.NewDecoder(src)
	var (
		box      viewBox
		haveBox  bool
		contours []outline.Contour
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidGlyph, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "svg":
			if haveBox {
				continue // nested svg elements keep the outer coordinate system
			}
			box, err = parseViewBox(start.Attr)
			if err != nil {
				return nil, err
			}
			haveBox = true
		case "path":
			d := attr(start.Attr, "d")
			cs, err := outline.ParsePathData(d)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidGlyph, err)
			}
			contours = append(contours, cs...)
		}
	}
	if !haveBox {
		return nil, fmt.Errorf("%w: no svg element", ErrInvalidGlyph)
	}

	upm := float64(w.opts.UnitsPerEm)
	sx, sy := upm/box.w, upm/box.h
	descent := float64(w.opts.Descent)
	o := &outline.Outline{Width: upm, Height: upm, Contours: contours}
	o.Transform(func(p outline.Point) outline.Point {
		return outline.Point{
			X: (p.X - box.x) * sx,
			Y: upm - (p.Y-box.y)*sy - descent,
		}
	})
	return o.Contours, nil
}

type viewBox struct{ x, y, w, h float64 }

func parseViewBox(attrs []xml.Attr) (viewBox, error) {
	if v := attr(attrs, "viewBox"); v != "" {
		f := strings.FieldsFunc(v, func(r rune) bool { return r == ' ' || r == ',' })
		if len(f) != 4 {
			return viewBox{}, fmt.Errorf("%w: malformed viewBox %q", ErrInvalidGlyph, v)
		}
		var n [4]float64
		for i, s := range f {
			x, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return viewBox{}, fmt.Errorf("%w: malformed viewBox %q", ErrInvalidGlyph, v)
			}
			n[i] = x
		}
		if n[2] <= 0 || n[3] <= 0 {
			return viewBox{}, fmt.Errorf("%w: empty viewBox %q", ErrInvalidGlyph, v)
		}
		return viewBox{n[0], n[1], n[2], n[3]}, nil
	}

	width, errW := strconv.ParseFloat(strings.TrimSuffix(attr(attrs, "width"), "px"), 64)
	height, errH := strconv.ParseFloat(strings.TrimSuffix(attr(attrs, "height"), "px"), 64)
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return viewBox{}, fmt.Errorf("%w: no viewBox or size", ErrInvalidGlyph)
	}
	return viewBox{0, 0, width, height}, nil
}

func attr(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func escape(b *strings.Builder, s string) {
	// strings.Builder writes never fail.
	_ = xml.EscapeText(b, []byte(s))
}
