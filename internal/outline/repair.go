package outline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Sentinel errors for repair operations.
var (
	ErrParse       = errors.New("cannot parse SVG")
	ErrNoViewBox   = errors.New("SVG has no usable viewBox or size")
	ErrNoGeometry  = errors.New("SVG has no drawable geometry")
	ErrInvalidSize = errors.New("target size must be positive")
)

// currentColor is resolved to black: only coverage matters, not color.
var currentColorNames = [][]byte{[]byte("currentColor"), []byte("currentcolor")}

// Repair reads an SVG icon and returns its filled outline scaled into a
// size x size box (y pointing down, aspect ratio kept, centered).
func Repair(r io.Reader, size float64) (*Outline, error) {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading SVG: %w", err)
	}
	for _, name := range currentColorNames {
		data = bytes.ReplaceAll(data, name, []byte("#000000"))
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	vb := icon.ViewBox
	if vb.W <= 0 || vb.H <= 0 {
		return nil, ErrNoViewBox
	}
	scale := size / math.Max(vb.W, vb.H)
	w, h := vb.W*scale, vb.H*scale
	icon.SetTarget((size-w)/2, (size-h)/2, w, h)

	rec := newRecorder()
	px := int(math.Ceil(size))
	icon.Draw(rasterx.NewDasher(px, px, rec), 1)

	o := &Outline{Width: size, Height: size, Contours: rec.contours}
	o.Clean()
	if len(o.Contours) == 0 {
		return nil, ErrNoGeometry
	}
	return o, nil
}
