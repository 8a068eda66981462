package outline

import (
	"errors"
	"fmt"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ErrMalformedPath is returned for path data oksvg cannot compile.
var ErrMalformedPath = errors.New("malformed path data")

// ParsePathData compiles SVG path data and returns its subpaths as closed
// contours. Curves and arcs are flattened into straight segments and open
// subpaths are closed implicitly. Orientation is kept as written.
func ParsePathData(d string) ([]Contour, error) {
	pc := oksvg.PathCursor{ErrorMode: oksvg.StrictErrorMode}
	if err := pc.CompilePath(d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPath, err)
	}

	rec := newRecorder()
	pc.Path.AddTo(rasterx.NewFiller(1, 1, rec))
	rec.endContour()

	var contours []Contour
	for _, c := range rec.pending {
		// The filler closes every subpath by repeating its first point.
		if len(c) > 1 && c[0] == c[len(c)-1] {
			c = c[:len(c)-1]
		}
		if len(c) > 1 {
			contours = append(contours, c)
		}
	}
	return contours, nil
}
