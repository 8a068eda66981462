package outline

import (
	"image"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Compile-time interface implementation check.
var _ rasterx.Scanner = (*recorder)(nil)

// recorder is a rasterx.Scanner that keeps the polygons it is asked to fill.
//
// rasterx flattens curves and expands strokes before anything reaches the
// scanner, so Start and Line are all that is needed to capture the shape.
// Draw ends one fill operation. Its contours are oriented so that the
// outermost ones have positive area, which lets separate operations
// overlap under the nonzero rule without cancelling out.
type recorder struct {
	contours []Contour // finished fill operations
	pending  []Contour // contours of the current fill operation
	current  Contour
	nonZero  bool
	extent   fixed.Rectangle26_6
}

func newRecorder() *recorder {
	return &recorder{
		nonZero: true,
		extent: fixed.Rectangle26_6{
			Min: fixed.Point26_6{X: math.MaxInt32, Y: math.MaxInt32},
			Max: fixed.Point26_6{X: math.MinInt32, Y: math.MinInt32},
		},
	}
}

func (r *recorder) Start(a fixed.Point26_6) {
	r.endContour()
	r.current = Contour{toPoint(a)}
	r.grow(a)
}

func (r *recorder) Line(b fixed.Point26_6) {
	r.current = append(r.current, toPoint(b))
	r.grow(b)
}

func (r *recorder) Draw() {
	r.endContour()
	if r.nonZero {
		r.pending = orientNonZero(r.pending)
	} else {
		r.pending = orientEvenOdd(r.pending)
	}
	r.contours = append(r.contours, r.pending...)
	r.pending = nil
}

func (r *recorder) GetPathExtent() fixed.Rectangle26_6 {
	return r.extent
}

func (r *recorder) SetBounds(w, h int) {}

func (r *recorder) SetColor(color interface{}) {}

func (r *recorder) SetWinding(useNonZeroWinding bool) {
	r.nonZero = useNonZeroWinding
}

// Clear drops a fill operation that was started but never drawn.
func (r *recorder) Clear() {
	r.current = nil
	r.pending = nil
}

func (r *recorder) SetClip(rect image.Rectangle) {}

func (r *recorder) endContour() {
	if len(r.current) > 1 {
		r.pending = append(r.pending, r.current)
	}
	r.current = nil
}

func (r *recorder) grow(p fixed.Point26_6) {
	if p.X < r.extent.Min.X {
		r.extent.Min.X = p.X
	}
	if p.Y < r.extent.Min.Y {
		r.extent.Min.Y = p.Y
	}
	if p.X > r.extent.Max.X {
		r.extent.Max.X = p.X
	}
	if p.Y > r.extent.Max.Y {
		r.extent.Max.Y = p.Y
	}
}

func toPoint(p fixed.Point26_6) Point {
	return Point{X: float64(p.X) / 64, Y: float64(p.Y) / 64}
}

// depth counts the contours of the same operation that enclose contours[i].
func depth(contours []Contour, i int) int {
	c := contours[i]
	n := 0
	for j, other := range contours {
		if i != j && len(c) > 0 && other.Contains(c[0]) {
			n++
		}
	}
	return n
}

// orientNonZero reverses a whole nonzero operation when its outermost
// contours are negative. Reversing every contour negates every winding
// number, so the operation covers the same area afterwards.
func orientNonZero(contours []Contour) []Contour {
	var outer float64
	for i, c := range contours {
		if depth(contours, i) == 0 {
			outer += c.Area()
		}
	}
	if outer >= 0 {
		return contours
	}
	out := make([]Contour, len(contours))
	for i, c := range contours {
		out[i] = c.Reverse()
	}
	return out
}

// orientEvenOdd rewrites contours filled with the even-odd rule so that the
// nonzero rule gives the same result: contours nested an even number of
// times keep a positive orientation, odd ones a negative orientation.
func orientEvenOdd(contours []Contour) []Contour {
	out := make([]Contour, len(contours))
	for i, c := range contours {
		positive := c.Area() > 0
		if (depth(contours, i)%2 == 0) != positive {
			c = c.Reverse()
		}
		out[i] = c
	}
	return out
}
