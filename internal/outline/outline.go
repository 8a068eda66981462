package outline

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// minArea is the smallest absolute contour area kept by Clean.
const minArea = 0.01

// Point is a coordinate in outline space.
type Point struct {
	X, Y float64
}

// Contour is a closed polygon. The closing edge from the last point back to
// the first is implicit.
type Contour []Point

// Area returns the signed area of the contour (shoelace formula).
func (c Contour) Area() float64 {
	var a float64
	for i := range c {
		j := (i + 1) % len(c)
		a += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return a / 2
}

// Reverse returns the contour with opposite orientation.
func (c Contour) Reverse() Contour {
	r := make(Contour, len(c))
	for i, p := range c {
		r[len(c)-1-i] = p
	}
	return r
}

// Contains reports whether p lies inside c (even-odd ray casting).
func (c Contour) Contains(p Point) bool {
	inside := false
	for i, j := 0, len(c)-1; i < len(c); j, i = i, i+1 {
		a, b := c[i], c[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Outline is a set of contours inside a Width x Height box.
type Outline struct {
	Width    float64
	Height   float64
	Contours []Contour
}

// Clean rounds coordinates, then drops repeated points, collinear points
// and contours that enclose no area.
func (o *Outline) Clean() {
	kept := o.Contours[:0]
	for _, c := range o.Contours {
		c = simplify(c)
		if len(c) < 3 || math.Abs(c.Area()) < minArea {
			continue
		}
		kept = append(kept, c)
	}
	o.Contours = kept
}

// Transform maps every point through fn.
func (o *Outline) Transform(fn func(Point) Point) {
	for _, c := range o.Contours {
		for i, p := range c {
			c[i] = fn(p)
		}
	}
}

// PathData returns the outline as SVG path data.
func (o *Outline) PathData() string {
	return FormatPathData(o.Contours)
}

// WriteSVG writes the outline as a standalone SVG document with a single
// nonzero-filled path.
func (o *Outline) WriteSVG(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %s %s\" width=\"%s\" height=\"%s\">"+
			"<path d=\"%s\" fill-rule=\"nonzero\"/></svg>\n",
		formatNumber(o.Width), formatNumber(o.Height),
		formatNumber(o.Width), formatNumber(o.Height),
		o.PathData())
	return err
}

// FormatPathData serializes contours as "M x y L x y ... Z" path data.
func FormatPathData(contours []Contour) string {
	var b strings.Builder
	for _, c := range contours {
		if len(c) == 0 {
			continue
		}
		for i, p := range c {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			if i == 0 {
				b.WriteString("M")
			} else {
				b.WriteString("L")
			}
			b.WriteString(formatNumber(p.X))
			b.WriteByte(' ')
			b.WriteString(formatNumber(p.Y))
		}
		b.WriteString(" Z")
	}
	return b.String()
}

// simplify rounds points and removes duplicates and collinear interior points.
func simplify(c Contour) Contour {
	out := make(Contour, 0, len(c))
	for _, p := range c {
		p = Point{X: round(p.X), Y: round(p.Y)}
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}

	// Repeat until stable: removing one point can make its neighbours collinear.
	for changed := true; changed && len(out) >= 3; {
		changed = false
		n := len(out)
		res := out[:0:0]
		for i := range out {
			prev := out[(i+n-1)%n]
			next := out[(i+1)%n]
			if collinear(prev, out[i], next) {
				changed = true
				continue
			}
			res = append(res, out[i])
		}
		out = res
	}
	return out
}

// collinear reports whether b lies on the straight segment from a to c.
func collinear(a, b, c Point) bool {
	cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
	if math.Abs(cross) > 1e-9 {
		return false
	}
	dot := (b.X-a.X)*(c.X-b.X) + (b.Y-a.Y)*(c.Y-b.Y)
	return dot >= 0
}

// round keeps two decimals.
func round(v float64) float64 {
	const scale = 100
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0 // no negative zero
	}
	return r
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(round(v), 'f', -1, 64)
}
