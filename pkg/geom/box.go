package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Box is an axis-aligned bounding box. Unlike r2.Box, a degenerate box (a
// point or a straight wire) is not empty; only EmptyBox is.
type Box struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// EmptyBox returns a box that contains nothing. Extending it with a point
// yields the zero-size box at that point.
func EmptyBox() Box {
	return Box{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// NewBox builds a well formed box from two corners.
func NewBox(x0, y0, x1, y1 float64) Box {
	b := r2.NewBox(x0, y0, x1, y1)
	return Box{Min: FromVec(b.Min), Max: FromVec(b.Max)}
}

// BoxOf returns the smallest box containing all points.
func BoxOf(pts ...Point) Box {
	b := EmptyBox()
	for _, p := range pts {
		b = b.Extend(p)
	}
	return b
}

// IsEmpty reports whether b contains no point.
func (b Box) IsEmpty() bool { return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y }

// Extend grows b to include p.
func (b Box) Extend(p Point) Box {
	return Box{
		Min: Point{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max: Point{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
	}
}

// Union returns the smallest box containing b and o.
func (b Box) Union(o Box) Box {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Width returns the horizontal extent of b.
func (b Box) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent of b.
func (b Box) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max.Y - b.Min.Y
}

// Center returns the midpoint of b.
func (b Box) Center() Point {
	return FromVec(r2.Box{Min: b.Min.Vec(), Max: b.Max.Vec()}.Center())
}

// Pad grows b by m on every side.
func (b Box) Pad(m float64) Box {
	if b.IsEmpty() {
		return b
	}
	return Box{Min: b.Min.Sub(Pt(m, m)), Max: b.Max.Add(Pt(m, m))}
}

// Contains reports whether p lies inside b (edges included).
func (b Box) Contains(p Point) bool {
	return !b.IsEmpty() &&
		p.X >= b.Min.X-Epsilon && p.X <= b.Max.X+Epsilon &&
		p.Y >= b.Min.Y-Epsilon && p.Y <= b.Max.Y+Epsilon
}

// Corners returns the four corners counter-clockwise from Min.
func (b Box) Corners() []Point {
	vs := r2.Box{Min: b.Min.Vec(), Max: b.Max.Vec()}.Vertices()
	out := make([]Point, len(vs))
	for i, v := range vs {
		out[i] = FromVec(v)
	}
	return out
}

// Transform rotates b by angle about the local origin and translates it to
// origin, returning the bounding box of the result.
func (b Box) Transform(origin Point, angle Angle) Box {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox()
	for _, c := range b.Corners() {
		out = out.Extend(origin.Add(c.Rotate(float64(angle))))
	}
	return out
}
