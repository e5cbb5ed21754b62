package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon is the tolerance used when comparing coordinates.
const Epsilon = 1e-9

// Point is a position (or offset) in drawing units. The y axis grows upward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// FromVec converts a gonum vector to a Point.
func FromVec(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// Vec converts p to a gonum vector.
func (p Point) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return FromVec(r2.Add(p.Vec(), q.Vec())) }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return FromVec(r2.Sub(p.Vec(), q.Vec())) }

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point { return FromVec(r2.Scale(f, p.Vec())) }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return r2.Norm(r2.Sub(p.Vec(), q.Vec())) }

// Rotate rotates p counter-clockwise about the origin by deg degrees.
// Quarter turns are exact so that axis-aligned layouts stay on the grid.
func (p Point) Rotate(deg float64) Point {
	a := Angle(deg).Normalize()
	switch {
	case a.Eq(0):
		return p
	case a.Eq(90):
		return Point{X: -p.Y, Y: p.X}
	case a.Eq(180):
		return Point{X: -p.X, Y: -p.Y}
	case a.Eq(270):
		return Point{X: p.Y, Y: -p.X}
	}
	return FromVec(r2.Rotate(p.Vec(), a.Radians(), r2.Vec{}))
}

// Translate moves p by distance along heading h.
func (p Point) Translate(h Angle, distance float64) Point {
	return p.Add(h.Unit().Scale(distance))
}

// Eq reports whether p and q coincide within Epsilon.
func (p Point) Eq(q Point) bool {
	return math.Abs(p.X-q.X) <= Epsilon && math.Abs(p.Y-q.Y) <= Epsilon
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool { return Finite(p.X) && Finite(p.Y) }

// Finite reports whether v is neither infinite nor NaN.
func Finite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }

// Round snaps coordinates that are within Epsilon of an integer multiple of
// 1e-6, which keeps serialized output free of float noise.
func (p Point) Round() Point {
	return Point{X: roundCoord(p.X), Y: roundCoord(p.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", formatCoord(p.X), formatCoord(p.Y))
}

func roundCoord(v float64) float64 {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%g", roundCoord(v))
}
