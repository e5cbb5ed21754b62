package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Angle is measured in degrees counter-clockwise from the +x axis. It is used
// both for cursor headings and for component orientations.
type Angle float64

// Cardinal headings.
const (
	Right Angle = 0
	Up    Angle = 90
	Left  Angle = 180
	Down  Angle = 270
)

var angleNames = map[string]Angle{
	"right": Right,
	"up":    Up,
	"left":  Left,
	"down":  Down,
}

// ParseAngle accepts a cardinal name (right, up, left, down) or a number of
// degrees.
func ParseAngle(s string) (Angle, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if a, ok := angleNames[s]; ok {
		return a, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid direction %q: want right, left, up, down or degrees", s)
	}
	return Angle(v).Normalize(), nil
}

// IsDirectionName reports whether s names a cardinal heading.
func IsDirectionName(s string) bool {
	_, ok := angleNames[strings.ToLower(s)]
	return ok
}

// Normalize maps a into [0, 360).
func (a Angle) Normalize() Angle {
	v := math.Mod(float64(a), 360)
	if v < 0 {
		v += 360
	}
	if 360-v <= Epsilon {
		v = 0
	}
	return Angle(v)
}

// Eq compares two angles modulo a full turn.
func (a Angle) Eq(b Angle) bool {
	d := math.Abs(float64(a.Normalize() - b.Normalize()))
	return d <= Epsilon || math.Abs(d-360) <= Epsilon
}

// Radians converts a to radians.
func (a Angle) Radians() float64 { return float64(a) * math.Pi / 180 }

// IsCardinal reports whether a is a multiple of 90 degrees.
func (a Angle) IsCardinal() bool {
	n := a.Normalize()
	return n.Eq(0) || n.Eq(90) || n.Eq(180) || n.Eq(270)
}

// Unit returns the unit vector pointing along a.
func (a Angle) Unit() Point {
	return Point{X: 1}.Rotate(float64(a))
}

// Opposite returns a rotated by 180 degrees.
func (a Angle) Opposite() Angle { return (a + 180).Normalize() }

// AngleOf returns the heading of the vector from p to q.
func AngleOf(p, q Point) Angle {
	d := q.Sub(p)
	return Angle(math.Atan2(d.Y, d.X) * 180 / math.Pi).Normalize()
}

func (a Angle) String() string {
	n := a.Normalize()
	for name, c := range angleNames {
		if n.Eq(c) {
			return name
		}
	}
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}
