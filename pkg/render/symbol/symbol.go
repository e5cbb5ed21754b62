// Package symbol draws component symbols as plain geometry.
//
// [For] returns the strokes, fills and texts of a component in its local
// frame (drawing units, y up). [Symbol.Place] maps them into drawing
// coordinates. Styles decide how shapes look; this package only decides
// where the lines go.
package symbol

import (
	"math"

	"github.com/matzehuels/circuitdraw/pkg/element"
	"github.com/matzehuels/circuitdraw/pkg/geom"
	"github.com/matzehuels/circuitdraw/pkg/scene"
)

// Fill selects how a closed shape or circle is filled.
type Fill int

const (
	FillNone Fill = iota
	FillSolid
	FillBackground
)

// Shape is a polyline, polygon or circle.
type Shape struct {
	Points []geom.Point
	Closed bool
	Fill   Fill
	Center geom.Point
	Radius float64
}

// IsCircle reports whether s is a circle.
func (s Shape) IsCircle() bool { return s.Radius > 0 }

// Text is symbol-owned text such as IC pin names. Scale is relative to the
// drawing font size.
type Text struct {
	At     geom.Point
	Text   string
	Align  scene.Align
	VAlign scene.VAlign
	Scale  float64
}

// Symbol is the drawable geometry of one component.
type Symbol struct {
	Shapes []Shape
	Texts  []Text
}

func line(pts ...geom.Point) Shape    { return Shape{Points: pts} }
func polygon(pts ...geom.Point) Shape { return Shape{Points: pts, Closed: true} }

func circle(c geom.Point, r float64, fill Fill) Shape {
	return Shape{Center: c, Radius: r, Fill: fill}
}

// arc samples a circular arc from a0 to a1 degrees.
func arc(c geom.Point, r, a0, a1 float64, n int) []geom.Point {
	pts := make([]geom.Point, n+1)
	for i := 0; i <= n; i++ {
		a := (a0 + (a1-a0)*float64(i)/float64(n)) * math.Pi / 180
		pts[i] = geom.Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
	}
	return pts
}

// DotRadius is the radius of junction dots.
const DotRadius = 0.075

// For returns the symbol of c in local coordinates.
func For(c *scene.Component) Symbol {
	switch {
	case element.IsTwoTerminal(c.Kind):
		return twoTerminal(c)
	case c.Kind == element.KindIC:
		return ic(c)
	case c.Kind == element.KindGround:
		return ground()
	case c.Kind == element.KindDot:
		fill := FillSolid
		if c.Params.Open {
			fill = FillBackground
		}
		return Symbol{Shapes: []Shape{circle(geom.Point{}, DotRadius, fill)}}
	case c.Kind == element.KindTransformer:
		return transformer(c)
	}
	return Symbol{}
}

// Junction returns the dot drawn for a scene junction, in drawing coordinates.
func Junction(j *scene.Junction) Shape {
	fill := FillSolid
	if j.Open {
		fill = FillBackground
	}
	return circle(j.At, DotRadius, fill)
}

// Place maps a local symbol into drawing coordinates.
func (s Symbol) Place(c *scene.Component) Symbol {
	out := Symbol{
		Shapes: make([]Shape, len(s.Shapes)),
		Texts:  make([]Text, len(s.Texts)),
	}
	for i, sh := range s.Shapes {
		pts := make([]geom.Point, len(sh.Points))
		for j, p := range sh.Points {
			pts[j] = c.ToWorld(p)
		}
		out.Shapes[i] = Shape{Points: pts, Closed: sh.Closed, Fill: sh.Fill, Radius: sh.Radius, Center: c.ToWorld(sh.Center)}
	}
	for i, t := range s.Texts {
		t.At = c.ToWorld(t.At)
		t.Align, t.VAlign = rotateAlign(t.Align, t.VAlign, c.Orientation)
		out.Texts[i] = t
	}
	return out
}

// rotateAlign turns the direction a text block extends from its point.
// Text itself stays upright.
func rotateAlign(a scene.Align, v scene.VAlign, o geom.Angle) (scene.Align, scene.VAlign) {
	if o.Eq(0) {
		return a, v
	}
	var d geom.Point
	switch a {
	case scene.AlignStart:
		d.X = 1
	case scene.AlignEnd:
		d.X = -1
	}
	switch v {
	case scene.VAlignBottom:
		d.Y = 1
	case scene.VAlignTop:
		d.Y = -1
	}
	d = d.Rotate(float64(o))
	a, v = scene.AlignMiddle, scene.VAlignMiddle
	switch {
	case d.X > 0.5:
		a = scene.AlignStart
	case d.X < -0.5:
		a = scene.AlignEnd
	}
	switch {
	case d.Y > 0.5:
		v = scene.VAlignBottom
	case d.Y < -0.5:
		v = scene.VAlignTop
	}
	return a, v
}

// Bounds returns the box covering all shapes.
func (s Symbol) Bounds() geom.Box {
	b := geom.EmptyBox()
	for _, sh := range s.Shapes {
		if sh.IsCircle() {
			b = b.Union(geom.BoxOf(sh.Center).Pad(sh.Radius))
			continue
		}
		b = b.Union(geom.BoxOf(sh.Points...))
	}
	return b
}

func twoTerminal(c *scene.Component) Symbol {
	l := c.Length
	bl, hh := element.BodySize(c.Kind, c.Params.Scale)
	bl = min(bl, l)
	a0 := (l - bl) / 2
	a1 := a0 + bl

	var body []Shape
	switch c.Kind {
	case element.KindResistor:
		pts := []geom.Point{geom.Pt(a0, 0)}
		for i := 1; i < 12; i += 2 {
			y := hh
			if (i/2)%2 == 1 {
				y = -hh
			}
			pts = append(pts, geom.Pt(a0+bl*float64(i)/12, y))
		}
		pts = append(pts, geom.Pt(a1, 0))
		body = append(body, line(pts...))
	case element.KindCapacitor:
		body = append(body, line(geom.Pt(a0, -hh), geom.Pt(a0, hh)))
		if c.Params.Polar {
			var curve []geom.Point
			for i := 0; i <= 8; i++ {
				y := -hh + 2*hh*float64(i)/8
				curve = append(curve, geom.Pt(a1+0.12*(y/hh)*(y/hh), y))
			}
			body = append(body, line(curve...))
			px, py, s := a0-0.2, hh*0.75, 0.08
			body = append(body,
				line(geom.Pt(px-s, py), geom.Pt(px+s, py)),
				line(geom.Pt(px, py-s), geom.Pt(px, py+s)))
		} else {
			body = append(body, line(geom.Pt(a1, -hh), geom.Pt(a1, hh)))
		}
	case element.KindInductor:
		r := bl / 8
		var pts []geom.Point
		for i := 0; i < 4; i++ {
			pts = append(pts, arc(geom.Pt(a0+r*float64(2*i+1), 0), r, 180, 0, 8)...)
		}
		body = append(body, line(pts...))
	case element.KindDiode, element.KindZener, element.KindLED:
		body = append(body, polygon(geom.Pt(a0, -hh), geom.Pt(a0, hh), geom.Pt(a1, 0)))
		if c.Kind == element.KindZener {
			k := hh * 0.3
			body = append(body, line(geom.Pt(a1+k, hh+k/2), geom.Pt(a1, hh), geom.Pt(a1, -hh), geom.Pt(a1-k, -hh-k/2)))
		} else {
			body = append(body, line(geom.Pt(a1, -hh), geom.Pt(a1, hh)))
		}
		if c.Kind == element.KindLED {
			for _, x := range []float64{a0 + bl*0.3, a0 + bl*0.65} {
				body = append(body, arrow(geom.Pt(x, hh*0.6), 60, 0.45)...)
			}
		}
	case element.KindFuse:
		body = append(body,
			polygon(geom.Pt(a0, -hh), geom.Pt(a1, -hh), geom.Pt(a1, hh), geom.Pt(a0, hh)),
			line(geom.Pt(a0, 0), geom.Pt(a1, 0)))
	}
	if c.Params.Reverse {
		for i := range body {
			body[i] = mirror(body[i], l)
		}
	}

	shapes := make([]Shape, 0, len(body)+2)
	if a0 > 0 {
		shapes = append(shapes, line(geom.Pt(0, 0), geom.Pt(a0, 0)))
	}
	shapes = append(shapes, body...)
	if a1 < l {
		shapes = append(shapes, line(geom.Pt(a1, 0), geom.Pt(l, 0)))
	}
	return Symbol{Shapes: shapes}
}

// arrow is a short line with a head, starting at p and pointing along deg.
func arrow(p geom.Point, deg geom.Angle, length float64) []Shape {
	tip := p.Translate(deg, length)
	const head = 0.12
	return []Shape{
		line(p, tip),
		line(tip.Translate(deg+150, head), tip, tip.Translate(deg-150, head)),
	}
}

func mirror(s Shape, l float64) Shape {
	pts := make([]geom.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = geom.Pt(l-p.X, p.Y)
	}
	s.Points = pts
	s.Center = geom.Pt(l-s.Center.X, s.Center.Y)
	return s
}

func ground() Symbol {
	return Symbol{Shapes: []Shape{
		line(geom.Pt(-0.4, 0), geom.Pt(0.4, 0)),
		line(geom.Pt(-0.25, -0.15), geom.Pt(0.25, -0.15)),
		line(geom.Pt(-0.1, -0.3), geom.Pt(0.1, -0.3)),
	}}
}

func transformer(c *scene.Component) Symbol {
	p2, _ := localAnchor(c, "p2")
	s1, _ := localAnchor(c, "s1")
	h, w := -p2.Y, s1.X
	t1, t2 := max(c.Params.Turns[0], 1), max(c.Params.Turns[1], 1)

	coil := func(x float64, turns int, bulge float64) Shape {
		r := h / float64(2*turns)
		var pts []geom.Point
		for i := 0; i < turns; i++ {
			cy := -r * float64(2*i+1)
			if bulge > 0 {
				pts = append(pts, arc(geom.Pt(x, cy), r, 90, -90, 8)...)
			} else {
				pts = append(pts, arc(geom.Pt(x, cy), r, 90, 270, 8)...)
			}
		}
		return line(pts...)
	}
	const core = 0.08
	return Symbol{Shapes: []Shape{
		coil(0, t1, 1),
		coil(w, t2, -1),
		line(geom.Pt(w/2-core, 0), geom.Pt(w/2-core, -h)),
		line(geom.Pt(w/2+core, 0), geom.Pt(w/2+core, -h)),
	}}
}

// localAnchor recovers a template offset from an absolute anchor.
func localAnchor(c *scene.Component, name string) (geom.Point, bool) {
	p, ok := c.Anchor(name)
	if !ok {
		return geom.Point{}, false
	}
	return p.Sub(c.Origin).Rotate(-float64(c.Orientation)), true
}

// Inset of IC pin names from the body edge.
const pinNameInset = 0.2

func ic(c *scene.Component) Symbol {
	b := c.Body
	sym := Symbol{Shapes: []Shape{
		polygon(b.Min, geom.Pt(b.Max.X, b.Min.Y), b.Max, geom.Pt(b.Min.X, b.Max.Y)),
	}}
	for _, p := range c.Pins {
		sym.Shapes = append(sym.Shapes, line(p.Base, p.Tip))
		mid := p.Base.Add(p.Tip).Scale(0.5)

		var name, num Text
		switch p.Side {
		case element.SideLeft:
			name = Text{At: p.Base.Add(geom.Pt(pinNameInset, 0)), Align: scene.AlignStart, VAlign: scene.VAlignMiddle}
			num = Text{At: mid.Add(geom.Pt(0, 0.05)), Align: scene.AlignMiddle, VAlign: scene.VAlignBottom}
		case element.SideRight:
			name = Text{At: p.Base.Sub(geom.Pt(pinNameInset, 0)), Align: scene.AlignEnd, VAlign: scene.VAlignMiddle}
			num = Text{At: mid.Add(geom.Pt(0, 0.05)), Align: scene.AlignMiddle, VAlign: scene.VAlignBottom}
		case element.SideTop:
			name = Text{At: p.Base.Sub(geom.Pt(0, pinNameInset)), Align: scene.AlignMiddle, VAlign: scene.VAlignTop}
			num = Text{At: mid.Add(geom.Pt(0.08, 0)), Align: scene.AlignStart, VAlign: scene.VAlignMiddle}
		default:
			name = Text{At: p.Base.Add(geom.Pt(0, pinNameInset)), Align: scene.AlignMiddle, VAlign: scene.VAlignBottom}
			num = Text{At: mid.Add(geom.Pt(0.08, 0)), Align: scene.AlignStart, VAlign: scene.VAlignMiddle}
		}
		if p.Name != "" {
			name.Text, name.Scale = p.Name, 0.9
			sym.Texts = append(sym.Texts, name)
		}
		if p.Number != "" {
			num.Text, num.Scale = p.Number, 0.75
			sym.Texts = append(sym.Texts, num)
		}
	}
	return sym
}
