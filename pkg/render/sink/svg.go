package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/circuitdraw/pkg/fonts"
	"github.com/matzehuels/circuitdraw/pkg/geom"
	"github.com/matzehuels/circuitdraw/pkg/render/styles"
	"github.com/matzehuels/circuitdraw/pkg/render/symbol"
	"github.com/matzehuels/circuitdraw/pkg/scene"
)

// Output defaults.
const (
	DefaultScale  = 40.0 // pixels per drawing unit
	DefaultMargin = 12.0 // pixels around the drawing
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	scale      float64
	fontSize   float64
	margin     float64
	background string
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithScale sets pixels per drawing unit.
func WithScale(px float64) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.scale = px
		}
	}
}

// WithFontSize sets the size of labels that do not set their own.
func WithFontSize(size float64) SVGOption {
	return func(r *svgRenderer) {
		if size > 0 {
			r.fontSize = size
		}
	}
}

func WithMargin(px float64) SVGOption { return func(r *svgRenderer) { r.margin = max(px, 0) } }

// WithBackground paints the canvas. Empty keeps it transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		style:    styles.Simple{},
		scale:    DefaultScale,
		fontSize: fonts.DefaultSize,
		margin:   DefaultMargin,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// group is the markup of one scene item, gathered before the canvas size
// is known.
type group struct {
	id     string
	kind   string
	shapes []symbol.Shape
	class  string
	texts  []styles.Text
}

// RenderSVG draws the scene as a standalone SVG document. Output is a pure
// function of the scene and options.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	groups := r.buildGroups(s)
	box := geom.EmptyBox()
	for _, g := range groups {
		box = box.Union(symbol.Symbol{Shapes: g.shapes}.Bounds())
		for _, t := range g.texts {
			box = box.Union(styles.TextBox(t))
		}
	}
	if box.IsEmpty() {
		box = geom.NewBox(0, 0, 0, 0)
	}
	box = box.Pad(r.margin)
	w, h := box.Width(), box.Height()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		styles.Num(w), styles.Num(h), styles.Num(w), styles.Num(h))
	r.style.RenderDefs(&buf)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", styles.EscapeXML(r.background))
	}
	fmt.Fprintf(&buf, `  <g transform="translate(%s %s)">`+"\n", styles.Num(-box.Min.X), styles.Num(-box.Min.Y))
	for _, g := range groups {
		if g.id != "" {
			fmt.Fprintf(&buf, `  <g id="%s" data-kind="%s">`+"\n", styles.EscapeXML(g.id), g.kind)
		}
		for _, sh := range g.shapes {
			r.style.RenderShape(&buf, sh, g.class)
		}
		if g.id != "" {
			buf.WriteString("  </g>\n")
		}
	}
	// Text goes last so it sits on top of strokes.
	for _, g := range groups {
		for _, t := range g.texts {
			r.style.RenderText(&buf, t)
		}
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) buildGroups(s *scene.Scene) []group {
	groups := make([]group, 0, len(s.Items))
	for _, it := range s.Items {
		var g group
		switch v := it.(type) {
		case *scene.Component:
			sym := symbol.For(v).Place(v)
			g = group{id: v.Name(), kind: string(v.Kind), class: "symbol", shapes: sym.Shapes}
			for _, t := range sym.Texts {
				scale := t.Scale
				if scale <= 0 {
					scale = 1
				}
				g.texts = append(g.texts, r.text(t.At, t.Text, t.Align, t.VAlign, r.fontSize*scale, "pin"))
			}
			g.texts = append(g.texts, r.labels(v.Labels)...)
		case *scene.Wire:
			g = group{class: "wire", shapes: []symbol.Shape{{Points: []geom.Point{v.From, v.To}}}}
			g.texts = r.labels(v.Labels)
		case *scene.Junction:
			g = group{class: "junction", shapes: []symbol.Shape{symbol.Junction(v)}}
			g.texts = r.labels(v.Labels)
		}
		for i, sh := range g.shapes {
			g.shapes[i] = r.toPixels(sh)
		}
		groups = append(groups, g)
	}
	return groups
}

func (r svgRenderer) labels(ls []scene.Label) []styles.Text {
	out := make([]styles.Text, 0, len(ls))
	for _, l := range ls {
		size := l.FontSize
		if size <= 0 {
			size = r.fontSize
		}
		out = append(out, r.text(l.At, l.Text, l.Align, l.VAlign, size, "label"))
	}
	return out
}

func (r svgRenderer) text(at geom.Point, s string, a scene.Align, v scene.VAlign, size float64, class string) styles.Text {
	p := r.px(at)
	return styles.Text{X: p.X, Y: p.Y, Text: s, Align: a, VAlign: v, Size: size, Class: class}
}

// px maps drawing units (y up) to pixels (y down).
func (r svgRenderer) px(p geom.Point) geom.Point {
	return geom.Pt(p.X*r.scale, -p.Y*r.scale)
}

func (r svgRenderer) toPixels(sh symbol.Shape) symbol.Shape {
	pts := make([]geom.Point, len(sh.Points))
	for i, p := range sh.Points {
		pts[i] = r.px(p)
	}
	sh.Points = pts
	sh.Center = r.px(sh.Center)
	sh.Radius *= r.scale
	return sh
}
