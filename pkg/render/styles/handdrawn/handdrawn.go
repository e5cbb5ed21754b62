// Package handdrawn draws schematics with sketchy, slightly wobbly lines.
//
// Wobble is seeded: the same scene rendered with the same seed produces
// byte-identical SVG, so artifacts stay cacheable.
//
//	style := handdrawn.New(42)
//	svg, _ := sink.RenderSVG(s, sink.WithStyle(style))
package handdrawn

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"

	"github.com/matzehuels/circuitdraw/pkg/geom"
	"github.com/matzehuels/circuitdraw/pkg/render/styles"
	"github.com/matzehuels/circuitdraw/pkg/render/symbol"
)

const (
	fontFamily = `'xkcd Script', 'Comic Neue', 'Comic Sans MS', cursive`
	inkColor   = "#2a2a2a"
	paperColor = "#fffdf7"

	segmentLen = 12.0 // px between wobble points
	wobble     = 0.9  // px standard deviation
)

// HandDrawn is a seeded sketch style.
type HandDrawn struct {
	seed        uint64
	strokeWidth float64
}

// New returns a hand-drawn style with the given seed.
func New(seed uint64) *HandDrawn {
	return &HandDrawn{seed: seed, strokeWidth: styles.DefaultStrokeWidth}
}

// WithStrokeWidth sets the pen width in pixels.
func (h *HandDrawn) WithStrokeWidth(w float64) *HandDrawn {
	if w > 0 {
		h.strokeWidth = w
	}
	return h
}

func (h *HandDrawn) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <filter id="pencil"><feTurbulence type="fractalNoise" baseFrequency="0.03" numOctaves="2" seed="` +
		fmt.Sprint(h.seed%1000) + `"/><feDisplacementMap in="SourceGraphic" scale="1.5"/></filter>` + "\n")
	buf.WriteString("  </defs>\n")
}

func (h *HandDrawn) RenderShape(buf *bytes.Buffer, sh symbol.Shape, class string) {
	rng := h.rngFor(sh)
	pts := sh.Points
	closed := sh.Closed
	if sh.IsCircle() {
		pts = circlePoints(sh.Center, sh.Radius, rng)
		closed = true
	}
	pts = roughen(pts, rng)

	fill := "none"
	switch sh.Fill {
	case symbol.FillSolid:
		fill = inkColor
	case symbol.FillBackground:
		fill = paperColor
	}
	tag := "polyline"
	if closed {
		tag = "polygon"
	}
	fmt.Fprintf(buf, `  <%s class="%s" points="%s" fill="%s" stroke="%s" stroke-width="%s" stroke-linejoin="round" stroke-linecap="round" filter="url(#pencil)"/>`+"\n",
		tag, class, styles.Points(pts), fill, inkColor, styles.Num(h.strokeWidth))
}

func (h *HandDrawn) RenderText(buf *bytes.Buffer, t styles.Text) {
	styles.Simple{Color: inkColor, Font: fontFamily}.RenderText(buf, t)
}

// rngFor derives a generator from the seed and the shape geometry, so a
// shape wobbles the same way wherever it appears in the output.
func (h *HandDrawn) rngFor(sh symbol.Shape) *rand.Rand {
	f := fnv.New64a()
	for _, p := range sh.Points {
		fmt.Fprintf(f, "%.2f,%.2f;", p.X, p.Y)
	}
	fmt.Fprintf(f, "%.2f,%.2f,%.2f", sh.Center.X, sh.Center.Y, sh.Radius)
	return rand.New(rand.NewPCG(h.seed, f.Sum64()))
}

func circlePoints(c geom.Point, r float64, rng *rand.Rand) []geom.Point {
	n := max(8, int(2*math.Pi*r/4))
	start := rng.Float64() * 2 * math.Pi
	pts := make([]geom.Point, n)
	for i := range pts {
		a := start + 2*math.Pi*float64(i)/float64(n)
		pts[i] = geom.Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
	}
	return pts
}

// roughen subdivides long segments and nudges interior points sideways.
// Endpoints stay put so wires still meet pins.
func roughen(pts []geom.Point, rng *rand.Rand) []geom.Point {
	if len(pts) < 2 {
		return pts
	}
	out := []geom.Point{pts[0]}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := a.Dist(b)
		n := int(d / segmentLen)
		if n > 0 {
			nx, ny := -(b.Y-a.Y)/d, (b.X-a.X)/d
			for k := 1; k <= n; k++ {
				t := float64(k) / float64(n+1)
				off := rng.NormFloat64() * wobble
				out = append(out, geom.Pt(a.X+(b.X-a.X)*t+nx*off, a.Y+(b.Y-a.Y)*t+ny*off))
			}
		}
		out = append(out, b)
	}
	return out
}
