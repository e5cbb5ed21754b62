package handdrawn

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/circuitdraw/pkg/geom"
	"github.com/matzehuels/circuitdraw/pkg/render/styles"
	"github.com/matzehuels/circuitdraw/pkg/render/symbol"
)

func TestNew(t *testing.T) {
	h := New(42)
	if h.seed != 42 {
		t.Errorf("seed = %d, want 42", h.seed)
	}
	if h.WithStrokeWidth(-1).strokeWidth != styles.DefaultStrokeWidth {
		t.Error("negative stroke width should be ignored")
	}
}

func TestRenderDefs(t *testing.T) {
	var buf bytes.Buffer
	New(7).RenderDefs(&buf)
	if !strings.Contains(buf.String(), `<filter id="pencil">`) {
		t.Errorf("RenderDefs() missing pencil filter: %s", buf.String())
	}
}

func TestRenderShapeDeterministic(t *testing.T) {
	wire := symbol.Shape{Points: []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0)}}
	render := func(seed uint64) string {
		var buf bytes.Buffer
		New(seed).RenderShape(&buf, wire, "wire")
		return buf.String()
	}
	if render(1) != render(1) {
		t.Error("same seed produced different output")
	}
	if render(1) == render(2) {
		t.Error("different seeds produced identical wobble")
	}
	if !strings.Contains(render(1), `points="0,0 `) || !strings.Contains(render(1), ` 100,0"`) {
		t.Errorf("endpoints moved: %s", render(1))
	}
}

func TestRoughen(t *testing.T) {
	h := New(3)
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(60, 0)}
	out := roughen(pts, h.rngFor(symbol.Shape{Points: pts}))
	if len(out) != 2+5 {
		t.Fatalf("roughen() = %d points, want 7", len(out))
	}
	if out[0] != pts[0] || out[len(out)-1] != pts[1] {
		t.Error("roughen() moved endpoints")
	}
}

func TestRenderCircle(t *testing.T) {
	var buf bytes.Buffer
	New(1).RenderShape(&buf, symbol.Shape{Center: geom.Pt(10, 10), Radius: 3, Fill: symbol.FillSolid}, "junction")
	if !strings.Contains(buf.String(), "<polygon") || !strings.Contains(buf.String(), `fill="`+inkColor+`"`) {
		t.Errorf("circle output = %s", buf.String())
	}
}
