package symbol

import (
	"math"
	"testing"

	"github.com/matzehuels/circuitdraw/pkg/element"
	"github.com/matzehuels/circuitdraw/pkg/geom"
	"github.com/matzehuels/circuitdraw/pkg/scene"
)

func component(t *testing.T, tmpl *element.Template, origin geom.Point, a geom.Angle) *scene.Component {
	t.Helper()
	inst, err := element.Instantiate(tmpl, origin, a, "")
	if err != nil {
		t.Fatal(err)
	}
	return scene.NewComponent(inst, nil, 1)
}

func near(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestTwoTerminalLeads(t *testing.T) {
	r, err := element.TwoTerminal(element.KindResistor, 3, element.Params{})
	if err != nil {
		t.Fatal(err)
	}
	sym := For(component(t, r, geom.Point{}, geom.Right))
	if len(sym.Shapes) != 3 {
		t.Fatalf("resistor has %d shapes, want lead+zigzag+lead", len(sym.Shapes))
	}
	first, last := sym.Shapes[0], sym.Shapes[2]
	if !near(first.Points[0], geom.Pt(0, 0)) || !near(first.Points[1], geom.Pt(1, 0)) {
		t.Errorf("start lead = %v", first.Points)
	}
	if !near(last.Points[0], geom.Pt(2, 0)) || !near(last.Points[1], geom.Pt(3, 0)) {
		t.Errorf("end lead = %v", last.Points)
	}
	b := sym.Bounds()
	if math.Abs(b.Max.Y-0.25) > 1e-9 || math.Abs(b.Min.Y+0.25) > 1e-9 {
		t.Errorf("zigzag height = %v..%v, want ±0.25", b.Min.Y, b.Max.Y)
	}
}

func TestShortElementHasNoLeads(t *testing.T) {
	r, err := element.TwoTerminal(element.KindResistor, 0.5, element.Params{})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(For(component(t, r, geom.Point{}, 0)).Shapes); n != 1 {
		t.Errorf("shapes = %d, want body only", n)
	}
}

func TestReverseMirrorsBody(t *testing.T) {
	d, err := element.TwoTerminal(element.KindDiode, 3, element.Params{Reverse: true})
	if err != nil {
		t.Fatal(err)
	}
	tri := For(component(t, d, geom.Point{}, 0)).Shapes[1]
	if !tri.Closed || !near(tri.Points[2], geom.Pt(1.1, 0)) {
		t.Errorf("reversed triangle tip = %v, want (1.1, 0)", tri.Points[2])
	}
}

func TestKinds(t *testing.T) {
	tr, err := element.Transformer(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	polar, _ := element.TwoTerminal(element.KindCapacitor, 2, element.Params{Polar: true})
	led, _ := element.TwoTerminal(element.KindLED, 2, element.Params{})
	tests := []struct {
		name   string
		tmpl   *element.Template
		shapes int
	}{
		{"ground", element.Ground(), 3},
		{"dot", element.Dot(true), 1},
		{"text", element.Text(), 0},
		{"transformer", tr, 4},
		{"polar capacitor", polar, 2 + 4},
		{"led", led, 2 + 2 + 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if n := len(For(component(t, tt.tmpl, geom.Point{}, 0)).Shapes); n != tt.shapes {
				t.Errorf("shapes = %d, want %d", n, tt.shapes)
			}
		})
	}
}

func TestPlace(t *testing.T) {
	r, _ := element.TwoTerminal(element.KindResistor, 3, element.Params{})
	c := component(t, r, geom.Pt(1, 1), geom.Up)
	b := For(c).Place(c).Bounds()
	if !near(b.Min, geom.Pt(0.75, 1)) || !near(b.Max, geom.Pt(1.25, 4)) {
		t.Errorf("placed bounds = %+v", b)
	}
}

func TestICPinTextFollowsRotation(t *testing.T) {
	ic, err := element.DeclareIC([]element.Pin{
		{Name: "IN", Side: element.SideLeft, Slot: element.Slot{Index: 1, Count: 1}},
		{Name: "OUT", Number: "2", Side: element.SideRight, Slot: element.Slot{Index: 1, Count: 1}},
	}, element.ICOptions{})
	if err != nil {
		t.Fatal(err)
	}
	c := component(t, ic, geom.Point{}, geom.Up)
	local := For(c)
	if len(local.Texts) != 3 {
		t.Fatalf("texts = %d, want 2 names + 1 number", len(local.Texts))
	}
	placed := local.Place(c)
	in := placed.Texts[0]
	if in.Align != scene.AlignMiddle || in.VAlign != scene.VAlignBottom {
		t.Errorf("rotated left pin name align = %s/%s, want middle/bottom", in.Align, in.VAlign)
	}
}

func TestJunction(t *testing.T) {
	s := Junction(&scene.Junction{At: geom.Pt(2, 3), Open: true})
	if !s.IsCircle() || s.Fill != FillBackground || s.Center != geom.Pt(2, 3) {
		t.Errorf("Junction() = %+v", s)
	}
}
