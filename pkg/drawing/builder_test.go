package drawing

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/circuitdraw/pkg/element"
	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/geom"
	"github.com/matzehuels/circuitdraw/pkg/scene"
)

func resistor(t *testing.T, length float64) *element.Template {
	t.Helper()
	r, err := element.TwoTerminal(element.KindResistor, length, element.Params{})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestPushPopRestoresCursor(t *testing.T) {
	b := New()
	b.MoveTo(geom.Pt(1, 2))
	b.MoveBy(geom.Up, 1)
	before := b.Cursor()

	b.Push()
	b.MoveBy(geom.Left, 5)
	if _, err := b.Place(resistor(t, 3)); err != nil {
		t.Fatal(err)
	}
	b.LineBy(geom.Down, 2)
	got, err := b.Pop()
	if err != nil {
		t.Fatal(err)
	}
	if got != before || b.Cursor() != before {
		t.Errorf("Pop() = %+v, want %+v", got, before)
	}
	if b.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", b.Depth())
	}
}

func TestPopEmptyStack(t *testing.T) {
	b := New()
	b.Push()
	if _, err := b.Pop(); err != nil {
		t.Fatal(err)
	}
	_, err := b.Pop()
	if !errors.Is(err, errors.ErrCodeEmptyStack) {
		t.Errorf("Pop() error = %v, want EMPTY_STACK", err)
	}
}

func TestMoveByAdditive(t *testing.T) {
	tests := []struct {
		dir  geom.Angle
		a, b float64
	}{
		{geom.Right, 1, 2},
		{geom.Down, 0.5, 1.25},
		{geom.Left, 3, 0},
		{45, 1, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.dir), func(t *testing.T) {
			split := New(WithStart(Cursor{Pos: geom.Pt(1, 1)}))
			split.MoveBy(tt.dir, tt.a)
			split.MoveBy(tt.dir, tt.b)

			once := New(WithStart(Cursor{Pos: geom.Pt(1, 1)}))
			once.MoveBy(tt.dir, tt.a+tt.b)

			if !split.Here().Eq(once.Here()) {
				t.Errorf("MoveBy(a)+MoveBy(b) = %v, MoveBy(a+b) = %v", split.Here(), once.Here())
			}
			if !split.Cursor().Heading.Eq(tt.dir) {
				t.Errorf("heading = %v, want %v", split.Cursor().Heading, tt.dir)
			}
		})
	}
}

func TestMoveToKeepsHeading(t *testing.T) {
	b := New()
	b.MoveBy(geom.Down, 1)
	c, err := b.MoveTo(geom.Pt(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	if c.Pos != geom.Pt(4, 4) || !c.Heading.Eq(geom.Down) {
		t.Errorf("MoveTo() = %+v", c)
	}
}

// Starting at the origin, moving right 3, saving, moving down 2, restoring
// and drawing a line to the saved lower point yields (3,0)-(3,-2).
func TestBranchRoutingWithStack(t *testing.T) {
	b := New()
	b.MoveTo(geom.Pt(0, 0))
	b.MoveBy(geom.Right, 3)
	b.Push()
	b.MoveBy(geom.Down, 2)
	lower := b.Here()
	if _, err := b.Pop(); err != nil {
		t.Fatal(err)
	}
	res, err := b.LineTo(lower)
	if err != nil {
		t.Fatal(err)
	}
	w := res.Item.(*scene.Wire)
	if w.From != geom.Pt(3, 0) || w.To != geom.Pt(3, -2) {
		t.Errorf("wire = %v -> %v, want (3, 0) -> (3, -2)", w.From, w.To)
	}
	if res.Cursor.Pos != geom.Pt(3, -2) {
		t.Errorf("cursor = %v, want (3, -2)", res.Cursor.Pos)
	}
}

func TestPlaceAdvancesToExit(t *testing.T) {
	b := New()
	b.MoveBy(geom.Down, 1)
	res, err := b.Place(resistor(t, 2))
	if err != nil {
		t.Fatal(err)
	}
	if res.Cursor.Pos != geom.Pt(0, -3) {
		t.Errorf("cursor = %v, want (0, -3)", res.Cursor.Pos)
	}
	if !res.Instance.Orientation.Eq(geom.Down) {
		t.Errorf("orientation = %v, want down", res.Instance.Orientation)
	}

	res, err = b.Place(resistor(t, 2), Toward(geom.Left), Length(1.5))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Cursor.Pos.Eq(geom.Pt(-1.5, -3)) || !res.Cursor.Heading.Eq(geom.Left) {
		t.Errorf("cursor = %+v, want (-1.5, -3) heading left", res.Cursor)
	}
}

func TestPlaceAtAnchor(t *testing.T) {
	ic, err := element.DeclareIC([]element.Pin{
		{Name: "IN", Side: element.SideLeft, Slot: element.Slot{Index: 1, Count: 1}},
		{Name: "OUT", Side: element.SideRight, Slot: element.Slot{Index: 1, Count: 1}},
	}, element.ICOptions{})
	if err != nil {
		t.Fatal(err)
	}
	b := New()
	res, err := b.Place(ic, ID("U1"), At(geom.Pt(10, 10)), Anchor("IN"))
	if err != nil {
		t.Fatal(err)
	}
	in, _ := res.Instance.Anchor("IN")
	if in != geom.Pt(10, 10) {
		t.Errorf("IN = %v, want (10, 10)", in)
	}
	out, err := b.ResolveRef("U1", "OUT")
	if err != nil {
		t.Fatal(err)
	}
	if out != geom.Pt(15, 10) {
		t.Errorf("OUT = %v, want (15, 10)", out)
	}
	if b.Here() != out {
		t.Errorf("cursor = %v, want exit %v", b.Here(), out)
	}
}

func TestPlaceTo(t *testing.T) {
	b := New()
	res, err := b.Place(resistor(t, 3), At(geom.Pt(1, 1)), To(geom.Pt(1, 5)))
	if err != nil {
		t.Fatal(err)
	}
	c := res.Item.(*scene.Component)
	if c.Length != 4 || !c.Orientation.Eq(geom.Up) {
		t.Errorf("length = %v, orientation = %v", c.Length, c.Orientation)
	}
	if !b.Here().Eq(geom.Pt(1, 5)) {
		t.Errorf("cursor = %v, want (1, 5)", b.Here())
	}
	if _, err := b.Place(element.Ground(), To(geom.Pt(3, 3))); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ground To() error = %v, want INVALID_INPUT", err)
	}
}

func TestPlaceErrors(t *testing.T) {
	ic, err := element.DeclareIC([]element.Pin{
		{Name: "A", Side: element.SideLeft, Slot: element.Slot{Index: 1, Count: 1}},
	}, element.ICOptions{})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		run  func(b *Builder) error
		code errors.Code
	}{
		{"rotated ic", func(b *Builder) error {
			_, err := b.Place(ic, Orient(45))
			return err
		}, errors.ErrCodeUnsupportedOrientation},
		{"bad anchor", func(b *Builder) error {
			_, err := b.Place(ic, Anchor("Z"))
			return err
		}, errors.ErrCodeUnknownAnchor},
		{"duplicate id", func(b *Builder) error {
			if _, err := b.Place(ic, ID("U1")); err != nil {
				return err
			}
			_, err := b.Place(ic, ID("U1"))
			return err
		}, errors.ErrCodeInvalidInput},
		{"invalid id", func(b *Builder) error {
			_, err := b.Place(ic, ID("U 1"))
			return err
		}, errors.ErrCodeInvalidInput},
		{"fixed size", func(b *Builder) error {
			_, err := b.Place(ic, Length(3))
			return err
		}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			before := b.Cursor()
			err := tt.run(b)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %v", err, tt.code)
			}
			if tt.name != "duplicate id" && b.Cursor() != before {
				t.Errorf("failed placement moved the cursor to %+v", b.Cursor())
			}
		})
	}
}

func TestForwardReferenceUnresolved(t *testing.T) {
	b := New()
	if _, err := b.LineToRef("U9", "VIN"); !errors.Is(err, errors.ErrCodeUnresolvedAnchor) {
		t.Errorf("LineToRef() error = %v, want UNRESOLVED_ANCHOR", err)
	}
	if _, err := b.MoveToAnchor(nil, "VIN"); !errors.Is(err, errors.ErrCodeUnresolvedAnchor) {
		t.Errorf("MoveToAnchor(nil) error = %v, want UNRESOLVED_ANCHOR", err)
	}

	// An instance created outside the builder is not placed.
	inst, err := element.Instantiate(resistor(t, 3), geom.Point{}, 0, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.LineToAnchor(inst, "end"); !errors.Is(err, errors.ErrCodeUnresolvedAnchor) {
		t.Errorf("LineToAnchor(foreign) error = %v, want UNRESOLVED_ANCHOR", err)
	}
	if n := len(b.Finalize().Items); n != 0 {
		t.Errorf("failed routing emitted %d items", n)
	}
}

func TestUnknownAnchorOnPlaced(t *testing.T) {
	b := New()
	if _, err := b.Place(resistor(t, 3), ID("R1")); err != nil {
		t.Fatal(err)
	}
	if _, err := b.MoveToRef("R1", "VIN"); !errors.Is(err, errors.ErrCodeUnknownAnchor) {
		t.Errorf("MoveToRef() error = %v, want UNKNOWN_ANCHOR", err)
	}
}

func TestLineFromAndZeroLength(t *testing.T) {
	b := New()
	res, err := b.LineTo(geom.Pt(2, 0), From(geom.Pt(2, 0)))
	if err != nil {
		t.Fatal(err)
	}
	w := res.Item.(*scene.Wire)
	if w.Length() != 0 {
		t.Errorf("zero-length wire has length %v", w.Length())
	}
	if len(b.Finalize().Wires()) != 1 {
		t.Error("zero-length wire should be kept")
	}
}

func TestRejectsNonFiniteCoordinates(t *testing.T) {
	huge := 1e308
	tests := []struct {
		name string
		step func(b *Builder) error
	}{
		{"move by", func(b *Builder) error { _, err := b.MoveBy(geom.Up, huge*10); return err }},
		{"move to", func(b *Builder) error { _, err := b.MoveTo(geom.Pt(math.NaN(), 0)); return err }},
		{"line by", func(b *Builder) error { _, err := b.LineBy(geom.Right, math.Inf(1)); return err }},
		{"line to", func(b *Builder) error { _, err := b.LineTo(geom.Pt(0, math.Inf(-1))); return err }},
		{"line from", func(b *Builder) error { _, err := b.LineTo(geom.Pt(1, 0), From(geom.Pt(math.NaN(), 0))); return err }},
		{"place at", func(b *Builder) error { _, err := b.Place(resistor(t, 3), At(geom.Pt(math.Inf(1), 0))); return err }},
		{"place length", func(b *Builder) error { _, err := b.Place(resistor(t, 3), Length(math.Inf(1))); return err }},
		{"place toward", func(b *Builder) error { _, err := b.Place(resistor(t, 3), Toward(geom.Angle(math.NaN()))); return err }},
		{"label offset", func(b *Builder) error {
			_, err := b.PlaceJunction(false, LabelSpec{Text: "x", Offset: geom.Pt(huge, 0).Scale(10)})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			if err := tt.step(b); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
			if b.Here() != (geom.Point{}) || len(b.Finalize().Items) != 0 {
				t.Errorf("failed step changed the drawing: here=%v", b.Here())
			}
		})
	}
}

func TestJunctionDoesNotMoveCursor(t *testing.T) {
	b := New()
	b.MoveTo(geom.Pt(1, 1))
	res, err := b.PlaceJunction(true, Label("+15V", LocLeft))
	if err != nil {
		t.Fatal(err)
	}
	j := res.Item.(*scene.Junction)
	if !j.Open || j.At != geom.Pt(1, 1) {
		t.Errorf("junction = %+v", j)
	}
	if b.Here() != geom.Pt(1, 1) {
		t.Errorf("cursor moved to %v", b.Here())
	}
	l := j.Labels[0]
	if l.Align != scene.AlignEnd || !l.At.Eq(geom.Pt(0.8, 1)) {
		t.Errorf("label = %+v", l)
	}
}

func TestLabelPlacement(t *testing.T) {
	tests := []struct {
		name   string
		dir    geom.Angle
		spec   LabelSpec
		at     geom.Point
		align  scene.Align
		valign scene.VAlign
	}{
		{"top of horizontal", geom.Right, Label("R1", LocTop), geom.Pt(1.5, 0.35), scene.AlignMiddle, scene.VAlignBottom},
		{"bot of horizontal", geom.Right, Label("R1", LocBottom), geom.Pt(1.5, -0.35), scene.AlignMiddle, scene.VAlignTop},
		{"top of downward", geom.Down, Label("R1", LocTop), geom.Pt(0.35, -1.5), scene.AlignStart, scene.VAlignMiddle},
		{"distance", geom.Right, LabelSpec{Text: "R1", Loc: LocTop, Distance: 0.5}, geom.Pt(1.5, 0.85), scene.AlignMiddle, scene.VAlignBottom},
		{"offset", geom.Right, LabelSpec{Text: "R1", Loc: LocCenter, Offset: geom.Pt(1, -1)}, geom.Pt(2.5, -1), scene.AlignMiddle, scene.VAlignMiddle},
		{"anchor", geom.Right, LabelSpec{Text: "E", Anchor: "end"}, geom.Pt(3, 0), scene.AlignMiddle, scene.VAlignMiddle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			res, err := b.Place(resistor(t, 3), Toward(tt.dir), WithLabel(tt.spec))
			if err != nil {
				t.Fatal(err)
			}
			l := res.Item.(*scene.Component).Labels[0]
			if !l.At.Eq(tt.at) || l.Align != tt.align || l.VAlign != tt.valign {
				t.Errorf("label = %+v, want at %v %s/%s", l, tt.at, tt.align, tt.valign)
			}
		})
	}
}

func TestAnnotate(t *testing.T) {
	b := New()
	res, err := b.Place(resistor(t, 3))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Annotate(res.Instance, LabelSpec{Text: "S", Anchor: "start"}); err != nil {
		t.Fatal(err)
	}
	if err := b.Annotate(res.Instance, LabelSpec{Text: "X", Anchor: "nope"}); !errors.Is(err, errors.ErrCodeUnknownAnchor) {
		t.Errorf("Annotate(bad anchor) error = %v", err)
	}
	s := b.Finalize()
	if got := len(s.Components()[0].Labels); got != 1 {
		t.Errorf("labels = %d, want 1", got)
	}
}

func TestFinalizeIdempotent(t *testing.T) {
	b := New()
	b.LineBy(geom.Right, 1)
	b.PlaceJunction(false)
	b.Push()
	if _, err := b.Place(resistor(t, 3), ID("R1"), WithLabel(Label("R1", LocTop))); err != nil {
		t.Fatal(err)
	}
	first := b.Finalize()
	second := b.Finalize()
	if !reflect.DeepEqual(first, second) {
		t.Error("Finalize() twice produced different scenes")
	}
	if first.LeakedPushes != 1 {
		t.Errorf("LeakedPushes = %d, want 1", first.LeakedPushes)
	}

	// Later steps do not leak into an earlier snapshot.
	b.LineBy(geom.Down, 1)
	if len(first.Items) != 3 {
		t.Errorf("snapshot has %d items, want 3", len(first.Items))
	}
	if first.ID == b.Finalize().ID {
		t.Error("different scenes should have different IDs")
	}
}

func ExampleBuilder() {
	b := New()
	r, _ := element.TwoTerminal(element.KindResistor, 3, element.Params{})
	b.Place(r, ID("R1"))
	b.Push()
	b.LineBy(geom.Down, 2)
	b.PlaceJunction(false)
	b.Pop()
	b.LineBy(geom.Right, 1)

	s := b.Finalize()
	for _, w := range s.Wires() {
		fmt.Println(w.From, "->", w.To)
	}
	fmt.Println(s.Stats().Components, "component,", s.Stats().Junctions, "junction")
	// Output:
	// (3, 0) -> (3, -2)
	// (3, 0) -> (4, 0)
	// 1 component, 1 junction
}
