package element

import (
	"sort"
	"strings"

	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/geom"
)

// body is the symbol size of a two-terminal element at scale 1. Leads fill
// the rest of the element length.
type body struct {
	length     float64
	halfHeight float64
}

var twoTerminal = map[Kind]body{
	KindResistor:  {length: 1.0, halfHeight: 0.25},
	KindCapacitor: {length: 0.3, halfHeight: 0.45},
	KindInductor:  {length: 1.6, halfHeight: 0.25},
	KindDiode:     {length: 0.8, halfHeight: 0.35},
	KindZener:     {length: 0.8, halfHeight: 0.35},
	KindLED:       {length: 0.8, halfHeight: 0.6},
	KindFuse:      {length: 1.0, halfHeight: 0.2},
}

// IsTwoTerminal reports whether kind is a stretchable start/end element.
func IsTwoTerminal(kind Kind) bool {
	_, ok := twoTerminal[kind]
	return ok
}

// BodySize returns the symbol length and half height of a two-terminal
// kind at the given scale (0 means 1).
func BodySize(kind Kind, scale float64) (length, halfHeight float64) {
	if scale <= 0 {
		scale = 1
	}
	b := twoTerminal[kind]
	return b.length * scale, b.halfHeight * scale
}

// TwoTerminal declares a stretchable element with anchors start (0,0),
// center (L/2,0) and end (L,0). It follows the cursor heading and accepts
// any orientation.
func TwoTerminal(kind Kind, length float64, p Params) (*Template, error) {
	if !IsTwoTerminal(kind) {
		return nil, errors.New(errors.ErrCodeUnknownElement, "%s is not a two-terminal element", kind)
	}
	if length <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: length must be positive, got %g", kind, length)
	}
	_, hh := BodySize(kind, p.Scale)
	t, err := Declare(kind, []Anchor{
		{Name: "start", Point: geom.Pt(0, 0)},
		{Name: "center", Point: geom.Pt(length/2, 0)},
		{Name: "end", Point: geom.Pt(length, 0)},
	}, geom.NewBox(0, -hh, length, hh),
		WithRotation(RotateAny),
		WithFollowHeading(),
		WithParams(p),
	)
	if err != nil {
		return nil, err
	}
	t.Length = length
	return t, nil
}

// Stretch returns a copy of a two-terminal template at a new length.
func (t *Template) Stretch(length float64) (*Template, error) {
	if !t.Stretchable() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s has a fixed size", t.DisplayName())
	}
	return TwoTerminal(t.Kind, length, t.Params)
}

// Ground is the ground symbol hanging below its single anchor.
func Ground() *Template {
	return mustDeclare(KindGround, []Anchor{{Name: "start"}}, geom.NewBox(-0.4, -0.3, 0.4, 0))
}

// Dot is a junction marker element; open dots mark terminals.
func Dot(open bool) *Template {
	return mustDeclare(KindDot, []Anchor{{Name: "start"}}, geom.NewBox(-0.1, -0.1, 0.1, 0.1),
		WithRotation(RotateAny), WithParams(Params{Open: open}))
}

// Text is an invisible element that only carries labels.
func Text() *Template {
	return mustDeclare(KindText, []Anchor{{Name: "start"}}, geom.BoxOf(geom.Point{}),
		WithRotation(RotateNone))
}

// Transformer declares a two-winding transformer with t1 primary and t2
// secondary turns. Anchors: p1, p2 (primary top and bottom), s1, s2
// (secondary top and bottom) and center.
func Transformer(t1, t2 int) (*Template, error) {
	if t1 < 1 || t2 < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "transformer turns must be positive, got %d:%d", t1, t2)
	}
	const w = 1.5
	h := 0.5 * float64(max(t1, t2))
	return Declare(KindTransformer, []Anchor{
		{Name: "p1", Point: geom.Pt(0, 0)},
		{Name: "p2", Point: geom.Pt(0, -h)},
		{Name: "s1", Point: geom.Pt(w, 0)},
		{Name: "s2", Point: geom.Pt(w, -h)},
		{Name: "center", Point: geom.Pt(w/2, -h/2)},
	}, geom.NewBox(0, -h, w, 0),
		WithStart("p1"),
		WithExit("s1"),
		WithParams(Params{Turns: [2]int{t1, t2}}),
	)
}

func mustDeclare(kind Kind, anchors []Anchor, footprint geom.Box, opts ...TemplateOption) *Template {
	t, err := Declare(kind, anchors, footprint, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Options selects a catalog element for New.
type Options struct {
	Length float64
	Params Params
}

// DefaultTurns is the winding count used when a transformer omits it.
const DefaultTurns = 4

// New builds a template for a catalog kind. ICs are declared with DeclareIC.
func New(kind Kind, opts Options) (*Template, error) {
	switch {
	case IsTwoTerminal(kind):
		return TwoTerminal(kind, opts.Length, opts.Params)
	case kind == KindGround:
		return Ground(), nil
	case kind == KindDot:
		return Dot(opts.Params.Open), nil
	case kind == KindText:
		return Text(), nil
	case kind == KindTransformer:
		t1, t2 := opts.Params.Turns[0], opts.Params.Turns[1]
		if t1 == 0 {
			t1 = DefaultTurns
		}
		if t2 == 0 {
			t2 = DefaultTurns
		}
		return Transformer(t1, t2)
	}
	return nil, errors.New(errors.ErrCodeUnknownElement, "unknown element %q", kind)
}

// Lookup resolves a case-insensitive element name to a catalog kind.
func Lookup(name string) (Kind, bool) {
	k := Kind(strings.ToLower(name))
	switch {
	case IsTwoTerminal(k), k == KindGround, k == KindDot, k == KindText, k == KindTransformer:
		return k, true
	}
	return "", false
}

// Kinds lists the catalog kinds accepted by New, sorted.
func Kinds() []Kind {
	kinds := []Kind{KindGround, KindDot, KindText, KindTransformer}
	for k := range twoTerminal {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
