package expr

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/geom"
)

func testEnv() MapEnv {
	anchors := map[string]geom.Point{
		"U2.VIN":   geom.Pt(-1, 3.3),
		"U2.pin.1": geom.Pt(-1, 1),
		"R1.end":   geom.Pt(3, 0),
	}
	return MapEnv{
		Vars: map[string]Value{
			"gap":  Scalar(1.5),
			"unit": Scalar(3),
			"here": PointValue(geom.Pt(2, 2)),
		},
		AnchorFunc: func(id, anchor string) (geom.Point, error) {
			if id != "U2" && id != "R1" {
				return geom.Point{}, errors.New(errors.ErrCodeUnresolvedAnchor, "%s not placed", id)
			}
			p, ok := anchors[id+"."+anchor]
			if !ok {
				return geom.Point{}, errors.New(errors.ErrCodeUnknownAnchor, "%s has no %s", id, anchor)
			}
			return p, nil
		},
	}
}

func TestEvalScalar(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"1.5", 1.5},
		{"-2", -2},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"unit / 2 - gap", 0},
		{"--1", 1},
		{".5e1", 5},
		{"U2.VIN.y", 3.3},
		{"here.x + R1.end.x", 5},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := Parse(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			got, err := e.Number(testEnv())
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("%s = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvalPoint(t *testing.T) {
	tests := []struct {
		src  string
		want geom.Point
	}{
		{"(1, -2)", geom.Pt(1, -2)},
		{"U2.VIN", geom.Pt(-1, 3.3)},
		{`U2["pin.1"]`, geom.Pt(-1, 1)},
		{"U2.VIN + (gap, 0)", geom.Pt(0.5, 3.3)},
		{"here - R1.end", geom.Pt(-1, 2)},
		{"2 * (1, 1)", geom.Pt(2, 2)},
		{"(4, 2) / 2", geom.Pt(2, 1)},
		{"-here", geom.Pt(-2, -2)},
		{"(R1.end.x, U2.VIN.y)", geom.Pt(3, 3.3)},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := MustParse(tt.src).Point(testEnv())
			if err != nil {
				t.Fatal(err)
			}
			if !got.Eq(tt.want) {
				t.Errorf("%s = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		src  string
		code errors.Code
	}{
		{"nope", errors.ErrCodeUnknownName},
		{"Q9.out", errors.ErrCodeUnresolvedAnchor},
		{"U2.VOUT", errors.ErrCodeUnknownAnchor},
		{"(1, 1) + 2", errors.ErrCodeInvalidInput},
		{"(1, 1) * (2, 2)", errors.ErrCodeInvalidInput},
		{"1 / 0", errors.ErrCodeInvalidInput},
		{"gap.x", errors.ErrCodeInvalidInput},
		{"here.z", errors.ErrCodeInvalidInput},
		{"1 +", errors.ErrCodeInvalidInput},
		{"(1, 2", errors.ErrCodeInvalidInput},
		{"1e308 * 10", errors.ErrCodeInvalidInput},
		{"1 / (1e308 * 10)", errors.ErrCodeInvalidInput},
		{"-1e308 - 1e308", errors.ErrCodeInvalidInput},
		{"(1e308, 1) * 10", errors.ErrCodeInvalidInput},
		{"1e999", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Eval(tt.src, testEnv())
			if !errors.Is(err, tt.code) {
				t.Errorf("Eval(%q) error = %v, want %s", tt.src, err, tt.code)
			}
		})
	}
}

func TestEvalRejectsNonFiniteVariables(t *testing.T) {
	env := MapEnv{Vars: map[string]Value{
		"big": Scalar(math.Inf(1)),
		"far": PointValue(geom.Pt(0, math.NaN())),
	}}
	for _, src := range []string{"big", "1 / big", "far", "far.x + 1", "0 * big"} {
		if _, err := Eval(src, env); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Eval(%q) error = %v, want INVALID_INPUT", src, err)
		}
	}
}

func TestTypeChecks(t *testing.T) {
	if _, err := MustParse("(1, 2)").Number(testEnv()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Number() on point error = %v", err)
	}
	if _, err := MustParse("3").Point(testEnv()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Point() on number error = %v", err)
	}
}

func TestRef(t *testing.T) {
	r, ok := MustParse(`U2["pin.1"]`).Ref()
	if !ok || r.Name != "U2" || r.Path[0].Name() != "pin.1" {
		t.Errorf("Ref() = %+v, %v", r, ok)
	}
	if _, ok := MustParse("U2.VIN + (1, 0)").Ref(); ok {
		t.Error("Ref() accepted an arithmetic expression")
	}
}

func TestString(t *testing.T) {
	tests := map[string]string{
		"U2.VIN+(gap,0)":  "U2.VIN + (gap, 0)",
		`U2["a b"].x*2`:   `U2["a b"].x * 2`,
		"-(1,2.50)":       "-(1, 2.5)",
	}
	for in, want := range tests {
		if got := MustParse(in).String(); got != want {
			t.Errorf("String(%q) = %q, want %q", in, got, want)
		}
	}
}

func ExampleEval() {
	env := MapEnv{Vars: map[string]Value{"gap": Scalar(1.5)}}
	v, _ := Eval("(gap, 0) * 2 + (0, 1)", env)
	fmt.Println(v)
	// Output: (3, 1)
}
