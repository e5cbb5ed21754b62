package geom

import (
	"fmt"
	"math"
	"testing"
)

func TestRotateQuarterTurnsExact(t *testing.T) {
	tests := []struct {
		deg  float64
		want Point
	}{
		{0, Pt(2, 1)},
		{90, Pt(-1, 2)},
		{180, Pt(-2, -1)},
		{270, Pt(1, -2)},
		{-90, Pt(1, -2)},
		{450, Pt(-1, 2)},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.deg), func(t *testing.T) {
			got := Pt(2, 1).Rotate(tt.deg)
			if got != tt.want {
				t.Errorf("Rotate(%v) = %v, want %v", tt.deg, got, tt.want)
			}
		})
	}
}

func TestRotateArbitrary(t *testing.T) {
	got := Pt(1, 0).Rotate(45)
	want := Pt(math.Sqrt2/2, math.Sqrt2/2)
	if !got.Eq(want) {
		t.Errorf("Rotate(45) = %v, want %v", got, want)
	}
	back := got.Rotate(-45)
	if !back.Eq(Pt(1, 0)) {
		t.Errorf("round trip = %v, want (1, 0)", back)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		h    Angle
		want Point
	}{
		{Right, Pt(3, 0)},
		{Up, Pt(0, 3)},
		{Left, Pt(-3, 0)},
		{Down, Pt(0, -3)},
	}
	for _, tt := range tests {
		t.Run(tt.h.String(), func(t *testing.T) {
			if got := (Point{}).Translate(tt.h, 3); got != tt.want {
				t.Errorf("Translate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseAngle(t *testing.T) {
	tests := []struct {
		in      string
		want    Angle
		wantErr bool
	}{
		{"right", Right, false},
		{"DOWN", Down, false},
		{" up ", Up, false},
		{"45", 45, false},
		{"-90", Down, false},
		{"sideways", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAngle(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAngle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Eq(tt.want) {
				t.Errorf("ParseAngle(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAngleIsCardinal(t *testing.T) {
	for _, a := range []Angle{0, 90, 180, 270, 360, -180} {
		if !a.IsCardinal() {
			t.Errorf("%v should be cardinal", a)
		}
	}
	for _, a := range []Angle{45, 10, 359} {
		if a.IsCardinal() {
			t.Errorf("%v should not be cardinal", a)
		}
	}
}

func TestAngleOf(t *testing.T) {
	if got := AngleOf(Pt(1, 1), Pt(1, -4)); !got.Eq(Down) {
		t.Errorf("AngleOf = %v, want down", got)
	}
	if got := AngleOf(Pt(0, 0), Pt(2, 2)); !got.Eq(45) {
		t.Errorf("AngleOf = %v, want 45", got)
	}
}

func TestBoxDegenerate(t *testing.T) {
	b := BoxOf(Pt(0, 1), Pt(4, 1))
	if b.IsEmpty() {
		t.Fatal("horizontal segment box should not be empty")
	}
	if b.Width() != 4 || b.Height() != 0 {
		t.Errorf("size = %vx%v, want 4x0", b.Width(), b.Height())
	}
	if !EmptyBox().IsEmpty() {
		t.Error("EmptyBox should be empty")
	}
	u := EmptyBox().Union(b)
	if u != b {
		t.Errorf("Union with empty = %v, want %v", u, b)
	}
}

func TestBoxTransform(t *testing.T) {
	b := NewBox(0, -0.5, 2, 0.5)
	got := b.Transform(Pt(1, 1), Down)
	want := NewBox(0.5, -1, 1.5, 1)
	if !got.Min.Eq(want.Min) || !got.Max.Eq(want.Max) {
		t.Errorf("Transform = %+v, want %+v", got, want)
	}
}

func ExamplePoint_Rotate() {
	p := Pt(2, 0)
	fmt.Println(p.Rotate(90))
	fmt.Println(p.Rotate(180).Add(Pt(1, 1)))
	// Output:
	// (0, 2)
	// (-1, 1)
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(1, -2), true},
		{Pt(math.Inf(1), 0), false},
		{Pt(0, math.NaN()), false},
		{Pt(1e308, 1e308).Scale(10), false},
	}
	for _, tt := range tests {
		if got := tt.p.IsFinite(); got != tt.want {
			t.Errorf("%v.IsFinite() = %v, want %v", tt.p, got, tt.want)
		}
	}
}
