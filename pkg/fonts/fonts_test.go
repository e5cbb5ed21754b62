package fonts

import "testing"

func TestFamily(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", `Arial, Helvetica, 'Liberation Sans', sans-serif`},
		{"arial", `Arial, Helvetica, 'Liberation Sans', sans-serif`},
		{"Fira Sans", `'Fira Sans', sans-serif`},
		{"Inter", `Inter, sans-serif`},
		{"Inter, serif", `Inter, serif`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Family(tt.in); got != tt.want {
				t.Errorf("Family(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBlockSize(t *testing.T) {
	w1, h1 := BlockSize("U2", 10)
	w2, h2 := BlockSize("U2\nLM2596S", 10)
	if h2 != 2*h1 {
		t.Errorf("two lines height = %v, want %v", h2, 2*h1)
	}
	if w2 <= w1 {
		t.Errorf("wider line should widen the block: %v <= %v", w2, w1)
	}
	if TextWidth("", 11) != 0 {
		t.Error("empty text should have zero width")
	}
	if TextWidth("ii", 10) >= TextWidth("MM", 10) {
		t.Error("narrow glyphs should be narrower than wide ones")
	}
}
