package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/circuitdraw/pkg/fonts"
	"github.com/matzehuels/circuitdraw/pkg/render/symbol"
)

// Simple draws constant-width strokes in a single color. The zero value is
// ready to use.
type Simple struct {
	Color       string
	Background  string
	Font        string
	StrokeWidth float64
}

func (s Simple) color() string {
	if s.Color == "" {
		return DefaultColor
	}
	return s.Color
}

func (s Simple) background() string {
	if s.Background == "" {
		return DefaultBackground
	}
	return s.Background
}

func (s Simple) stroke() float64 {
	if s.StrokeWidth <= 0 {
		return DefaultStrokeWidth
	}
	return s.StrokeWidth
}

func (s Simple) RenderDefs(buf *bytes.Buffer) {}

func (s Simple) RenderShape(buf *bytes.Buffer, sh symbol.Shape, class string) {
	fill := fillFor(sh.Fill, s.color(), s.background())
	switch {
	case sh.IsCircle():
		fmt.Fprintf(buf, `  <circle class="%s" cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			class, Num(sh.Center.X), Num(sh.Center.Y), Num(sh.Radius), fill, s.color(), Num(s.stroke()))
	case sh.Closed:
		fmt.Fprintf(buf, `  <polygon class="%s" points="%s" fill="%s" stroke="%s" stroke-width="%s" stroke-linejoin="round"/>`+"\n",
			class, Points(sh.Points), fill, s.color(), Num(s.stroke()))
	default:
		fmt.Fprintf(buf, `  <polyline class="%s" points="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linejoin="round" stroke-linecap="round"/>`+"\n",
			class, Points(sh.Points), s.color(), Num(s.stroke()))
	}
}

func (s Simple) RenderText(buf *bytes.Buffer, t Text) {
	writeText(buf, t, fonts.Family(s.Font), s.color())
}

func fillFor(f symbol.Fill, color, background string) string {
	switch f {
	case symbol.FillSolid:
		return color
	case symbol.FillBackground:
		return background
	}
	return "none"
}
