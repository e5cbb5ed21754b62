package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/circuitdraw/pkg/fonts"
	"github.com/matzehuels/circuitdraw/pkg/geom"
	"github.com/matzehuels/circuitdraw/pkg/scene"
)

// Cap height as a fraction of the font size; used to place the first baseline.
const ascent = 0.8

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Num formats a pixel value with two decimals and no trailing zeros.
func Num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// Points formats a points attribute.
func Points(pts []geom.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = Num(p.X) + "," + Num(p.Y)
	}
	return strings.Join(parts, " ")
}

// TextAnchor maps a label alignment to SVG text-anchor.
func TextAnchor(a scene.Align) string {
	switch a {
	case scene.AlignStart:
		return "start"
	case scene.AlignEnd:
		return "end"
	}
	return "middle"
}

// Baselines returns the y coordinate of each line's baseline. VAlign
// follows scene semantics with y growing downward: bottom puts the block
// above the point.
func Baselines(t Text) []float64 {
	lines := fonts.Lines(t.Text)
	step := t.Size * fonts.LineHeight
	h := float64(len(lines)) * step
	top := t.Y - h/2
	switch t.VAlign {
	case scene.VAlignBottom:
		top = t.Y - h
	case scene.VAlignTop:
		top = t.Y
	}
	out := make([]float64, len(lines))
	for i := range lines {
		out[i] = top + float64(i)*step + (step-t.Size)/2 + ascent*t.Size
	}
	return out
}

// TextBox returns the pixel box covered by t.
func TextBox(t Text) geom.Box {
	w, h := fonts.BlockSize(t.Text, t.Size)
	x0 := t.X - w/2
	switch t.Align {
	case scene.AlignStart:
		x0 = t.X
	case scene.AlignEnd:
		x0 = t.X - w
	}
	y0 := t.Y - h/2
	switch t.VAlign {
	case scene.VAlignBottom:
		y0 = t.Y - h
	case scene.VAlignTop:
		y0 = t.Y
	}
	return geom.NewBox(x0, y0, x0+w, y0+h)
}

// writeText emits a <text> element with one tspan per line.
func writeText(buf *bytes.Buffer, t Text, family, color string) {
	lines := fonts.Lines(t.Text)
	base := Baselines(t)
	class := t.Class
	if class == "" {
		class = "label"
	}
	fmt.Fprintf(buf, `  <text class="%s" x="%s" y="%s" font-family="%s" font-size="%s" text-anchor="%s" fill="%s">`,
		class, Num(t.X), Num(base[0]), EscapeXML(family), Num(t.Size), TextAnchor(t.Align), color)
	if len(lines) == 1 {
		buf.WriteString(EscapeXML(lines[0]))
	} else {
		for i, l := range lines {
			fmt.Fprintf(buf, `<tspan x="%s" y="%s">%s</tspan>`, Num(t.X), Num(base[i]), EscapeXML(l))
		}
	}
	buf.WriteString("</text>\n")
}
