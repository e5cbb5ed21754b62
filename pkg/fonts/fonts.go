// Package fonts provides font family stacks and text metrics for SVG
// rendering.
//
// Renderers never load font files. Text extents are estimated from average
// glyph widths, which is enough to size the SVG viewBox around labels.
package fonts

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultFamily is the font used when a drawing does not choose one.
const DefaultFamily = "Arial"

// DefaultSize is the default label size in points.
const DefaultSize = 11.0

// LineHeight is the baseline-to-baseline distance as a multiple of the
// font size.
const LineHeight = 1.2

// Average glyph advance as a fraction of the font size.
const (
	charWidth   = 0.55
	narrowWidth = 0.3
	wideWidth   = 0.8
)

var fallbacks = map[string]string{
	"arial":           `Arial, Helvetica, 'Liberation Sans', sans-serif`,
	"helvetica":       `Helvetica, Arial, 'Liberation Sans', sans-serif`,
	"sans-serif":      `sans-serif`,
	"serif":           `'Times New Roman', Times, serif`,
	"times new roman": `'Times New Roman', Times, serif`,
	"monospace":       `'DejaVu Sans Mono', Menlo, Consolas, monospace`,
	"courier new":     `'Courier New', Courier, monospace`,
}

// Family returns a CSS font-family stack for name. Names that already
// contain a comma are taken as stacks.
func Family(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultFamily
	}
	if stack, ok := fallbacks[strings.ToLower(name)]; ok {
		return stack
	}
	if strings.Contains(name, ",") {
		return name
	}
	if strings.ContainsAny(name, " ") {
		return "'" + name + "', sans-serif"
	}
	return name + ", sans-serif"
}

// Lines splits label text on newlines.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// TextWidth estimates the advance width of a single line at size.
func TextWidth(line string, size float64) float64 {
	w := 0.0
	for _, r := range line {
		switch {
		case strings.ContainsRune("iIl.,:;|!'`", r):
			w += narrowWidth
		case unicode.IsUpper(r) || strings.ContainsRune("mwMW@%", r):
			w += wideWidth
		case r >= utf8.RuneSelf && unicode.IsSymbol(r):
			w += wideWidth
		default:
			w += charWidth
		}
	}
	return w * size
}

// BlockSize estimates the width and height of multi-line text.
func BlockSize(text string, size float64) (w, h float64) {
	lines := Lines(text)
	for _, l := range lines {
		w = max(w, TextWidth(l, size))
	}
	return w, float64(len(lines)) * size * LineHeight
}
