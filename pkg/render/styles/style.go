// Package styles controls how symbol geometry becomes SVG markup.
//
// A [Style] receives shapes and texts already mapped to pixel coordinates
// (y down) by the sink. [Simple] draws clean constant-width strokes;
// the handdrawn subpackage draws sketchy, seeded lines.
package styles

import (
	"bytes"

	"github.com/matzehuels/circuitdraw/pkg/render/symbol"
	"github.com/matzehuels/circuitdraw/pkg/scene"
)

// Style defines the visual appearance of a rendered schematic.
type Style interface {
	// RenderDefs writes SVG <defs> and <style> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderShape writes one polyline, polygon or circle. class tags the
	// markup ("wire", "symbol", "junction").
	RenderShape(buf *bytes.Buffer, s symbol.Shape, class string)
	// RenderText writes one (possibly multi-line) text block.
	RenderText(buf *bytes.Buffer, t Text)
}

// Text is a text block in pixel coordinates.
type Text struct {
	X, Y   float64
	Text   string
	Align  scene.Align
	VAlign scene.VAlign
	Size   float64
	Class  string
}

// Defaults shared by the built-in styles.
const (
	DefaultColor       = "black"
	DefaultBackground  = "white"
	DefaultStrokeWidth = 2.0
)

// Style names.
const (
	NameSimple    = "simple"
	NameHanddrawn = "handdrawn"
)
