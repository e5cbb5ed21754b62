// Package sink encodes scenes as SVG, PNG, PDF and JSON.
//
// # SVG
//
// [RenderSVG] draws every component symbol, wire and junction in scene order
// and places label text on top. Drawing units map to pixels through
// [WithScale]; the y axis is flipped so "up" in the drawing is up on screen.
// The canvas is sized to the drawing plus estimated text extents and a
// margin.
//
//	svg := sink.RenderSVG(s,
//	    sink.WithStyle(styles.Simple{Color: "navy"}),
//	    sink.WithBackground("white"),
//	)
//
// # PNG and PDF
//
// [RenderPNG] and [RenderPDF] render SVG first and convert it with
// rsvg-convert (see render.ToPNG).
//
// # JSON
//
// [RenderJSON] exports the scene itself: items in emission order with
// absolute coordinates, anchors and resolved labels.
//
// Each format is also available as a render.Renderer via [SVG], [PNG],
// [PDF] and [JSON].
package sink
