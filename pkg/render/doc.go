// Package render turns finalized scenes into images.
//
// # Overview
//
// Every output format implements [Renderer]: it reads a *scene.Scene and
// returns encoded bytes. Renderers never modify the scene.
//
//   - [symbol]: component symbols as plain geometry
//   - [styles]: how geometry becomes SVG markup (simple, handdrawn)
//   - [sink]: SVG, PNG, PDF and JSON encoders
//   - [nodelink]: a Graphviz connectivity overview
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG bytes with the external rsvg-convert tool
// (from librsvg). Both the schematic sink and the node-link renderer use
// them.
//
//	svg, _ := sink.RenderSVG(s)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [symbol]: github.com/matzehuels/circuitdraw/pkg/render/symbol
// [styles]: github.com/matzehuels/circuitdraw/pkg/render/styles
// [sink]: github.com/matzehuels/circuitdraw/pkg/render/sink
// [nodelink]: github.com/matzehuels/circuitdraw/pkg/render/nodelink
package render
