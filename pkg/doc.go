// Package pkg holds the circuitdraw libraries.
//
// # Overview
//
// circuitdraw lays out schematic drawings. Components are placed relative to
// a drawing cursor and to each other's named pins; wires are routed between
// anchors and free points; the result is an immutable scene that renderers
// turn into SVG, PNG, PDF, JSON or a connectivity overview.
//
// # Architecture
//
//	.circ / .toml / .json document
//	         ↓
//	    [script] (decode, validate, evaluate expressions)
//	         ↓
//	    [drawing] (cursor, state stack, placement, routing)
//	         ↓
//	    [scene] (immutable items in drawing coordinates)
//	         ↓
//	    [render/sink], [render/nodelink] (SVG, PNG, PDF, JSON, DOT)
//
// [pipeline] runs the stages with artifact caching and is what the CLI
// uses.
//
// # Quick Start
//
// Build a drawing directly:
//
//	b := drawing.New(drawing.WithUnit(3))
//	r, _ := element.TwoTerminal(element.KindResistor, 3, element.Params{})
//	b.Place(r, drawing.ID("R1"), drawing.Toward(geom.Down))
//	b.Place(element.Ground())
//	svg := sink.RenderSVG(b.Finalize())
//
// Or run a document:
//
//	doc, _ := script.Load("ldo-u6.circ")
//	s, _ := script.Run(ctx, doc, script.RunOptions{Variant: "compact"})
//
// # Main Packages
//
// [geom] - Points, angles and boxes (y up, angles counter-clockwise in
// degrees).
//
// [element] - Component templates: two-terminal parts, ground, junctions,
// transformers and ICs with pins on slots.
//
// [drawing] - The builder. Anchor lookups fail with typed errors instead of
// panicking.
//
// [scene] - Finalized drawings, content-addressed IDs and net extraction.
//
// [script] - Declarative documents with parameters and variants.
//
// [render] - Renderer interface and SVG conversion; [render/symbol] draws
// element bodies, [render/styles] controls appearance.
//
// [cache] - File and Redis artifact caches.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for logging and metrics around pipeline stages.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/circuitdraw/pkg/geom
// [element]: https://pkg.go.dev/github.com/matzehuels/circuitdraw/pkg/element
// [drawing]: https://pkg.go.dev/github.com/matzehuels/circuitdraw/pkg/drawing
// [scene]: https://pkg.go.dev/github.com/matzehuels/circuitdraw/pkg/scene
// [script]: https://pkg.go.dev/github.com/matzehuels/circuitdraw/pkg/script
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/circuitdraw/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/circuitdraw/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/circuitdraw/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/circuitdraw/pkg/render/nodelink
// [render/symbol]: https://pkg.go.dev/github.com/matzehuels/circuitdraw/pkg/render/symbol
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/circuitdraw/pkg/render/styles
// [cache]: https://pkg.go.dev/github.com/matzehuels/circuitdraw/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/circuitdraw/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/circuitdraw/pkg/observability
package pkg
