// Package nodelink renders a connectivity overview of a schematic.
//
// # Overview
//
// The schematic itself shows where things are; the overview shows what is
// connected to what. Components become boxes, nets (sets of terminals joined
// by wires and coincident points, see scene.Scene.Nets) become points, and
// each terminal is an edge. Graphviz lays the graph out.
//
//	dot := nodelink.ToDOT(s, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Nets reaching only one terminal are dropped unless Detailed is set.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
