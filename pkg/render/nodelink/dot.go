package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/circuitdraw/pkg/element"
	"github.com/matzehuels/circuitdraw/pkg/render"
	"github.com/matzehuels/circuitdraw/pkg/scene"
)

// Options configures the connectivity overview.
type Options struct {
	// Detailed labels edges with anchor names and keeps nets that touch a
	// single terminal.
	Detailed bool
}

// ToDOT converts the connectivity of a scene to Graphviz DOT. Components
// become boxes, nets become small points, and every terminal is an edge
// between the two.
func ToDOT(s *scene.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for _, c := range s.Components() {
		if c.Kind == element.KindText {
			continue
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", c.Name(), fmtLabel(c, opts.Detailed))
	}

	buf.WriteString("\n")
	n := 0
	for _, net := range s.Nets() {
		if len(net.Terminals) < 2 && !opts.Detailed {
			continue
		}
		n++
		id := fmt.Sprintf("net%d", n)
		fmt.Fprintf(&buf, "  %q [shape=point, width=0.08, xlabel=%q];\n", id, fmt.Sprintf("N%d", n))
		for _, t := range net.Terminals {
			attrs := ""
			if opts.Detailed {
				attrs = fmt.Sprintf(" [taillabel=%q]", t.Anchor)
			}
			fmt.Fprintf(&buf, "  %q -- %q%s;\n", t.Component, id, attrs)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c *scene.Component, detailed bool) string {
	if !detailed {
		return c.Name()
	}
	parts := []string{c.Name(), string(c.Kind)}
	if c.Part != "" {
		parts = append(parts, c.Part)
	}
	if len(c.Labels) > 0 {
		parts = append(parts, strings.ReplaceAll(c.Labels[0].Text, "\n", " "))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders DOT to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a plain
// pixel one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders DOT as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// Renderer renders a scene's connectivity overview as SVG.
func Renderer(ctx context.Context, opts Options) render.Renderer {
	return render.RendererFunc(func(s *scene.Scene) ([]byte, error) {
		return RenderSVG(ctx, ToDOT(s, opts))
	})
}

// DOTRenderer returns the DOT source itself.
func DOTRenderer(opts Options) render.Renderer {
	return render.RendererFunc(func(s *scene.Scene) ([]byte, error) {
		return []byte(ToDOT(s, opts)), nil
	})
}
