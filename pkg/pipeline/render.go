package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/circuitdraw/pkg/render"
	"github.com/matzehuels/circuitdraw/pkg/render/nodelink"
	"github.com/matzehuels/circuitdraw/pkg/render/sink"
	"github.com/matzehuels/circuitdraw/pkg/render/styles"
	"github.com/matzehuels/circuitdraw/pkg/render/styles/handdrawn"
	"github.com/matzehuels/circuitdraw/pkg/scene"
)

// Render generates output artifacts in the requested formats. opts should
// already carry the document's drawing settings (see Options.WithDocument).
func Render(ctx context.Context, s *scene.Scene, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		r, err := Renderer(ctx, format, opts)
		if err != nil {
			return nil, err
		}
		data, err := r.Render(s)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// Renderer returns the renderer for one format.
func Renderer(ctx context.Context, format string, opts Options) (render.Renderer, error) {
	svgOpts := buildSVGOptions(opts)
	nl := nodelink.Options{Detailed: opts.Detailed}

	switch format {
	case FormatSVG:
		return sink.SVG(svgOpts...), nil
	case FormatPNG:
		return sink.PNG(ctx, sink.WithPNGSVGOptions(svgOpts...), sink.WithPNGScale(opts.PNGScale)), nil
	case FormatPDF:
		return sink.PDF(ctx, svgOpts...), nil
	case FormatJSON:
		return sink.JSON(), nil
	case FormatDOT:
		return nodelink.DOTRenderer(nl), nil
	case FormatNodelink:
		return nodelink.Renderer(ctx, nl), nil
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

// Style returns the configured visual style.
func Style(opts Options) styles.Style {
	if opts.Style == StyleHanddrawn {
		return handdrawn.New(opts.Seed).WithStrokeWidth(opts.StrokeWidth)
	}
	return styles.Simple{
		Color:       opts.Color,
		Background:  opts.Background,
		Font:        opts.Font,
		StrokeWidth: opts.StrokeWidth,
	}
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	return []sink.SVGOption{
		sink.WithStyle(Style(opts)),
		sink.WithScale(opts.Scale),
		sink.WithMargin(opts.Margin),
		sink.WithFontSize(opts.FontSize),
		sink.WithBackground(opts.Background),
	}
}
