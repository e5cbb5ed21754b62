package sink

import (
	"context"

	"github.com/matzehuels/circuitdraw/pkg/render"
	"github.com/matzehuels/circuitdraw/pkg/scene"
)

// SVG returns a renderer producing SVG.
func SVG(opts ...SVGOption) render.Renderer {
	return render.RendererFunc(func(s *scene.Scene) ([]byte, error) {
		return RenderSVG(s, opts...), nil
	})
}

// PNG returns a renderer producing PNG. ctx bounds the converter process.
func PNG(ctx context.Context, opts ...PNGOption) render.Renderer {
	return render.RendererFunc(func(s *scene.Scene) ([]byte, error) {
		return RenderPNG(ctx, s, opts...)
	})
}

// PDF returns a renderer producing PDF.
func PDF(ctx context.Context, opts ...SVGOption) render.Renderer {
	return render.RendererFunc(func(s *scene.Scene) ([]byte, error) {
		return RenderPDF(ctx, s, opts...)
	})
}

// JSON returns a renderer exporting the scene.
func JSON() render.Renderer { return render.RendererFunc(RenderJSON) }
