package render

import "github.com/matzehuels/circuitdraw/pkg/scene"

// Renderer encodes a scene in one output format.
type Renderer interface {
	Render(s *scene.Scene) ([]byte, error)
}

// RendererFunc adapts a function to [Renderer].
type RendererFunc func(s *scene.Scene) ([]byte, error)

// Render calls f(s).
func (f RendererFunc) Render(s *scene.Scene) ([]byte, error) { return f(s) }
