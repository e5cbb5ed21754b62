// Package pipeline runs circuit documents through load → build → render.
//
// The CLI commands share this package so that every entry point applies
// the same defaults, validation and caching.
//
// # Stages
//
//  1. Load: read a .toml, .json or .circ document and validate it
//  2. Build: replay the document into a fresh drawing.Builder
//  3. Render: produce every requested format from the scene
//
// Rendered artifacts are cached by scene ID and render settings. Scene IDs
// are content hashes, so editing a document only invalidates outputs whose
// geometry actually changed.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "ldo-u6.circ",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/circuitdraw/pkg/cache"
	"github.com/matzehuels/circuitdraw/pkg/render/sink"
	"github.com/matzehuels/circuitdraw/pkg/scene"
	"github.com/matzehuels/circuitdraw/pkg/script"
)

// Defaults shared by the CLI and config file.
const (
	DefaultStyle    = StyleSimple
	DefaultSeed     = uint64(42)
	DefaultPNGScale = 2.0
)

// Visual styles.
const (
	StyleSimple    = "simple"
	StyleHanddrawn = "handdrawn"
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatNodelink: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StyleSimple:    true,
	StyleHanddrawn: true,
}

// Extension returns the output file extension for a format.
func Extension(format string) string {
	switch format {
	case FormatDOT:
		return ".dot"
	case FormatNodelink:
		return ".nodelink.svg"
	case FormatJSON:
		return ".scene.json"
	}
	return "." + format
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input
	Path      string             `json:"path,omitempty"`
	Source    []byte             `json:"-"`                // read from Path when nil
	Format    script.Format      `json:"format,omitempty"` // inferred from Path when empty
	Variant   string             `json:"variant,omitempty"`
	Overrides map[string]float64 `json:"overrides,omitempty"`
	Refresh   bool               `json:"refresh,omitempty"`

	// Render options. Zero values fall back to the document's drawing
	// settings, then to package defaults.
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Margin      float64  `json:"margin,omitempty"`
	Font        string   `json:"font,omitempty"`
	FontSize    float64  `json:"fontsize,omitempty"`
	Color       string   `json:"color,omitempty"`
	Background  string   `json:"background,omitempty"`
	StrokeWidth float64  `json:"stroke_width,omitempty"`
	Seed        uint64   `json:"seed,omitempty"`
	PNGScale    float64  `json:"png_scale,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"` // nodelink and dot

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Document *script.Document
	Scene    *scene.Scene

	// SourceHash is the SHA-256 of the document bytes.
	SourceHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	scene.Stats
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which formats came from the cache.
type CacheInfo struct {
	Hits      []string
	RenderHit bool // every requested format was cached
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, dot, nodelink)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return fmt.Errorf("invalid style: %q (must be one of: simple, handdrawn)", style)
	}
	return nil
}

// ParseFormats splits a comma-separated format list.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the input fields.
func (o *Options) ValidateForLoad() error {
	if o.Path == "" && o.Source == nil {
		return fmt.Errorf("path or source is required")
	}
	if o.Format == "" {
		if o.Path == "" {
			return fmt.Errorf("format is required when no path is given")
		}
		f, err := script.FormatOf(o.Path)
		if err != nil {
			return err
		}
		o.Format = f
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultScale
	}
	if o.Margin == 0 {
		o.Margin = sink.DefaultMargin
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 || o.PNGScale < 0 {
		return fmt.Errorf("scale must be positive")
	}
	return ValidateStyle(o.Style)
}

// WithDocument fills unset render options from the document's drawing
// settings. A transparent drawing drops the background.
func (o Options) WithDocument(doc *script.Document) Options {
	d := doc.Drawing
	if o.Font == "" {
		o.Font = d.Font
	}
	if o.FontSize == 0 {
		o.FontSize = d.FontSize
	}
	if o.Color == "" {
		o.Color = d.Color
	}
	if o.Background == "" && !d.Transparent {
		o.Background = d.Background
	}
	return o
}

// RunOptions returns the script options for the build stage.
func (o *Options) RunOptions() script.RunOptions {
	return script.RunOptions{Logger: o.Logger, Variant: o.Variant, Overrides: o.Overrides}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		Style:       o.Style,
		Scale:       o.Scale,
		Margin:      o.Margin,
		Font:        o.Font,
		FontSize:    o.FontSize,
		Color:       o.Color,
		Background:  o.Background,
		StrokeWidth: o.StrokeWidth,
		Detailed:    o.Detailed,
	}
	if o.Style == StyleHanddrawn {
		k.Seed = o.Seed
	}
	if format == FormatPNG {
		k.Scale *= o.PNGScale
	}
	return k
}
