package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/pipeline"
	"github.com/matzehuels/circuitdraw/pkg/script"
)

// docFlags select which version of a document to build.
type docFlags struct {
	variant string            // named parameter set
	set     map[string]string // individual parameter overrides
}

func (f *docFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.variant, "variant", "", "apply a named parameter variant")
	cmd.Flags().StringToStringVar(&f.set, "set", nil, "override parameters (name=value, repeatable)")
}

// options returns load options for path.
func (f *docFlags) options(path string) (pipeline.Options, error) {
	overrides, err := parseOverrides(f.set)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{Path: path, Variant: f.variant, Overrides: overrides}, nil
}

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	docFlags
	output      string // output file (single input and format only)
	formats     string // comma-separated output formats
	style       string // simple or handdrawn
	scale       float64
	margin      float64
	font        string
	fontSize    float64
	color       string
	background  string
	strokeWidth float64
	seed        uint64
	detailed    bool // anchor names on nodelink edges
	noCache     bool
	refresh     bool
	jobs        int
}

func (f *renderFlags) register(cmd *cobra.Command) {
	f.docFlags.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single document and format)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, nodelink")
	cmd.Flags().StringVar(&f.style, "style", "", "visual style: simple (default), handdrawn")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "pixels per drawing unit")
	cmd.Flags().Float64Var(&f.margin, "margin", 0, "margin around the drawing in units")
	cmd.Flags().StringVar(&f.font, "font", "", "label font family")
	cmd.Flags().Float64Var(&f.fontSize, "fontsize", 0, "label font size")
	cmd.Flags().StringVar(&f.color, "color", "", "stroke and text color")
	cmd.Flags().StringVar(&f.background, "background", "", "background color")
	cmd.Flags().Float64Var(&f.strokeWidth, "stroke-width", 0, "stroke width in pixels")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed for the handdrawn style")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "label connectivity edges with anchor names (dot, nodelink)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 4, "documents rendered in parallel")
}

// options returns the full pipeline options for path.
func (f *renderFlags) options(path string) (pipeline.Options, error) {
	opts, err := f.docFlags.options(path)
	if err != nil {
		return opts, err
	}
	if f.formats != "" {
		if opts.Formats, err = pipeline.ParseFormats(f.formats); err != nil {
			return opts, err
		}
	}
	opts.Style = f.style
	opts.Scale = f.scale
	opts.Margin = f.margin
	opts.Font = f.font
	opts.FontSize = f.fontSize
	opts.Color = f.color
	opts.Background = f.background
	opts.StrokeWidth = f.strokeWidth
	opts.Seed = f.seed
	opts.Detailed = f.detailed
	opts.Refresh = f.refresh
	return opts, nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <file>...",
		Short: "Render circuit documents",
		Long: `Render one or more circuit documents.

Each document is written next to its source (or into [output] dir from the
config file) with one file per format, e.g. ldo.svg and ldo.scene.json.
Rendered outputs are cached by scene content and render settings.`,
		Example: `  circuitdraw render ldo-u6.circ
  circuitdraw render buck.toml -f svg,png --variant compact
  circuitdraw render *.circ --set gap=1.5 --style handdrawn`,
		Args: cobra.MinimumNArgs(1),

		ValidArgsFunction: completeDocuments,

		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.output != "" && len(args) > 1 {
				return fmt.Errorf("--output needs a single document")
			}
			return c.runRender(cmd.Context(), args, &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, paths []string, flags *renderFlags) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	all := make([]pipeline.Options, len(paths))
	for i, path := range paths {
		opts, err := flags.options(path)
		if err != nil {
			return err
		}
		cfg.Apply(&opts)
		all[i] = opts
	}
	if flags.output != "" && len(all[0].Formats) > 1 {
		return fmt.Errorf("--output needs a single format")
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d document(s)", len(all)))
	spin.Start()
	results, err := runner.ExecuteAll(ctx, all, flags.jobs)
	spin.Stop()
	if err != nil {
		return err
	}

	for i, res := range results {
		printSuccess("%s", documentTitle(res.Document))
		printStats(res.Stats.Components, res.Stats.Wires, res.Stats.Junctions, res.CacheInfo.RenderHit)
		for _, format := range all[i].Formats {
			path := outputPath(flags.output, cfg.Output.Dir, all[i], format)
			if err := writeOutput(path, res.Artifacts[format]); err != nil {
				return err
			}
			printFile(path)
		}
	}
	prog.done(fmt.Sprintf("Rendered %d document(s)", len(results)))
	return nil
}

// documentTitle is the title, or the file name for untitled documents.
func documentTitle(doc *script.Document) string {
	if doc.Title != "" {
		return doc.Title
	}
	return filepath.Base(doc.Path)
}

// outputPath derives the file for one format. An explicit output wins;
// otherwise the input's base name is reused (with the variant appended)
// in dir, or next to the input when dir is empty.
func outputPath(output, dir string, opts pipeline.Options, format string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(opts.Path, filepath.Ext(opts.Path))
	if opts.Variant != "" {
		base += "-" + opts.Variant
	}
	if dir != "" {
		base = filepath.Join(dir, filepath.Base(base))
	}
	return base + pipeline.Extension(format)
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
