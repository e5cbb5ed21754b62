package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/pipeline"
	"github.com/matzehuels/circuitdraw/pkg/render/sink"
	"github.com/matzehuels/circuitdraw/pkg/render/styles"
)

// buildCommand creates the build command, which resolves a document
// without rendering it.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		flags  docFlags
		asJSON bool
		nets   bool
	)

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Resolve a document and print a scene summary",
		Example: `  circuitdraw build ldo-u6.circ
  circuitdraw build ldo-u6.circ --json > scene.json
  circuitdraw build buck.toml --variant compact --nets`,
		Args: cobra.ExactArgs(1),

		ValidArgsFunction: completeDocuments,

		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(args[0])
			if err != nil {
				return err
			}
			res, err := c.build(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if asJSON {
				data, err := sink.RenderJSON(res.Scene)
				if err != nil {
					return err
				}
				_, err = stdout.Write(data)
				return err
			}
			printBuild(res, nets)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the scene as JSON to stdout")
	cmd.Flags().BoolVar(&nets, "nets", false, "list connected terminals")
	return cmd
}

// build runs the load and build stages without a cache.
func (c *CLI) build(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error) {
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	return pipeline.NewRunner(nil, nil, logger).Build(ctx, opts)
}

func printBuild(res *pipeline.Result, nets bool) {
	s := res.Scene
	printSuccess("%s", documentTitle(res.Document))
	printKeyValue("scene", s.ID)
	printKeyValue("unit", styles.Num(s.Unit))
	b := s.Bounds()
	printKeyValue("bounds", fmt.Sprintf("(%s, %s) to (%s, %s)",
		styles.Num(b.Min.X), styles.Num(b.Min.Y), styles.Num(b.Max.X), styles.Num(b.Max.Y)))
	printStats(res.Stats.Components, res.Stats.Wires, res.Stats.Junctions, false)
	if s.LeakedPushes > 0 {
		printWarning("%d saved position(s) never restored", s.LeakedPushes)
	}
	if !nets {
		return
	}
	for i, n := range s.Nets() {
		terms := make([]string, len(n.Terminals))
		for j, t := range n.Terminals {
			terms[j] = t.Component + "." + t.Anchor
		}
		printDetail("net %d: %s", i+1, strings.Join(terms, ", "))
	}
}

// checkCommand creates the check command, which builds documents and
// reports the first error in each.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		flags  docFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate documents without rendering",
		Args:  cobra.MinimumNArgs(1),

		ValidArgsFunction: completeDocuments,

		RunE: func(cmd *cobra.Command, args []string) error {
			reports := c.check(cmd.Context(), args, flags)
			failed := 0
			for _, r := range reports {
				if r.Code != "" {
					failed++
				}
			}
			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			} else {
				for _, r := range reports {
					r.print()
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d document(s) failed", failed, len(reports))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print reports as JSON")
	return cmd
}

// checkReport is the outcome of building one document.
type checkReport struct {
	Path    string `json:"path"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Items   int    `json:"items,omitempty"`
}

func (c *CLI) check(ctx context.Context, paths []string, flags docFlags) []checkReport {
	reports := make([]checkReport, 0, len(paths))
	for _, path := range paths {
		r := checkReport{Path: path}
		opts, err := flags.options(path)
		if err == nil {
			var res *pipeline.Result
			if res, err = c.build(ctx, opts); err == nil {
				r.Items = len(res.Scene.Items)
			}
		}
		if err != nil {
			r.Code = string(errors.GetCode(err))
			if r.Code == "" {
				r.Code = string(errors.ErrCodeInvalidInput)
			}
			r.Message = errors.UserMessage(err)
		}
		reports = append(reports, r)
	}
	return reports
}

func (r checkReport) print() {
	if r.Code == "" {
		printSuccess("%s %s", r.Path, styleDim.Render(fmt.Sprintf("(%d items)", r.Items)))
		return
	}
	printError("%s", r.Path)
	printDetail("%s: %s", r.Code, r.Message)
}
