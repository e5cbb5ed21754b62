package cli

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/render/styles"
	"github.com/matzehuels/circuitdraw/pkg/scene"
)

// anchorsCommand creates the anchors command, which lists the resolved
// anchor positions of one placed component.
func (c *CLI) anchorsCommand() *cobra.Command {
	var (
		flags  docFlags
		sorted bool
	)

	cmd := &cobra.Command{
		Use:     "anchors <file> <id>",
		Short:   "Show the anchor positions of a placed component",
		Example: `  circuitdraw anchors ldo-u6.circ U6`,
		Args:    cobra.ExactArgs(2),

		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return completeDocuments(cmd, args, toComplete)
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(args[0])
			if err != nil {
				return err
			}
			res, err := c.build(cmd.Context(), opts)
			if err != nil {
				return err
			}
			comp, ok := res.Scene.Component(args[1])
			if !ok {
				return errors.New(errors.ErrCodeUnresolvedAnchor, "%s is not placed in %s", args[1], args[0])
			}
			printKeyValue("component", fmt.Sprintf("%s (%s)", comp.Name(), componentKind(comp)))
			printKeyValue("origin", pointString(comp.Origin.X, comp.Origin.Y))
			printKeyValue("orientation", comp.Orientation.String())
			fmt.Fprintln(stdout, anchorsTable(comp, sorted))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&sorted, "sort", false, "sort anchors by name")
	return cmd
}

func componentKind(c *scene.Component) string {
	if c.Part != "" && c.Part != string(c.Kind) {
		return fmt.Sprintf("%s %s", c.Part, c.Kind)
	}
	return string(c.Kind)
}

func pointString(x, y float64) string {
	return fmt.Sprintf("(%s, %s)", styles.Num(x), styles.Num(y))
}

// anchorsTable renders the component's anchors in declaration order, or
// by name when sorted is set.
func anchorsTable(c *scene.Component, sorted bool) string {
	anchors := c.Anchors
	if sorted {
		anchors = slices.Clone(anchors)
		sort.Slice(anchors, func(i, j int) bool { return anchors[i].Name < anchors[j].Name })
	}

	rows := make([][]string, len(anchors))
	for i, a := range anchors {
		rows[i] = []string{a.Name, styles.Num(a.Point.X), styles.Num(a.Point.Y)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("Anchor", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return headerStyle.Padding(0, 1)
			case col == 0:
				return styleValue.Padding(0, 1)
			}
			return styleNumber.Padding(0, 1).Align(lipgloss.Right)
		})
	return strings.TrimRight(t.Render(), "\n")
}
