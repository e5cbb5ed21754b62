package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/circuitdraw/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "circuitdraw lays out and renders schematic diagrams",
		Long: `circuitdraw turns circuit documents into schematic drawings.

Documents (.circ, .toml or .json) place components relative to a drawing
cursor and to each other's pins; circuitdraw resolves the geometry and
renders it as SVG, PNG, PDF, a JSON scene or a connectivity overview.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: ./circuitdraw.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.anchorsCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
