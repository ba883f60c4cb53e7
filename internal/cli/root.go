package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/packforce/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Packforce lays out network graphs and packed bubbles",
		Long: `Packforce runs force-directed simulations over charts: node-link network
graphs and packed bubble charts. Charts are read from JSON, YAML or DOT and the
settled node positions are written as a layout JSON file.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.kindsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// kindsCommand lists the registered layout kinds.
func (c *CLI) kindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the available layout kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, kind := range c.Registry.Kinds() {
				fmt.Fprintln(out, kind)
			}
			return nil
		},
	}
}

// kindNames formats the registered kinds for flag help.
func (c *CLI) kindNames() string {
	return strings.Join(c.Registry.Kinds(), ", ")
}
