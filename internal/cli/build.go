package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marceneiro/casework/pkg/panel"
	"github.com/marceneiro/casework/pkg/sink/solid"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	out   string // STL output path; empty skips export
	cells int    // marching cubes resolution for STL export
}

// buildCommand creates the build command. It decodes a TOML assembly plan,
// emits it into a solid document and prints the resulting panel table.
// With --out the realized assembly is also exported as binary STL.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{cells: solid.DefaultMeshCells}

	cmd := &cobra.Command{
		Use:   "build <plan.toml>",
		Short: "Build a panel assembly from a TOML plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(withLogger(cmd.Context(), c.Logger))

			plan, err := LoadPlan(args[0])
			if err != nil {
				return err
			}
			logger.Debug("plan decoded", "assemblies", len(plan.Assemblies))

			doc := solid.New()
			prog := newProgress(logger)
			panels, err := plan.Apply(doc)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Emitted %d panels", len(panels)))

			printPanelTable(cmd, panels)

			if opts.out == "" {
				return nil
			}
			prog = newProgress(logger)
			if err := doc.ToSTL(opts.out, opts.cells); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Wrote %s", opts.out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "export the realized assembly as binary STL")
	cmd.Flags().IntVar(&opts.cells, "cells", solid.DefaultMeshCells, "marching cubes resolution for STL export")

	return cmd
}

// printPanelTable writes the emitted panels to the command's stdout, one
// line per panel with orientation and the literal-or-formula dimensions.
func printPanelTable(cmd *cobra.Command, panels []panel.Panel) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tORIENTATION\tWIDTH\tHEIGHT\tTHICKNESS")
	for _, p := range panels {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.Orientation, p.Length, p.Height, p.Thickness)
	}
	w.Flush()
}
