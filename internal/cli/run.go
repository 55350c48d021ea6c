package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marceneiro/casework/pkg/engine"
	"github.com/marceneiro/casework/pkg/sink/solid"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	out   string
	cells int
}

// runCommand creates the run command. It evaluates a Lisp script through
// the engine against a solid document. Script errors are reported with
// line numbers and fail the command; a timeout or panic is fatal.
func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{cells: solid.DefaultMeshCells}

	cmd := &cobra.Command{
		Use:   "run <script.lisp>",
		Short: "Evaluate an assembly script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(withLogger(cmd.Context(), c.Logger))

			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			doc := solid.New()
			prog := newProgress(logger)
			panels, evalErrs, err := engine.NewEngine().Evaluate(string(source), doc)
			if err != nil {
				return err
			}
			if len(evalErrs) > 0 {
				for _, e := range evalErrs {
					logger.Error("script error", "err", e.Error())
				}
				return fmt.Errorf("%s: %d script error(s)", args[0], len(evalErrs))
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
