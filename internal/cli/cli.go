// Package cli implements the casework command-line interface.
//
// Two commands cover the two ways of driving the generator:
//   - build: decode a TOML assembly plan and emit it into a solid document
//   - run: evaluate a Lisp script through the engine
//
// Both support --verbose (-v) for debug-level logging. Loggers travel
// through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const appName = "casework"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Casework generates parametric panel assemblies",
		Long:         `Casework is a CLI tool for generating parametric 3-D panel assemblies (plinths, niches, wardrobes) from declarative plans or scripts, with optional STL export.`,
		SilenceUsage: true,
	}

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.runCommand())

	return root
}
