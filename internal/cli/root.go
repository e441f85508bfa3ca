// Package cli provides the Cobra command structure for gopydoclint.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopydoclint/internal/logging"
	"github.com/yaklabco/gopydoclint/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gopydoclint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gopydoclint",
		Short: "A fast, self-fixing Python docstring linter",
		Long: `gopydoclint is a fast, self-fixing Python docstring linter written in Go.

It locates module, class and function docstrings with tree-sitter and checks
their quoting, indentation, whitespace and summary lines against pydocstyle
conventions. Many issues can be fixed automatically; fixes are re-parsed
before they are written, and --dry-run shows them as a diff instead.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !pretty.IsValidColorMode(color) {
				return fmt.Errorf("%w: invalid --color %q: must be auto, always, or never", ErrInvalidUsage, color)
			}
			level := "info"
			if debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			logging.SetDefault(logger)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(colorFlagFromArgs(os.Args[1:]), os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}

// colorFlagFromArgs peeks at --color before cobra parses flags, so help
// output can be styled consistently.
func colorFlagFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--color" && i+1 < len(args) {
			return args[i+1]
		}
		if value, ok := strings.CutPrefix(arg, "--color="); ok {
			return value
		}
	}
	return pretty.ColorAuto
}
