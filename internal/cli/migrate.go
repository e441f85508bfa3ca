package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopydoclint/internal/configloader"
	"github.com/yaklabco/gopydoclint/internal/logging"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert pydocstyle settings to gopydoclint format",
		Long: `Convert existing pydocstyle settings to a gopydoclint configuration
file (.gopydoclint.yml).

Settings are read from [tool.pydocstyle] or ruff's pydocstyle and select
settings in pyproject.toml, or from a [pydocstyle] section in setup.cfg,
tox.ini or .pydocstyle. If no input file is given, the current directory
is searched in that order.

Codes without a gopydoclint rule are reported and skipped.

Examples:
  gopydoclint migrate                      Auto-detect and convert settings
  gopydoclint migrate setup.cfg            Convert a specific file
  gopydoclint migrate --output config.yml  Write to a custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.DefaultConfigFile, "Output file path")

	return cmd
}

func runMigrate(cmd *cobra.Command, flags *migrateFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	inputPath := flags.input
	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath = configloader.FindPydocstyleConfig(cwd)
		if inputPath == "" {
			return errors.New("no pydocstyle settings found in current directory")
		}
		logger.Info("found pydocstyle settings", logging.FieldPath, inputPath)
	}

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file: %w", err)
	}

	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if _, err := os.Stat(absOutput); err == nil && !flags.force {
		return fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output)
	}

	result, err := configloader.ConvertPydocstyleConfig(inputPath)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	if err := configloader.WriteConfig(cmd.Context(), result.Config, absOutput); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	logger.Info("migration complete", logging.FieldInput, inputPath, logging.FieldOutput, flags.output)
	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	return nil
}
