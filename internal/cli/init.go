package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gopydoclint/internal/configloader"
	"github.com/yaklabco/gopydoclint/internal/logging"
	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/fsutil"
	"github.com/yaklabco/gopydoclint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force      bool
	full       bool
	pack       string
	convention string
	output     string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gopydoclint configuration file",
		Long: `Create a new .gopydoclint.yml configuration file in the current directory.
The file can be customized to enable/disable rules, change severities, and
configure other options.

Examples:
  gopydoclint init                       Create minimal .gopydoclint.yml
  gopydoclint init --full                Document every rule in the file
  gopydoclint init --pack strict         Start from the strict rule pack
  gopydoclint init --convention google   Preselect the Google convention
  gopydoclint init --output custom.yml   Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"Start from a rule pack: "+strings.Join(rules.PackNames(), ", "))
	cmd.Flags().StringVar(&flags.convention, "convention", "", "Docstring convention: pep257, google, numpy")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.DefaultConfigFile, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	opts := config.TemplateOptions{
		Full:       flags.full,
		Convention: config.Convention(flags.convention),
	}
	if !opts.Convention.IsValid() {
		return fmt.Errorf("%w: invalid convention %q: must be pep257, google, or numpy", ErrInvalidUsage, flags.convention)
	}
	if flags.pack != "" {
		pack := rules.PackByName(flags.pack)
		if pack == nil {
			return fmt.Errorf("%w: unknown pack %q: must be one of %s",
				ErrInvalidUsage, flags.pack, strings.Join(rules.PackNames(), ", "))
		}
		opts.Rules = pack.Rules
	}

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		overwrite, err := confirmOverwrite(cmd, flags.output)
		if err != nil {
			return err
		}
		if !overwrite {
			logger.Info("left existing file unchanged", logging.FieldPath, flags.output)
			return nil
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, config.GenerateTemplate(opts), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	if flags.pack != "" {
		logger.Info("rule settings taken from pack", logging.FieldPack, flags.pack)
	}
	if flags.full {
		logger.Info("full template includes all rules with documentation")
	}
	logger.Info("run 'gopydoclint rules' to see all available rules")

	return nil
}

// confirmOverwrite asks before replacing an existing file. Without a
// terminal on stdin there is nobody to ask, so it refuses.
func confirmOverwrite(cmd *cobra.Command, path string) (bool, error) {
	in := cmd.InOrStdin()
	if file, ok := in.(*os.File); !ok || !term.IsTerminal(int(file.Fd())) {
		return false, fmt.Errorf("file %q already exists; use --force to overwrite", path)
	}

	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read response: %w", err)
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
