package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopydoclint/internal/configloader"
	"github.com/yaklabco/gopydoclint/internal/logging"
	"github.com/yaklabco/gopydoclint/pkg/analysis"
	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	_ "github.com/yaklabco/gopydoclint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/gopydoclint/pkg/parser/treesitter"
	"github.com/yaklabco/gopydoclint/pkg/reporter"
	"github.com/yaklabco/gopydoclint/pkg/runner"
)

// errConfigLoad marks failures to load or validate configuration.
var errConfigLoad = errors.New("failed to load configuration")

type lintFlags struct {
	format     string
	convention string
	ignore     []string
	enable     []string
	disable    []string
	fixRules   []string
	strict     bool
	noContext  bool
	compact    bool
	watch      bool
	ruleFormat string
	sortBy     string
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Python docstrings",
		Long:  lintLongDescription + envHelp(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags, info)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint the docstrings of Python files.

By default, lints all .py and .pyi files in the current directory and
subdirectories, plus extensionless scripts with a Python shebang. Specify
paths to lint specific files or directories.

Examples:
  gopydoclint lint                     # Lint current directory
  gopydoclint lint src/                # Lint src directory
  gopydoclint lint app.py              # Lint single file
  gopydoclint lint --fix               # Lint and auto-fix issues
  gopydoclint lint --dry-run           # Show fixes as a diff without applying
  gopydoclint lint --format json       # Output as JSON for CI
  gopydoclint lint --format summary    # Per-rule and per-file counts
  gopydoclint lint --watch             # Re-lint files as they change
  gopydoclint lint --strict            # Treat warnings as errors`

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	// Only values explicitly provided on the command line override config.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if cmd.Flags().Changed("convention") {
		cfg.Convention = config.Convention(flags.convention)
	}
	cfg.Ignore = flags.ignore

	sortBy, err := analysis.ParseSortField(flags.sortBy)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	if cfg.EnableRules, err = resolveRuleIDs(flags.enable); err != nil {
		return err
	}
	if cfg.DisableRules, err = resolveRuleIDs(flags.disable); err != nil {
		return err
	}
	if cfg.FixRules, err = resolveRuleIDs(flags.fixRules); err != nil {
		return err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	})
	if err != nil {
		return errors.Join(errConfigLoad, err)
	}

	finalCfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	// Dry runs compute fixes without writing them; the diff format shows them.
	if finalCfg.Format == config.FormatDiff {
		finalCfg.DryRun = true
	}
	if finalCfg.DryRun {
		finalCfg.Fix = true
	}

	logger.Debug("configuration loaded",
		logging.FieldConvention, finalCfg.Convention,
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldFormat, finalCfg.Format,
	)

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("get color flag: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		RuleFormat:  finalCfg.RuleFormat,
		SortBy:      sortBy,
		WorkingDir:  workDir,
		ToolVersion: info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	engine := lint.NewEngine(treesitter.New(), lint.DefaultRegistry)
	lintRunner := runner.New(lint.NewPipeline(engine))

	runOpts := runner.OptionsFromConfig(finalCfg, args)
	runOpts.WorkingDir = workDir

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	if flags.watch {
		return watchLint(ctx, lintRunner, runOpts, rep)
	}

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &issuesError{code: code}
	}
	if result.Stats.FilesErrored > 0 {
		return ErrFilesFailed
	}
	return nil
}

// watchLint reports every run until interrupted.
func watchLint(ctx context.Context, lintRunner *runner.Runner, opts runner.Options, rep reporter.Reporter) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := logging.NewInteractive()
	session.Info("watching for changes; press Ctrl+C to stop", logging.FieldPaths, opts.Paths)

	err := lintRunner.Watch(ctx, opts, runner.DefaultDebounce, func(result *runner.Result, runErr error) {
		if runErr != nil {
			session.Error("lint run failed", logging.FieldError, runErr)
			return
		}
		if _, err := rep.Report(ctx, result); err != nil {
			session.Error("report failed", logging.FieldError, err)
		}
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes as a diff without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to specific rules")
	cmd.Flags().StringVar(&flags.convention, "convention", "", "docstring convention: pep257, google, numpy")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON and SARIF output")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-lint files when they change")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.sortBy, "sort", "count",
		"order of the summary tables: count, alpha, severity")
}

// resolveRuleIDs maps rule IDs, names and aliases given on the command line
// to canonical rule IDs.
func resolveRuleIDs(keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		id, _, ok := lint.DefaultRegistry.Resolve(key)
		if !ok {
			return nil, fmt.Errorf("%w: unknown rule %q", ErrInvalidUsage, key)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// envHelp lists the supported environment variables for the lint help text.
func envHelp() string {
	vars := configloader.ListEnvVars()
	var b strings.Builder
	b.WriteString("\n\nEnvironment:\n")
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&b, "  %-30s %s\n", name, vars[name])
	}
	return strings.TrimSuffix(b.String(), "\n")
}
