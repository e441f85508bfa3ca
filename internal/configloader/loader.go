// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// pyproject.toml support, environment variables, validation, and
// pydocstyle migration.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gopydoclint/internal/logging"
	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/fsutil"
	"github.com/yaklabco/gopydoclint/pkg/lint"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// DefaultConfigFile is the name used when writing a new project config.
const DefaultConfigFile = ".gopydoclint.yml"

// configHeader is written above generated configuration files.
const configHeader = `# gopydoclint configuration
# See: https://github.com/yaklabco/gopydoclint`

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// IgnorePydocstyle skips pydocstyle config detection and migration.
	IgnorePydocstyle bool

	// NonInteractive disables interactive prompts (e.g., in CI).
	NonInteractive bool

	// Prompt is where the migration prompt is written. Defaults to os.Stdout.
	Prompt io.Writer

	// Answer is where the migration answer is read from. Defaults to os.Stdin.
	Answer io.Reader

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string

	// MigrationPerformed is true if a pydocstyle config was converted.
	MigrationPerformed bool
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOPYDOCLINT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gopydoclint.yml or [tool.gopydoclint], upward search)
//  5. User config ($XDG_CONFIG_HOME/gopydoclint/config.yaml)
//  6. System config (/etc/gopydoclint/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}

	if !opts.IgnorePydocstyle && opts.ExplicitPath == "" {
		migrated, err := handlePydocstyleMigration(ctx, paths, result, opts, workDir)
		if err != nil {
			return nil, err
		}
		if migrated {
			paths, err = DiscoverPaths(ctx, workDir)
			if err != nil {
				return nil, fmt.Errorf("discover paths after migration: %w", err)
			}
			paths.Explicit = opts.ExplicitPath
			result.Paths = paths
		}
	}

	layers := []struct {
		name    string
		path    string
		skipped bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", opts.ExplicitPath, false},
	}
	configs := []*config.Config{config.NewConfig()}
	for _, layer := range layers {
		if layer.skipped || layer.path == "" {
			continue
		}
		layerCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		configs = append(configs, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded config", logging.FieldConfig, layer.name, logging.FieldPath, layer.path)
	}
	cfg := MergeAll(configs...)

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// Rule names and pydocstyle-era aliases are accepted as keys.
	normalizeRuleKeys(cfg, lint.DefaultRegistry, result)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file or from the
// [tool.gopydoclint] table of a pyproject.toml.
func loadConfigFile(path string) (*config.Config, error) {
	if filepath.Base(path) == pyprojectFile {
		return loadPyprojectConfig(path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, err
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig)
	}
	return cfg, nil
}

// handlePydocstyleMigration checks for pydocstyle settings and offers to
// convert them when no gopydoclint config exists.
func handlePydocstyleMigration(
	ctx context.Context,
	paths *ConfigPaths,
	result *LoadResult,
	opts LoadOptions,
	workDir string,
) (bool, error) {
	if paths.Pydocstyle == "" {
		return false, nil
	}
	if paths.Project != "" {
		logging.FromContext(ctx).Debug("ignoring pydocstyle settings",
			logging.FieldPath, paths.Pydocstyle, logging.FieldConfig, paths.Project)
		return false, nil
	}

	if opts.NonInteractive || (opts.Answer == nil && !isInteractive()) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("found pydocstyle settings in %s but no %s; run 'gopydoclint migrate' to convert",
				paths.Pydocstyle, DefaultConfigFile))
		return false, nil
	}

	shouldMigrate, err := promptMigration(opts, paths.Pydocstyle)
	if err != nil {
		return false, err
	}
	if !shouldMigrate {
		return false, nil
	}

	migration, err := ConvertPydocstyleConfig(paths.Pydocstyle)
	if err != nil {
		return false, fmt.Errorf("convert pydocstyle config: %w", err)
	}
	result.Warnings = append(result.Warnings, migration.Warnings...)

	outputPath := filepath.Join(workDir, DefaultConfigFile)
	if err := WriteConfig(ctx, migration.Config, outputPath); err != nil {
		return false, fmt.Errorf("write migrated config: %w", err)
	}

	result.MigrationPerformed = true
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("migrated pydocstyle settings from %s to %s", paths.Pydocstyle, outputPath))

	return true, nil
}

// promptMigration asks the user if they want to migrate.
func promptMigration(opts LoadOptions, sourcePath string) (bool, error) {
	out := opts.Prompt
	if out == nil {
		out = os.Stdout
	}
	in := opts.Answer
	if in == nil {
		in = os.Stdin
	}

	_, err := fmt.Fprintf(out, "Found pydocstyle settings in %s but no %s\nConvert to gopydoclint format? [Y/n] ",
		sourcePath, DefaultConfigFile)
	if err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || response == "") {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "" || response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// WriteConfig writes a configuration to a YAML file with the standard header.
func WriteConfig(ctx context.Context, cfg *config.Config, path string) error {
	content, err := cfg.ToYAMLWithHeader(configHeader)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// normalizeRuleKeys converts rule names/aliases to canonical IDs in the config.
// If a rule is specified by both ID and name, warns and uses the last value encountered.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seenIDs := make(map[string]string) // canonical ID -> original key

	for key, ruleCfg := range cfg.Rules {
		canonicalID, _, found := registry.Resolve(key)
		if !found {
			// Validation warns about unknown rules.
			normalized[key] = ruleCfg
			continue
		}

		if originalKey, exists := seenIDs[canonicalID]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using last value",
					originalKey, key, canonicalID))
		}

		seenIDs[canonicalID] = key
		normalized[canonicalID] = ruleCfg
	}

	cfg.Rules = normalized
}
