// Package config defines the configuration types for gopydoclint.
// These are plain data structures; loading and layering live in
// internal/configloader.
package config

import "slices"

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Severity *string        `mapstructure:"severity" yaml:"severity,omitempty"`
	AutoFix  *bool          `mapstructure:"auto_fix" yaml:"auto_fix,omitempty"`
	Options  map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "missing-trailing-period"
	RuleFormatID       RuleFormat = "id"       // "D400"
	RuleFormatCombined RuleFormat = "combined" // "D400/missing-trailing-period"
)

// Convention names a docstring style guide. A convention turns off the
// rules that contradict it; explicit rule configuration still wins.
type Convention string

const (
	ConventionNone   Convention = ""
	ConventionPEP257 Convention = "pep257"
	ConventionGoogle Convention = "google"
	ConventionNumPy  Convention = "numpy"
)

// IsValid reports whether c is a known convention (or none).
func (c Convention) IsValid() bool {
	switch c {
	case ConventionNone, ConventionPEP257, ConventionGoogle, ConventionNumPy:
		return true
	default:
		return false
	}
}

// DisabledRules returns the IDs of the rules the convention turns off.
func (c Convention) DisabledRules() []string {
	switch c {
	case ConventionGoogle:
		// Google style allows summaries ending in other punctuation.
		return []string{"D400"}
	default:
		return nil
	}
}

// Disables reports whether the convention turns off the rule.
func (c Convention) Disables(ruleID string) bool {
	return slices.Contains(c.DisabledRules(), ruleID)
}

// DefaultExtensions are the file extensions linted when none are configured.
func DefaultExtensions() []string {
	return []string{".py", ".pyi"}
}

// Config is the root configuration structure for gopydoclint.
type Config struct {
	// SeverityDefault overrides the default severity of rules that have no
	// explicit severity. Empty keeps each rule's own default.
	SeverityDefault string `mapstructure:"severity_default" yaml:"severity_default,omitempty"`

	// Convention selects a docstring style guide.
	Convention Convention `mapstructure:"convention" yaml:"convention,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `mapstructure:"rules" yaml:"rules,omitempty"`

	// Ignore contains doublestar glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Extensions lists the file extensions to lint, including the dot.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// IncludeScripts lints extensionless files detected as Python.
	// Nil means the default (true).
	IncludeScripts *bool `mapstructure:"include_scripts" yaml:"include_scripts,omitempty"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of issues.
	Fix bool `mapstructure:"-" yaml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `mapstructure:"-" yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `mapstructure:"-" yaml:"-"`

	// FixRules limits auto-fixing to specific rule IDs.
	FixRules []string `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules:      make(map[string]RuleConfig),
		Extensions: DefaultExtensions(),
		Format:     FormatText,
		RuleFormat: RuleFormatName,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// ScriptsIncluded reports whether extensionless Python scripts are linted.
func (c *Config) ScriptsIncluded() bool {
	return c.IncludeScripts == nil || *c.IncludeScripts
}

// LintedExtensions returns the configured extensions, or the defaults.
func (c *Config) LintedExtensions() []string {
	if len(c.Extensions) == 0 {
		return DefaultExtensions()
	}
	return c.Extensions
}
