package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/lint"
)

// ValidationError is one problem found in a configuration.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.D400.severity").
	Field string

	// Value is the invalid value.
	Value any

	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors prevent the configuration from being used.
	Errors []ValidationError

	// Warnings are reported but do not stop a run, e.g. unknown rules.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	knownSeverities  = []config.Severity{config.SeverityError, config.SeverityWarning, config.SeverityInfo}
	knownFormats     = []config.OutputFormat{config.FormatText, config.FormatJSON, config.FormatSARIF, config.FormatDiff, config.FormatSummary}
	knownRuleFormats = []config.RuleFormat{config.RuleFormatName, config.RuleFormatID, config.RuleFormatCombined}
)

// Validate checks a configuration. Findings are ordered by field so the
// first error is stable across runs.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if !cfg.Convention.IsValid() {
		result.fail("convention", cfg.Convention,
			"invalid convention %q; must be one of: pep257, google, numpy", cfg.Convention)
	}
	if cfg.SeverityDefault != "" && !IsValidSeverity(cfg.SeverityDefault) {
		result.fail("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: %s", cfg.SeverityDefault, joinValues(knownSeverities))
	}
	if cfg.Format != "" && !slices.Contains(knownFormats, cfg.Format) {
		result.fail("format", cfg.Format,
			"invalid format %q; must be one of: %s", cfg.Format, joinValues(knownFormats))
	}
	if cfg.RuleFormat != "" && !slices.Contains(knownRuleFormats, cfg.RuleFormat) {
		result.fail("rule_format", cfg.RuleFormat,
			"invalid rule format %q; must be one of: %s", cfg.RuleFormat, joinValues(knownRuleFormats))
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, ext := range cfg.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext,
				"invalid extension %q; must start with a dot, e.g. .py", ext)
		}
	}
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}

	validateRules(cfg.Rules, lint.DefaultRegistry, result)

	return result
}

// validateRules checks per-rule settings. Keys are expected to be canonical
// IDs by now; anything the registry does not know is only a warning.
func validateRules(rules map[string]config.RuleConfig, registry *lint.Registry, result *ValidationResult) {
	for _, id := range slices.Sorted(maps.Keys(rules)) {
		rc := rules[id]
		if _, ok := registry.Get(id); !ok {
			result.warn("rules."+id, id, "unknown rule %q; it will be ignored", id)
		}
		if rc.Severity != nil && !IsValidSeverity(*rc.Severity) {
			result.fail("rules."+id+".severity", *rc.Severity,
				"invalid severity %q; must be one of: %s", *rc.Severity, joinValues(knownSeverities))
		}
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// IsValidSeverity reports whether s names a severity.
func IsValidSeverity(s string) bool {
	return slices.Contains(knownSeverities, config.Severity(s))
}

// IsValidRuleFormat reports whether f is a rule display format.
func IsValidRuleFormat(f config.RuleFormat) bool {
	return slices.Contains(knownRuleFormats, f)
}
