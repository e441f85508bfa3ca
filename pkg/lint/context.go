package lint

import (
	"context"

	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/docstring"
	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

// RuleContext provides all context needed by a rule to perform linting.
//
// RuleContext is a short-lived parameter object created per rule invocation,
// so it carries the context.Context as a field.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the parsed source file.
	File *pysrc.File

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry

	docstrings []*docstring.Docstring
}

// NewRuleContext creates a RuleContext for the given file and configuration.
func NewRuleContext(
	ctx context.Context,
	file *pysrc.File,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Config:     cfg,
		RuleConfig: ruleCfg,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Docstrings returns a view over every docstring in the file, in source order.
// The views are built once per context.
func (rc *RuleContext) Docstrings() []*docstring.Docstring {
	if rc.docstrings == nil && rc.File != nil {
		rc.docstrings = CollectDocstrings(rc.File)
	}
	return rc.docstrings
}

// CollectDocstrings builds docstring views for every definition in file that
// has one.
func CollectDocstrings(file *pysrc.File) []*docstring.Docstring {
	result := make([]*docstring.Docstring, 0, len(file.Definitions))
	for _, def := range file.Definitions {
		if ds := docstring.FromDefinition(def, file); ds != nil {
			result = append(result, ds)
		}
	}
	return result
}

// Diagnostic starts a diagnostic for ds covering the given range, with the
// rule name and definition filled in.
func (rc *RuleContext) Diagnostic(ruleID string, ds *docstring.Docstring, ranged pysrc.Ranged, message string) *DiagnosticBuilder {
	return NewDiagnostic(ruleID, rc.File, ranged, message).
		WithRegistry(rc.Registry).
		WithDefinition(ds.Definition())
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	v := rc.Option(key, defaultValue)
	switch val := v.(type) {
	case int:
		return val
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionString returns a rule-specific string option, or the default.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	v := rc.Option(key, defaultValue)
	if s, ok := v.(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// YAML decodes sequences as []any.
	if items, ok := v.([]any); ok {
		result := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
