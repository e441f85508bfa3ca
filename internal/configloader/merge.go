package configloader

import (
	"maps"

	"github.com/yaklabco/gopydoclint/pkg/config"
)

// merge layers override on top of base and returns a new Config.
//
// Zero scalars and nil slices in override leave base untouched; a non-nil
// slice replaces base's entirely. Rule settings merge per rule and per
// field. Fix and DryRun can only be switched on by a later layer.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	setIfNonZero(&result.SeverityDefault, override.SeverityDefault)
	setIfNonZero(&result.Convention, override.Convention)
	setIfNonZero(&result.Format, override.Format)
	setIfNonZero(&result.RuleFormat, override.RuleFormat)
	setIfNonZero(&result.Jobs, override.Jobs)
	setIfNonZero(&result.Fix, override.Fix)
	setIfNonZero(&result.DryRun, override.DryRun)
	if override.IncludeScripts != nil {
		result.IncludeScripts = override.IncludeScripts
	}

	setIfNonNil(&result.Ignore, override.Ignore)
	setIfNonNil(&result.Extensions, override.Extensions)
	setIfNonNil(&result.EnableRules, override.EnableRules)
	setIfNonNil(&result.DisableRules, override.DisableRules)
	setIfNonNil(&result.FixRules, override.FixRules)

	result.Rules = mergeRules(base.Rules, override.Rules)

	return &result
}

func setIfNonZero[T comparable](dst *T, value T) {
	var zero T
	if value != zero {
		*dst = value
	}
}

func setIfNonNil[T any](dst *[]T, value []T) {
	if value != nil {
		*dst = value
	}
}

// mergeRules merges rule settings key by key. The result never aliases
// either input map.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := maps.Clone(base)
	if result == nil {
		result = make(map[string]config.RuleConfig, len(override))
	}
	for id, rc := range override {
		if existing, ok := result[id]; ok {
			rc = mergeRuleConfig(existing, rc)
		}
		result[id] = rc
	}
	return result
}

// mergeRuleConfig overlays the fields override sets. Options merge by key.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.AutoFix != nil {
		result.AutoFix = override.AutoFix
	}
	if override.Options != nil {
		options := make(map[string]any, len(result.Options)+len(override.Options))
		maps.Copy(options, result.Options)
		maps.Copy(options, override.Options)
		result.Options = options
	}

	return result
}

// MergeAll merges configs in order; later configs take precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}
