package rules

import (
	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Content rules
	registry.Register(NewUnnecessaryMultilineRule())  // D200
	registry.Register(NewMissingTrailingPeriodRule()) // D400
	registry.Register(NewEmptyDocstringRule())        // D419

	// Whitespace rules
	registry.Register(NewTabIndentationRule())        // D206
	registry.Register(NewUnderIndentedRule())         // D207
	registry.Register(NewSurroundingWhitespaceRule()) // D210

	// Quote and prefix rules
	registry.Register(NewTripleQuotesRule())   // D300
	registry.Register(NewEscapeSequenceRule()) // D301
	registry.Register(NewUnicodePrefixRule())  // UP025

	// Markdown rules
	registry.Register(NewCodeFenceLanguageRule()) // DOC100
}

// RegisterAliases registers the pydocstyle-era names that differ from a
// rule's canonical Name(), so existing configuration keeps working.
func RegisterAliases(registry *lint.Registry) {
	registry.RegisterAlias("fits-on-one-line", "D200")
	registry.RegisterAlias("indent-with-spaces", "D206")
	registry.RegisterAlias("under-indentation", "D207")
	registry.RegisterAlias("no-surrounding-whitespace", "D210")
	registry.RegisterAlias("ends-in-period", "D400")
}

// RuleInfos describes the rules in registry for configuration templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
			CanFix:      rule.CanFix(),
		})
	}
	return infos
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterAliases(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
