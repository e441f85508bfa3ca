package config

import (
	"bytes"
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every rule. If false, a minimal template is written.
	Full bool

	// Convention preselects a style guide in the generated file.
	Convention Convention

	// IncludeRules limits the documented rules to these IDs.
	// If empty, all rules are included.
	IncludeRules []string

	// Rules holds preset rule settings, such as those of a rule pack.
	// They are written uncommented and override the documented defaults.
	Rules map[string]RuleConfig
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool
}

// RuleInfoProvider returns information about the available rules.
// It decouples this package from the lint package.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the rules package during init.
//
//nolint:gochecknoglobals // Extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// DefaultTemplateHeader returns the header written at the top of generated configs.
func DefaultTemplateHeader() string {
	return `# gopydoclint configuration
# See: https://github.com/yaklabco/gopydoclint`
}

// GenerateTemplate creates a commented configuration file.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	buf.WriteString("# Docstring convention: pep257, google or numpy\n")
	if opts.Convention != ConventionNone {
		fmt.Fprintf(&buf, "convention: %s\n", opts.Convention)
	} else {
		buf.WriteString("# convention: pep257\n")
	}

	buf.WriteString(`
# Severity for rules without an explicit one: error, warning or info
# severity_default: warning

# File extensions to lint
# extensions:
#   - .py
#   - .pyi

# Lint extensionless scripts with a Python shebang
# include_scripts: true

# File patterns to skip (doublestar globs)
# ignore:
#   - "**/migrations/**"
#   - "build/**"
`)

	if !opts.Full && len(opts.Rules) > 0 {
		buf.WriteString("\n# Rule-specific configuration\nrules:\n")
		for _, id := range slices.Sorted(maps.Keys(opts.Rules)) {
			writeRule(&buf, id, opts.Rules[id])
		}
		return buf.Bytes()
	}

	if !opts.Full {
		buf.WriteString(`
# Rule-specific configuration, keyed by ID or name
# rules:
#   D400:
#     severity: error
#   docstring-code-fence-language:
#     enabled: true
`)
		return buf.Bytes()
	}

	buf.WriteString("\n# Rule-specific configuration\nrules:\n")
	for _, rule := range selectRules(ruleInfos(), opts.IncludeRules) {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		if rule.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		enabled, severity := rule.Enabled, string(rule.Severity)
		if preset, ok := opts.Rules[rule.ID]; ok {
			if preset.Enabled != nil {
				enabled = *preset.Enabled
			}
			if preset.Severity != nil {
				severity = *preset.Severity
			}
		}
		writeRule(&buf, rule.ID, RuleConfig{Enabled: &enabled, Severity: &severity})
	}

	return buf.Bytes()
}

// writeRule writes one entry of the rules mapping.
func writeRule(buf *bytes.Buffer, id string, rc RuleConfig) {
	fmt.Fprintf(buf, "  %s:\n", id)
	if rc.Enabled != nil {
		fmt.Fprintf(buf, "    enabled: %t\n", *rc.Enabled)
	}
	if rc.Severity != nil {
		fmt.Fprintf(buf, "    severity: %s\n", *rc.Severity)
	}
	if rc.AutoFix != nil {
		fmt.Fprintf(buf, "    auto_fix: %t\n", *rc.AutoFix)
	}
}

// ruleInfos returns the registered rules, sorted by ID.
func ruleInfos() []RuleInfo {
	if DefaultRuleInfoProvider == nil {
		return nil
	}
	rules := DefaultRuleInfoProvider()
	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return rules
}

// selectRules keeps the rules whose ID is in include; an empty include keeps all.
func selectRules(rules []RuleInfo, include []string) []RuleInfo {
	if len(include) == 0 {
		return rules
	}
	return slices.DeleteFunc(rules, func(r RuleInfo) bool {
		return !slices.Contains(include, r.ID)
	})
}

// wrapComment wraps text to maxWidth, continuing each line as a comment.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	return strings.Join(lines, "\n  # ")
}
