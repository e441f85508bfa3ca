package rules

import (
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gopydoclint/pkg/docstring"
	"github.com/yaklabco/gopydoclint/pkg/fix"
	"github.com/yaklabco/gopydoclint/pkg/lint"
)

// EmptyDocstringRule flags docstrings whose body is blank.
type EmptyDocstringRule struct {
	lint.BaseRule
}

// NewEmptyDocstringRule creates a new empty-docstring rule.
func NewEmptyDocstringRule() *EmptyDocstringRule {
	return &EmptyDocstringRule{
		BaseRule: lint.NewBaseRule(
			"D419",
			"empty-docstring",
			"Docstring is empty",
			[]string{"content"},
			false,
		),
	}
}

// Apply checks for blank docstring bodies.
func (r *EmptyDocstringRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for _, ds := range ctx.Docstrings() {
		if ctx.Cancelled() {
			return diags, errCancelled(ctx)
		}
		if !ds.Body().IsBlank() {
			continue
		}

		diags = append(diags, ctx.Diagnostic(r.ID(), ds, ds,
			"Docstring is empty").
			WithSuggestion("Add a summary line or remove the docstring").
			Build())
	}

	return diags, nil
}

// UnnecessaryMultilineRule flags multi-line docstrings with a single line of text.
type UnnecessaryMultilineRule struct {
	lint.BaseRule
}

// NewUnnecessaryMultilineRule creates a new unnecessary-multiline-docstring rule.
func NewUnnecessaryMultilineRule() *UnnecessaryMultilineRule {
	return &UnnecessaryMultilineRule{
		BaseRule: lint.NewBaseRule(
			"D200",
			"unnecessary-multiline-docstring",
			"One-line docstring should fit on one line",
			[]string{"content", "layout"},
			true,
		),
	}
}

// Apply checks for one-line docstrings spread over several lines.
func (r *UnnecessaryMultilineRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for _, ds := range ctx.Docstrings() {
		if ctx.Cancelled() {
			return diags, errCancelled(ctx)
		}

		lines := bodyLines(ds)
		if len(lines) < 2 {
			continue
		}

		nonBlank := 0
		for _, line := range lines {
			if !line.isBlank() {
				nonBlank++
			}
		}
		if nonBlank != 1 {
			continue
		}

		builder := ctx.Diagnostic(r.ID(), ds, ds, "One-line docstring should fit on one line").
			WithSuggestion("Reformat to one line")

		body := ds.Body()
		text := body.TrimSpace()
		// Collapsing would glue a trailing quote or backslash to the closer.
		if !strings.HasSuffix(text, ds.QuoteStyle().String()) && !strings.HasSuffix(text, `\`) {
			content := body.Range()
			builder.WithEdit(fix.Replacement(content.Start, content.End, text))
		}

		diags = append(diags, builder.Build())
	}

	return diags, nil
}

// MissingTrailingPeriodRule checks that the summary line ends in a period.
type MissingTrailingPeriodRule struct {
	lint.BaseRule
}

// NewMissingTrailingPeriodRule creates a new missing-trailing-period rule.
func NewMissingTrailingPeriodRule() *MissingTrailingPeriodRule {
	return &MissingTrailingPeriodRule{
		BaseRule: lint.NewBaseRule(
			"D400",
			"missing-trailing-period",
			"First line should end with a period",
			[]string{"content", "punctuation"},
			true,
		),
	}
}

// Apply checks the summary line of each docstring.
//
// The summary is the first paragraph; for a wrapped summary the check applies
// to its last line.
//
// Options:
//   - ignore_definitions: glob patterns over qualified names, e.g.
//     "test_*" or "Config.*"; "<module>" matches the module docstring
func (r *MissingTrailingPeriodRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	ignored := ctx.OptionStringSlice("ignore_definitions", nil)

	var diags []lint.Diagnostic

	for _, ds := range ctx.Docstrings() {
		if ctx.Cancelled() {
			return diags, errCancelled(ctx)
		}
		if matchesDefinition(ds, ignored) {
			continue
		}

		summary, ok := summaryLine(bodyLines(ds))
		if !ok {
			continue
		}

		trimmed := strings.TrimRight(summary.text, " \t")
		if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, `\`) {
			continue
		}

		builder := ctx.Diagnostic(r.ID(), ds, lineRange(summary), "First line should end with a period").
			WithSuggestion("Add a closing period")

		if !strings.HasSuffix(trimmed, ":") && !strings.HasSuffix(trimmed, ";") &&
			!strings.HasSuffix(trimmed, "?") && !strings.HasSuffix(trimmed, "!") {
			builder.WithEdit(fix.Insertion(summary.offset+len(trimmed), "."))
		}

		diags = append(diags, builder.Build())
	}

	return diags, nil
}

// matchesDefinition reports whether the qualified name of the definition
// documented by ds matches any of patterns. Malformed patterns never match.
func matchesDefinition(ds *docstring.Docstring, patterns []string) bool {
	def := ds.Definition()
	if def == nil || len(patterns) == 0 {
		return false
	}
	name := def.QualifiedName()
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		ok, err := doublestar.Match(pattern, name)
		return err == nil && ok
	})
}
