package rules

import (
	"strings"

	"github.com/yaklabco/gopydoclint/pkg/fix"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

// TabIndentationRule flags docstrings whose continuation lines are indented
// with tabs.
type TabIndentationRule struct {
	lint.BaseRule
}

// NewTabIndentationRule creates a new docstring-tab-indentation rule.
func NewTabIndentationRule() *TabIndentationRule {
	return &TabIndentationRule{
		BaseRule: lint.NewBaseRule(
			"D206",
			"docstring-tab-indentation",
			"Docstring should be indented with spaces, not tabs",
			[]string{"whitespace", "indentation"},
			false,
		),
	}
}

// Apply reports each docstring once, however many lines use tabs.
func (r *TabIndentationRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for _, ds := range ctx.Docstrings() {
		if ctx.Cancelled() {
			return diags, errCancelled(ctx)
		}

		lines := bodyLines(ds)
		for _, line := range lines[1:] {
			if !strings.Contains(leadingSpace(line.text), "\t") {
				continue
			}
			diags = append(diags, ctx.Diagnostic(r.ID(), ds, ds,
				"Docstring should be indented with spaces, not tabs").
				WithSuggestion("Replace tab indentation with spaces").
				Build())
			break
		}
	}

	return diags, nil
}

// UnderIndentedRule flags docstring lines indented less than the opening quotes.
type UnderIndentedRule struct {
	lint.BaseRule
}

// NewUnderIndentedRule creates a new docstring-under-indented rule.
func NewUnderIndentedRule() *UnderIndentedRule {
	return &UnderIndentedRule{
		BaseRule: lint.NewBaseRule(
			"D207",
			"docstring-under-indented",
			"Docstring is under-indented",
			[]string{"whitespace", "indentation"},
			true,
		),
	}
}

// Apply compares each continuation line against the docstring's indentation.
//
// Blank lines are ignored, except the last one, which holds the closing
// quotes. Docstrings that share their opening line with other code
// (`def f(): """..."""`) have no reference indentation and are skipped.
//
// Options:
//   - tab_width: columns between tab stops when measuring indentation (default 8)
func (r *UnderIndentedRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	tabWidth := max(ctx.OptionInt("tab_width", defaultTabWidth), 1)

	var diags []lint.Diagnostic

	for _, ds := range ctx.Docstrings() {
		if ctx.Cancelled() {
			return diags, errCancelled(ctx)
		}

		indent := ds.ComputeIndentation()
		if leadingSpace(indent) != indent {
			continue
		}

		width := indentWidth(indent, tabWidth)
		lines := bodyLines(ds)
		for idx := 1; idx < len(lines); idx++ {
			line := lines[idx]
			isLast := idx == len(lines)-1
			if !isLast && line.isBlank() {
				continue
			}

			lineIndent := leadingSpace(line.text)
			if indentWidth(lineIndent, tabWidth) >= width {
				continue
			}

			message := "Docstring is under-indented"
			if isLast && line.isBlank() {
				message = "Closing quotes are under-indented"
			}

			target := pysrc.NewTextRange(line.offset, line.offset+len(lineIndent))
			diags = append(diags, ctx.Diagnostic(r.ID(), ds, target, message).
				WithSuggestion("Indent to match the opening quotes").
				WithEdit(fix.Replacement(target.Start, target.End, indent)).
				Build())
		}
	}

	return diags, nil
}

// defaultTabWidth matches the tab stops of the Python tokenizer.
const defaultTabWidth = 8

// indentWidth returns the column reached after indent, expanding tabs to the
// next multiple of tabWidth.
func indentWidth(indent string, tabWidth int) int {
	col := 0
	for i := range len(indent) {
		if indent[i] == '\t' {
			col += tabWidth - col%tabWidth
			continue
		}
		col++
	}
	return col
}

// SurroundingWhitespaceRule flags whitespace between the quotes and the
// summary text.
type SurroundingWhitespaceRule struct {
	lint.BaseRule
}

// NewSurroundingWhitespaceRule creates a new surrounding-whitespace rule.
func NewSurroundingWhitespaceRule() *SurroundingWhitespaceRule {
	return &SurroundingWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			"D210",
			"surrounding-whitespace",
			"No whitespaces allowed surrounding docstring text",
			[]string{"whitespace"},
			true,
		),
	}
}

// Apply checks the first line of each docstring body.
func (r *SurroundingWhitespaceRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for _, ds := range ctx.Docstrings() {
		if ctx.Cancelled() {
			return diags, errCancelled(ctx)
		}

		lines := bodyLines(ds)
		first := lines[0]
		trimmed := strings.TrimSpace(first.text)
		if trimmed == "" || trimmed == first.text {
			continue
		}

		builder := ctx.Diagnostic(r.ID(), ds, pysrc.NewTextRange(first.offset, first.end()),
			"No whitespaces allowed surrounding docstring text").
			WithSuggestion("Trim surrounding whitespace")

		// On a one-line docstring the text runs into the closing quotes.
		gluesToCloser := len(lines) == 1 && strings.HasSuffix(trimmed, ds.QuoteStyle().String())
		if !gluesToCloser && !strings.HasSuffix(trimmed, `\`) {
			builder.WithEdit(fix.Replacement(first.offset, first.end(), trimmed))
		}

		diags = append(diags, builder.Build())
	}

	return diags, nil
}
