package rules

import (
	"strings"

	"github.com/yaklabco/gopydoclint/pkg/fix"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

// TripleQuotesRule checks that docstrings use triple double quotes.
//
// When the body itself contains `"""`, triple single quotes are expected
// instead; a body containing both runs is left alone.
type TripleQuotesRule struct {
	lint.BaseRule
}

// NewTripleQuotesRule creates a new triple-single-quotes rule.
func NewTripleQuotesRule() *TripleQuotesRule {
	return &TripleQuotesRule{
		BaseRule: lint.NewBaseRule(
			"D300",
			"triple-single-quotes",
			`Use triple double quotes """`,
			[]string{"quotes"},
			true,
		),
	}
}

// Apply checks the quote style of each docstring.
func (r *TripleQuotesRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for _, ds := range ctx.Docstrings() {
		if ctx.Cancelled() {
			return diags, errCancelled(ctx)
		}

		body := ds.Body()
		expected := pysrc.QuoteDouble
		if body.Contains(tripleQuotes(expected)) {
			if body.Contains(tripleQuotes(expected.Opposite())) {
				continue
			}
			expected = expected.Opposite()
		}

		if ds.IsTripleQuoted() && ds.QuoteStyle() == expected {
			continue
		}

		quotes := tripleQuotes(expected)
		builder := ctx.Diagnostic(r.ID(), ds, ds, "Use triple "+quoteName(expected)+" quotes "+quotes).
			WithSuggestion("Rewrite the docstring with " + quotes)

		if !body.HasSuffix(expected.String()) {
			builder.WithEdit(fix.Replacement(ds.Start(), ds.End(),
				ds.PrefixStr()+quotes+body.String()+quotes))
		}

		diags = append(diags, builder.Build())
	}

	return diags, nil
}

func tripleQuotes(q pysrc.Quote) string {
	return strings.Repeat(q.String(), 3)
}

func quoteName(q pysrc.Quote) string {
	if q == pysrc.QuoteSingle {
		return "single"
	}
	return "double"
}

// EscapeSequenceRule flags backslashes in docstrings that are not raw strings.
type EscapeSequenceRule struct {
	lint.BaseRule
}

// NewEscapeSequenceRule creates a new escape-sequence-in-docstring rule.
func NewEscapeSequenceRule() *EscapeSequenceRule {
	return &EscapeSequenceRule{
		BaseRule: lint.NewBaseRule(
			"D301",
			"escape-sequence-in-docstring",
			`Use r""" if any backslashes in a docstring`,
			[]string{"quotes", "escapes"},
			true,
		),
	}
}

// Apply checks for escape sequences other than line continuations and
// Unicode escapes (\u, \U, \N).
func (r *EscapeSequenceRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for _, ds := range ctx.Docstrings() {
		if ctx.Cancelled() {
			return diags, errCancelled(ctx)
		}
		if ds.IsRawString() || !hasEscapeSequence(ds.Body().String()) {
			continue
		}

		builder := ctx.Diagnostic(r.ID(), ds, ds, `Use r""" if any backslashes in a docstring`).
			WithSuggestion("Make the docstring a raw string")

		// u and r cannot be combined.
		if !ds.IsUString() {
			builder.WithEdit(fix.Insertion(ds.Start(), "r"))
		}

		diags = append(diags, builder.Build())
	}

	return diags, nil
}

// hasEscapeSequence reports whether body contains a backslash escape that a
// raw string would change.
func hasEscapeSequence(body string) bool {
	for offset := 0; ; {
		idx := strings.IndexByte(body[offset:], '\\')
		if idx < 0 {
			return false
		}
		escaped := offset + idx + 1
		if escaped >= len(body) {
			return false
		}
		switch body[escaped] {
		case '\r', '\n', 'u', 'U', 'N':
			offset = escaped + 1
		default:
			return true
		}
	}
}

// UnicodePrefixRule flags the redundant u prefix on docstrings.
type UnicodePrefixRule struct {
	lint.BaseRule
}

// NewUnicodePrefixRule creates a new unicode-kind-prefix rule.
func NewUnicodePrefixRule() *UnicodePrefixRule {
	return &UnicodePrefixRule{
		BaseRule: lint.NewBaseRule(
			"UP025",
			"unicode-kind-prefix",
			"Remove unicode prefix from docstrings",
			[]string{"quotes", "pyupgrade"},
			true,
		),
	}
}

// Apply checks for u/U prefixes.
func (r *UnicodePrefixRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for _, ds := range ctx.Docstrings() {
		if ctx.Cancelled() {
			return diags, errCancelled(ctx)
		}
		if !ds.IsUString() {
			continue
		}

		prefix := pysrc.NewTextRange(ds.Start(), ds.Start()+len(ds.PrefixStr()))
		diags = append(diags, ctx.Diagnostic(r.ID(), ds, prefix,
			"Remove unicode prefix "+ds.PrefixStr()).
			WithSuggestion("Strings are unicode by default").
			WithEdit(fix.Deletion(prefix.Start, prefix.End)).
			Build())
	}

	return diags, nil
}
