package lint_test

import (
	"context"
	"strings"

	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/docstring"
	"github.com/yaklabco/gopydoclint/pkg/fix"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

// mockParser implements lint.Parser for testing.
//
// By default it recognizes a single module docstring: content that starts
// with `"""` is treated as a literal up to the next `"""`.
type mockParser struct {
	parseFunc func(ctx context.Context, path string, content []byte) (*pysrc.File, error)
}

func (p *mockParser) Parse(ctx context.Context, path string, content []byte) (*pysrc.File, error) {
	if p.parseFunc != nil {
		return p.parseFunc(ctx, path, content)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := string(content)
	file := pysrc.NewFile(path, text)
	module := &pysrc.Definition{Kind: pysrc.KindModule, Range: pysrc.NewTextRange(0, len(text))}

	if strings.HasPrefix(text, `"""`) {
		if idx := strings.Index(text[3:], `"""`); idx >= 0 {
			literal, err := pysrc.NewStringLiteral(text, pysrc.NewTextRange(0, idx+6))
			if err != nil {
				return nil, err
			}
			module.Docstring = literal
		}
	}

	file.Definitions = []*pysrc.Definition{module}
	return file, nil
}

// diagnosticRule is a test rule that returns fixed diagnostics.
type diagnosticRule struct {
	lint.BaseRule
	diags []lint.Diagnostic
	err   error
}

func newDiagnosticRule(id string, diags []lint.Diagnostic, err error) *diagnosticRule {
	return &diagnosticRule{
		BaseRule: lint.NewBaseRule(id, id+"-name", "", nil, false),
		diags:    diags,
		err:      err,
	}
}

func (r *diagnosticRule) Apply(_ *lint.RuleContext) ([]lint.Diagnostic, error) {
	// Copy so the engine's severity updates don't leak between runs.
	return append([]lint.Diagnostic(nil), r.diags...), r.err
}

// periodRule flags docstrings whose body does not end in a period and
// inserts one before the closing quotes.
type periodRule struct {
	lint.BaseRule
}

func newPeriodRule() *periodRule {
	return &periodRule{
		BaseRule: lint.NewBaseRule("T400", "test-period", "", []string{"test"}, true),
	}
}

func (r *periodRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, ds := range ctx.Docstrings() {
		body := ds.Body()
		if strings.HasSuffix(strings.TrimSpace(body.String()), ".") {
			continue
		}
		diags = append(diags, ctx.Diagnostic(r.ID(), ds, ds, "missing period").
			WithEdit(fix.Insertion(body.Range().End, ".")).
			Build())
	}
	return diags, nil
}

// docstringCounter records how many docstrings each rule invocation saw.
type docstringCounter struct {
	lint.BaseRule
	seen []*docstring.Docstring
}

func (r *docstringCounter) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	r.seen = ctx.Docstrings()
	return nil, nil
}

func fixConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Fix = true
	return cfg
}
