package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/fix"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	"github.com/yaklabco/gopydoclint/pkg/parser/treesitter"
)

// lintSource runs a single rule over src and returns its diagnostics along
// with src after applying every non-conflicting fix.
func lintSource(t *testing.T, rule lint.Rule, src string, options map[string]any) ([]lint.Diagnostic, string) {
	t.Helper()

	file, err := treesitter.New().Parse(context.Background(), "mod.py", []byte(src))
	require.NoError(t, err)

	ruleCtx := lint.NewRuleContext(context.Background(), file, config.NewConfig(), &config.RuleConfig{Options: options})
	ruleCtx.Registry = lint.DefaultRegistry

	diags, err := rule.Apply(ruleCtx)
	require.NoError(t, err, "rule %s failed to apply", rule.ID())

	var edits []fix.TextEdit
	for _, diag := range diags {
		edits = append(edits, diag.FixEdits...)
	}
	accepted, _, _, err := fix.PrepareEditsFiltered(edits, len(src))
	require.NoError(t, err)

	return diags, string(fix.ApplyEdits([]byte(src), accepted))
}

// ruleCase is one table entry for a rule test.
type ruleCase struct {
	name    string
	src     string
	options map[string]any
	// diags is the number of expected diagnostics.
	diags int
	// fixed is the expected source after fixing; empty means unchanged.
	fixed string
	// line and column of the first diagnostic, when non-zero.
	line, column int
}

// runRuleCases runs each case against rule.
func runRuleCases(t *testing.T, rule lint.Rule, cases []ruleCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diags, fixed := lintSource(t, rule, tc.src, tc.options)
			require.Len(t, diags, tc.diags)

			for _, diag := range diags {
				require.Equal(t, rule.ID(), diag.RuleID)
				require.Equal(t, rule.Name(), diag.RuleName)
				require.NotNil(t, diag.Definition)
			}

			if tc.line != 0 {
				require.Equal(t, tc.line, diags[0].StartLine, "line")
				require.Equal(t, tc.column, diags[0].StartColumn, "column")
			}

			want := tc.fixed
			if want == "" {
				want = tc.src
			}
			require.Equal(t, want, fixed)
		})
	}
}
