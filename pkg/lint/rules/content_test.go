package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyDocstringRule(t *testing.T) {
	runRuleCases(t, NewEmptyDocstringRule(), []ruleCase{
		{
			name:   "blank body",
			src:    "def f():\n    \"\"\"   \"\"\"\n",
			diags:  1,
			line:   2,
			column: 5,
		},
		{
			name:  "empty module docstring",
			src:   "\"\"\n",
			diags: 1,
		},
		{
			name: "summary present",
			src:  "def f():\n    \"\"\"Summary.\"\"\"\n",
		},
		{
			name: "no docstring",
			src:  "def f():\n    return 1\n",
		},
	})
}

func TestUnnecessaryMultilineRule(t *testing.T) {
	runRuleCases(t, NewUnnecessaryMultilineRule(), []ruleCase{
		{
			name:   "single sentence over three lines",
			src:    "def f():\n    \"\"\"\n    Return the answer.\n    \"\"\"\n",
			diags:  1,
			fixed:  "def f():\n    \"\"\"Return the answer.\"\"\"\n",
			line:   2,
			column: 5,
		},
		{
			name: "summary and description",
			src:  "def f():\n    \"\"\"Summary.\n\n    Details.\n    \"\"\"\n",
		},
		{
			name: "already one line",
			src:  "def f():\n    \"\"\"Summary.\"\"\"\n",
		},
		{
			name:  "text ending in a quote is not collapsed",
			src:   "def f():\n    \"\"\"\n    Say \"hi\"\n    \"\"\"\n",
			diags: 1,
		},
	})
}

func TestMissingTrailingPeriodRule_IgnoreDefinitions(t *testing.T) {
	src := "\"\"\"Module summary\"\"\"\n\n" +
		"def test_load():\n    \"\"\"Load it\"\"\"\n\n" +
		"class Config:\n    \"\"\"Settings\"\"\"\n\n" +
		"    def reload(self):\n        \"\"\"Reload it\"\"\"\n"

	tests := []struct {
		name     string
		patterns any
		want     []string
	}{
		{
			name: "no option",
			want: []string{"<module>", "test_load", "Config", "Config.reload"},
		},
		{
			name:     "yaml list",
			patterns: []any{"test_*", "Config.*"},
			want:     []string{"<module>", "Config"},
		},
		{
			name:     "module docstring",
			patterns: []string{"<module>"},
			want:     []string{"test_load", "Config", "Config.reload"},
		},
		{
			name:     "malformed pattern is ignored",
			patterns: []string{"[", "Config"},
			want:     []string{"<module>", "test_load", "Config.reload"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var options map[string]any
			if tc.patterns != nil {
				options = map[string]any{"ignore_definitions": tc.patterns}
			}

			diags, _ := lintSource(t, NewMissingTrailingPeriodRule(), src, options)

			var got []string
			for _, diag := range diags {
				got = append(got, diag.Definition)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUnnecessaryMultilineRule_NoFixNextToQuote(t *testing.T) {
	diags, _ := lintSource(t, NewUnnecessaryMultilineRule(), "def f():\n    \"\"\"\n    Say \"hi\"\n    \"\"\"\n", nil)
	assert.Len(t, diags, 1)
	assert.False(t, diags[0].HasFix())
}

func TestMissingTrailingPeriodRule(t *testing.T) {
	runRuleCases(t, NewMissingTrailingPeriodRule(), []ruleCase{
		{
			name:   "missing period",
			src:    "def f():\n    \"\"\"Return the answer\"\"\"\n",
			diags:  1,
			fixed:  "def f():\n    \"\"\"Return the answer.\"\"\"\n",
			line:   2,
			column: 8,
		},
		{
			name:  "trailing whitespace before closer",
			src:   "def f():\n    \"\"\"Return the answer  \"\"\"\n",
			diags: 1,
			fixed: "def f():\n    \"\"\"Return the answer.  \"\"\"\n",
		},
		{
			name: "wrapped summary ending in period",
			src:  "def f():\n    \"\"\"Return the answer\n    to everything.\n\n    Details\n    \"\"\"\n",
		},
		{
			name:   "wrapped summary without period",
			src:    "def f():\n    \"\"\"Return the answer\n    to everything\n\n    Details.\n    \"\"\"\n",
			diags:  1,
			fixed:  "def f():\n    \"\"\"Return the answer\n    to everything.\n\n    Details.\n    \"\"\"\n",
			line:   3,
			column: 5,
		},
		{
			name:  "question mark is reported but not fixed",
			src:   "def f():\n    \"\"\"Is it done?\"\"\"\n",
			diags: 1,
		},
		{
			name: "blank docstring is left to D419",
			src:  "def f():\n    \"\"\"  \"\"\"\n",
		},
	})
}
