package rules

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	"github.com/yaklabco/gopydoclint/pkg/parser/treesitter"
)

// update is a flag to update golden files instead of comparing.
// Usage: go test -update ./pkg/lint/rules/... -run TestGolden.
var update = flag.Bool("update", false, "update golden files")

// testdataDir returns the absolute path to the testdata directory.
func testdataDir(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get test file path")
	}

	return filepath.Join(filepath.Dir(filename), "testdata")
}

// TestGoldenPerRule runs each testdata/<RULE_ID> case with only that rule.
func TestGoldenPerRule(t *testing.T) {
	cases := discoverTestCases(t, testdataDir(t))

	var perRule []GoldenTestCase
	for _, tc := range cases {
		if tc.RuleID != "" {
			perRule = append(perRule, tc)
		}
	}
	if len(perRule) == 0 {
		t.Skip("No per-rule golden test cases found.")
	}

	for _, tc := range perRule {
		t.Run(tc.Name, func(t *testing.T) {
			input, err := os.ReadFile(tc.InputPath)
			require.NoError(t, err)

			rule, ok := lint.DefaultRegistry.GetByID(tc.RuleID)
			require.True(t, ok, "rule %s is not registered", tc.RuleID)

			diags, fixed := lintSource(t, rule, string(input), nil)
			assert.NotEmpty(t, diags, "golden inputs should trigger the rule")

			compareWithGolden(t, []byte(fixed), tc.GoldenPath, *update)
		})
	}
}

// TestGoldenRealWorld runs every default rule through the fix pipeline.
func TestGoldenRealWorld(t *testing.T) {
	cases := discoverTestCases(t, testdataDir(t))

	var realWorld []GoldenTestCase
	for _, tc := range cases {
		if tc.IsRealWorld {
			realWorld = append(realWorld, tc)
		}
	}
	if len(realWorld) == 0 {
		t.Skip("No real-world golden test cases found.")
	}

	for _, tc := range realWorld {
		t.Run(tc.Name, func(t *testing.T) {
			fixed := runPipeline(t, tc.InputPath)
			compareWithGolden(t, fixed, tc.GoldenPath, *update)
		})
	}
}

// TestGoldenRoundTrip verifies that fixed output is stable: linting a golden
// file reports nothing fixable.
func TestGoldenRoundTrip(t *testing.T) {
	cases := discoverTestCases(t, testdataDir(t))
	if len(cases) == 0 {
		t.Skip("No golden test cases found for round-trip testing.")
	}

	for _, tc := range cases {
		t.Run(tc.Name+"_roundtrip", func(t *testing.T) {
			golden := loadGoldenFile(t, tc.GoldenPath)
			if golden == nil {
				t.Skip("no golden file")
			}

			cfg := config.NewConfig()
			cfg.Fix = true

			engine := lint.NewEngine(treesitter.New(), lint.DefaultRegistry)
			result, err := engine.LintFile(context.Background(), tc.GoldenPath, golden, cfg)
			require.NoError(t, err)

			for _, diag := range result.Diagnostics {
				if tc.RuleID != "" && diag.RuleID != tc.RuleID {
					continue
				}
				assert.False(t, diag.HasFix(), "fixable %s remains at %d:%d", diag.RuleID, diag.StartLine, diag.StartColumn)
			}
		})
	}
}

// runPipeline lints and fixes the file in memory with the default rules.
func runPipeline(t *testing.T, path string) []byte {
	t.Helper()

	input, err := os.ReadFile(path)
	require.NoError(t, err)

	cfg := config.NewConfig()
	cfg.Fix = true

	pipeline := lint.NewPipeline(lint.NewEngine(treesitter.New(), lint.DefaultRegistry))
	opts := lint.DefaultPipelineOptions()
	opts.Fix = true

	result, err := pipeline.ProcessContent(context.Background(), filepath.Base(path), input, cfg, opts)
	require.NoError(t, err)
	require.False(t, result.Skipped, result.SkipReason)

	if !result.Modified {
		return input
	}
	return result.ModifiedContent
}

// TestPipelineFixGatedByConfig checks that the pipeline only rewrites content
// when the configuration enables fixing, not just the pipeline options.
func TestPipelineFixGatedByConfig(t *testing.T) {
	input, err := os.ReadFile(filepath.Join(testdataDir(t), "real-world", "service.input.py"))
	require.NoError(t, err)

	pipeline := lint.NewPipeline(lint.NewEngine(treesitter.New(), lint.DefaultRegistry))
	opts := lint.DefaultPipelineOptions()
	opts.Fix = true

	result, err := pipeline.ProcessContent(context.Background(), "service.py", input, config.NewConfig(), opts)
	require.NoError(t, err)
	assert.False(t, result.Modified, "fixes applied without cfg.Fix")
	assert.NotEmpty(t, result.FileResult.Diagnostics)

	cfg := config.NewConfig()
	cfg.Fix = true

	result, err = pipeline.ProcessContent(context.Background(), "service.py", input, cfg, opts)
	require.NoError(t, err)
	assert.True(t, result.Modified)
	assert.Positive(t, result.TotalEditsApplied)
	assert.NotEqual(t, string(input), string(result.ModifiedContent))
}
