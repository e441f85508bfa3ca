package reporter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	"github.com/yaklabco/gopydoclint/pkg/reporter"
	"github.com/yaklabco/gopydoclint/pkg/runner"
)

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	empty := periodDiagnostic()
	empty.RuleID, empty.RuleName, empty.Severity, empty.FixEdits = "D419", "empty-docstring", config.SeverityError, nil
	result.Files[0].Result.Diagnostics = append(result.Files[0].Result.Diagnostics, empty)

	out, count := report(t, reporter.Options{
		Format:     reporter.FormatSummary,
		RuleFormat: config.RuleFormatCombined,
		WorkingDir: workDir,
	}, result)
	assert.Equal(t, 2, count)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "Rules", lines[0])
	assert.Contains(t, lines[2], "Rule")
	assert.Contains(t, lines[2], "Fixable")
	// Equal counts fall back to rule ID order.
	assert.True(t, strings.HasPrefix(lines[4], "D400/missing-trailing-period "), lines[4])
	assert.True(t, strings.HasSuffix(lines[4], "✓"), lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "D419/empty-docstring "), lines[5])

	assert.Contains(t, out, "Files\n")
	assert.Contains(t, out, "pkg/mod.py ")
	assert.Contains(t, out, "Total: 2 issues (1 error, 1 warning) in 1 definition, 1 file\n")
}

func TestSummaryReporter_Sorting(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{{
		Path: modulePath,
		Result: &lint.PipelineResult{FileResult: &lint.FileResult{Diagnostics: []lint.Diagnostic{
			{RuleID: "D300", Severity: config.SeverityWarning},
			{RuleID: "D300", Severity: config.SeverityWarning},
			{RuleID: "D419", Severity: config.SeverityError},
		}}},
	}}}

	byCount, _ := report(t, reporter.Options{Format: reporter.FormatSummary, RuleFormat: config.RuleFormatID}, result)
	assert.Less(t, strings.Index(byCount, "D300"), strings.Index(byCount, "D419"))

	bySeverity, _ := report(t, reporter.Options{Format: reporter.FormatSummary, RuleFormat: config.RuleFormatID, SortBy: "severity"}, result)
	assert.Less(t, strings.Index(bySeverity, "D419"), strings.Index(bySeverity, "D300"))
}

func TestSummaryReporter_NoIssues(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatSummary}, &runner.Result{})
	assert.Equal(t, 0, count)
	assert.Equal(t, "No issues found\n", out)
}
