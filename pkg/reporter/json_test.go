package reporter_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopydoclint/pkg/reporter"
)

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatJSON, WorkingDir: workDir}, sampleResult())
	assert.Equal(t, 1, count)

	var doc reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "1.0.0", doc.Version)
	require.Len(t, doc.Files, 3)

	mod := doc.Files[0]
	assert.Equal(t, "pkg/mod.py", mod.Path)
	require.Len(t, mod.Diagnostics, 1)
	diag := mod.Diagnostics[0]
	assert.Equal(t, "D400", diag.RuleID)
	assert.Equal(t, "run", diag.Definition)
	assert.Equal(t, 2, diag.StartLine)
	assert.True(t, diag.Fixable)
	assert.Equal(t, []reporter.JSONFix{{StartOffset: closeQuotes, EndOffset: closeQuotes, NewText: "."}}, diag.Fixes)

	assert.Empty(t, doc.Files[1].Diagnostics)
	assert.NotNil(t, doc.Files[1].Diagnostics, "clean files encode an empty list")
	assert.Equal(t, "permission denied", doc.Files[2].Error)

	assert.Equal(t, reporter.JSONSummary{
		FilesChecked:    3,
		FilesWithIssues: 1,
		FilesErrored:    1,
		TotalIssues:     1,
		Fixable:         1,
		BySeverity:      map[string]int{"warning": 1},
	}, doc.Summary)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatJSON, Compact: true}, nil)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, `"files":[]`)
}
