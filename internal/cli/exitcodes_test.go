package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gopydoclint/internal/configloader"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	"github.com/yaklabco/gopydoclint/pkg/runner"
)

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	withCounts := func(errs, warnings int) *runner.Result {
		return &runner.Result{Stats: runner.Stats{
			DiagnosticsBySeverity: map[string]int{"error": errs, "warning": warnings},
		}}
	}

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{"nil result", nil, false, ExitSuccess},
		{"clean", withCounts(0, 0), true, ExitSuccess},
		{"errors", withCounts(2, 0), false, ExitLintErrors},
		{"warnings", withCounts(0, 3), false, ExitSuccess},
		{"warnings strict", withCounts(0, 3), true, ExitLintWarnings},
		{"errors win over strict warnings", withCounts(1, 3), true, ExitLintErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCodeFromResult(tt.result, tt.strict))
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"issues", &issuesError{code: ExitLintWarnings}, ExitLintWarnings},
		{"bare issues sentinel", ErrLintIssuesFound, ExitLintErrors},
		{"usage", fmt.Errorf("%w: bad flag", ErrInvalidUsage), ExitInvalidUsage},
		{"validation", errors.Join(errConfigLoad, &configloader.ValidationError{Field: "convention"}), ExitConfigError},
		{"files failed", ErrFilesFailed, ExitIOError},
		{"pipeline write failure", fmt.Errorf("%w: disk full", lint.ErrWriteFailure), ExitIOError},
		{"pipeline missing file", fmt.Errorf("%w: mod.py", lint.ErrFileNotFound), ExitIOError},
		{"other", errors.New("boom"), ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestIssuesErrorMatchesSentinel(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("run: %w", &issuesError{code: ExitLintErrors})
	assert.ErrorIs(t, err, ErrLintIssuesFound)
	assert.Equal(t, ExitLintErrors, ExitCode(err))
}
