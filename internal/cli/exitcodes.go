package cli

import (
	"errors"

	"github.com/yaklabco/gopydoclint/internal/configloader"
	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	"github.com/yaklabco/gopydoclint/pkg/runner"
)

// Exit codes for gopydoclint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint completed but found warnings (when strict mode).
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrLintIssuesFound is returned when lint issues are found.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrInvalidUsage marks bad flag values and arguments.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrFilesFailed is returned when some files could not be processed.
	ErrFilesFailed = errors.New("some files could not be processed")
)

// issuesError carries the exit code of a lint run that found issues.
type issuesError struct {
	code int
}

func (e *issuesError) Error() string { return ErrLintIssuesFound.Error() }

func (e *issuesError) Is(target error) bool { return target == ErrLintIssuesFound }

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result.HasFailures() {
		return ExitLintErrors
	}
	if strict && result.Count(config.SeverityWarning) > 0 {
		return ExitLintWarnings
	}

	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var issues *issuesError
	var validation *configloader.ValidationError
	switch {
	case errors.As(err, &issues):
		return issues.code
	case errors.Is(err, ErrLintIssuesFound):
		return ExitLintErrors
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &validation), errors.Is(err, errConfigLoad):
		return ExitConfigError
	case errors.Is(err, ErrFilesFailed), lint.IsPipelineError(err):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
