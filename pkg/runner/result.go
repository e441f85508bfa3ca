package runner

import (
	"time"

	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/lint"
)

// FileOutcome is what happened to one discovered Python file.
// Exactly one of Result and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// FilesSkipped counts files whose fixes were abandoned, for example
	// because the file changed on disk while it was being linted.
	FilesSkipped int

	FilesWithIssues int
	FilesModified   int

	// FilesWithSyntaxErrors counts files tree-sitter had to recover from.
	// They are still linted.
	FilesWithSyntaxErrors int

	// DocstringsChecked is the number of docstring literals seen, one per
	// documented module, class or function.
	DocstringsChecked int

	DiagnosticsTotal   int
	DiagnosticsFixable int
	DiagnosticsFixed   int

	// DiagnosticsBySeverity and DiagnosticsByRule are keyed by severity
	// name and rule ID.
	DiagnosticsBySeverity map[string]int
	DiagnosticsByRule     map[string]int

	Duration time.Duration
}

// Result is the outcome of Runner.Run, with Files sorted by path.
type Result struct {
	Files  []FileOutcome
	Stats  Stats
	Errors []error
}

// HasFailures reports whether any error-severity diagnostic was produced.
func (r *Result) HasFailures() bool {
	return r.Count(config.SeverityError) > 0
}

// HasIssues reports whether any diagnostic was produced.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// Count returns the number of diagnostics with the given severity.
func (r *Result) Count(severity config.Severity) int {
	if r == nil {
		return 0
	}
	return r.Stats.DiagnosticsBySeverity[string(severity)]
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
		DiagnosticsByRule:     make(map[string]int),
	}
}

// accumulate records outcome in r.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
	case outcome.Result != nil:
		r.Stats.FilesProcessed++
		r.Stats.add(outcome.Result)
	}
}

func (s *Stats) add(pr *lint.PipelineResult) {
	if pr.Skipped {
		s.FilesSkipped++
	}
	if pr.Written {
		s.FilesModified++
		s.DiagnosticsFixed += pr.TotalEditsApplied
	}

	fr := pr.FileResult
	if fr == nil {
		return
	}

	if file := fr.File; file != nil {
		if file.HasSyntaxErrors {
			s.FilesWithSyntaxErrors++
		}
		for _, def := range file.Definitions {
			if def.HasDocstring() {
				s.DocstringsChecked++
			}
		}
	}

	if !fr.HasIssues() {
		return
	}
	s.FilesWithIssues++
	s.DiagnosticsTotal += fr.IssueCount()
	s.DiagnosticsFixable += pr.FixableCount()
	for _, diag := range fr.Diagnostics {
		severity := diag.Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		s.DiagnosticsBySeverity[string(severity)]++
		s.DiagnosticsByRule[diag.RuleID]++
	}
}
