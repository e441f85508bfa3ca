package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/gopydoclint/pkg/runner"
)

const summaryDividerWidth = 40

// plural returns "n word" with an "s" appended unless n is one.
func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 issues (2 errors, 3 warnings) in 2 files, 4 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%s checked%s)", plural(stats.FilesProcessed, "file"), formatDuration(stats.Duration)))
		if stats.DiagnosticsFixed > 0 {
			msg += ", " + s.Success.Render(fmt.Sprintf("%d fixed in %s", stats.DiagnosticsFixed, plural(stats.FilesModified, "file")))
		}
		return msg + "\n"
	}

	var severityParts []string
	if errs := stats.DiagnosticsBySeverity[string(severityError)]; errs > 0 {
		severityParts = append(severityParts, s.Error.Render(plural(errs, "error")))
	}
	if warnings := stats.DiagnosticsBySeverity[string(severityWarning)]; warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(plural(warnings, "warning")))
	}
	if infos := stats.DiagnosticsBySeverity[string(severityInfo)]; infos > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", infos)))
	}

	head := plural(stats.DiagnosticsTotal, "issue")
	if len(severityParts) > 0 {
		head += " (" + strings.Join(severityParts, ", ") + ")"
	}

	parts := []string{head + " in " + plural(stats.FilesWithIssues, "file")}
	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}
	if stats.DiagnosticsFixed > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %s", stats.DiagnosticsFixed, plural(stats.FilesModified, "file"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a multi-line block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label, value string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", value)
	}

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row("Files checked", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesModified > 0 {
		row("Files modified", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	}
	if stats.FilesErrored > 0 {
		row("Files errored", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	builder.WriteString("\n")

	row("Total issues", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))
	if errs := stats.DiagnosticsBySeverity[string(severityError)]; errs > 0 {
		row("  Errors", s.Error.Render(strconv.Itoa(errs)))
	}
	if warnings := stats.DiagnosticsBySeverity[string(severityWarning)]; warnings > 0 {
		row("  Warnings", s.Warning.Render(strconv.Itoa(warnings)))
	}
	if infos := stats.DiagnosticsBySeverity[string(severityInfo)]; infos > 0 {
		row("  Info", s.Info.Render(strconv.Itoa(infos)))
	}
	if stats.Duration > 0 {
		row("Duration", s.Dim.Render(stats.Duration.Round(time.Millisecond).String()))
	}
	builder.WriteString("\n")

	switch {
	case stats.DiagnosticsBySeverity[string(severityError)] > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case stats.DiagnosticsBySeverity[string(severityWarning)] > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// formatDuration renders d as " in 1.234s", or "" for a zero duration.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return " in " + d.Round(time.Millisecond).String()
}
