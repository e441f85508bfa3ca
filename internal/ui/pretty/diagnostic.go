package pretty

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/lint"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

// FormatDiagnostic formats a single diagnostic for terminal output.
// The source line is shown with a caret when showContext is set and
// sourceLine is non-empty.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, showContext bool, sourceLine string, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)
	ruleIdentifier := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	)
	if diag.Definition != "" {
		builder.WriteString("  " + s.Definition.Render("in "+diag.Definition))
	}
	builder.WriteString("\n")

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.StartLine, diag.StartColumn))
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext renders line with a gutter and a caret under the
// 1-based byte column. A column of zero omits the caret.
func (s *Styles) FormatSourceContext(line string, lineNum, column int) string {
	var builder strings.Builder

	gutter := fmt.Sprintf("%d | ", lineNum)
	builder.WriteString(contextIndent + s.Gutter.Render(gutter) + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		blank := strings.Repeat(" ", len(gutter)-2) + "| "
		builder.WriteString(contextIndent + s.Gutter.Render(blank) + CaretPadding(line, column) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// CaretPadding returns the whitespace that puts a caret under the 1-based
// byte column of line. Tabs are kept so the terminal expands them the same
// way on both rows, and wide graphemes count by display width.
func CaretPadding(line string, column int) string {
	prefix := line[:min(max(column-1, 0), len(line))]

	var pad strings.Builder
	graphemes := uniseg.NewGraphemes(prefix)
	for graphemes.Next() {
		cluster := graphemes.Str()
		if cluster == "\t" {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", uniseg.StringWidth(cluster)))
	}
	return pad.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

const (
	severityError   = config.SeverityError
	severityWarning = config.SeverityWarning
	severityInfo    = config.SeverityInfo
)
