package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gopydoclint/pkg/docstring"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

// bodyLine is one line of a docstring body with the absolute offset of its
// first byte.
type bodyLine struct {
	offset int
	text   string
}

// end returns the offset just past the line's text.
func (l bodyLine) end() int {
	return l.offset + len(l.text)
}

// isBlank reports whether the line is empty or only whitespace.
func (l bodyLine) isBlank() bool {
	return strings.TrimSpace(l.text) == ""
}

// bodyLines collects the lines of a docstring body.
func bodyLines(ds *docstring.Docstring) []bodyLine {
	body := ds.Body()
	lines := make([]bodyLine, 0, body.LineCount())
	for offset, text := range body.Lines() {
		lines = append(lines, bodyLine{offset: offset, text: text})
	}
	return lines
}

// leadingSpace returns the run of spaces and tabs that starts s.
func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// summaryLine returns the last line of the docstring's first paragraph,
// or false if the body is blank.
func summaryLine(lines []bodyLine) (bodyLine, bool) {
	var (
		summary bodyLine
		found   bool
	)
	for _, line := range lines {
		if line.isBlank() {
			if found {
				break
			}
			continue
		}
		summary, found = line, true
	}
	return summary, found
}

// lineRange returns the range of the line's text without surrounding whitespace.
func lineRange(line bodyLine) pysrc.TextRange {
	start := line.offset + len(leadingSpace(line.text))
	end := line.offset + len(strings.TrimRight(line.text, " \t"))
	return pysrc.NewTextRange(start, max(start, end))
}

// errCancelled wraps the context error for a rule that stopped early.
func errCancelled(ctx *lint.RuleContext) error {
	return fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
}
