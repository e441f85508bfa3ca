package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/gopydoclint/internal/ui/pretty"
	"github.com/yaklabco/gopydoclint/pkg/analysis"
)

// Column widths of the summary tables.
const (
	tableWidth    = 90
	ruleColWidth  = 36
	fileColWidth  = 60
	numColWidth   = 7
	warnColWidth  = 9
	fixColWidth   = 8
	maxRuleLength = 34
	maxPathLength = 58
)

// padRight pads s to width display cells. Pad before styling.
func padRight(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// padLeft pads s on the left to width display cells.
func padLeft(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// truncateLeft shortens s to maxWidth cells, replacing its start with an ellipsis.
func truncateLeft(s string, maxWidth int) string {
	if uniseg.StringWidth(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && uniseg.StringWidth(string(runes)) > maxWidth-1 {
		runes = runes[1:]
	}
	return "…" + string(runes)
}

// truncateRight shortens s to maxWidth cells, replacing its end with an ellipsis.
func truncateRight(s string, maxWidth int) string {
	if uniseg.StringWidth(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && uniseg.StringWidth(string(runes)) > maxWidth-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// SummaryRenderer draws per-rule and per-file count tables.
type SummaryRenderer struct {
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if !report.Totals.HasIssues() {
		_, err := fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return err
	}

	var buf strings.Builder
	r.renderRuleTable(&buf, report.ByRule)
	buf.WriteString("\n")
	r.renderFileTable(&buf, report.ByFile)
	buf.WriteString("\n")
	r.renderTotals(&buf, report.Totals)

	_, err := io.WriteString(r.out, buf.String())
	return err
}

func (r *SummaryRenderer) separator(buf *strings.Builder) {
	buf.WriteString(r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)) + "\n")
}

// rowStyle picks the emphasis for a row's first column.
func (r *SummaryRenderer) rowStyle(counts analysis.Counts, cell string) string {
	switch {
	case counts.Errors > 0:
		return r.styles.TableErrorRow.Render(cell)
	case counts.Warnings > 0:
		return r.styles.TableWarnRow.Render(cell)
	default:
		return cell
	}
}

func (r *SummaryRenderer) renderRuleTable(buf *strings.Builder, rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	buf.WriteString(r.styles.Bold.Render("Rules") + "\n")
	r.separator(buf)
	fmt.Fprintf(buf, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Rule", ruleColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Fixable", fixColWidth)),
	)
	r.separator(buf)

	for _, rule := range rules {
		label := rule.Label
		if label == "" {
			label = rule.RuleID
		}

		fixable := padLeft("", fixColWidth)
		if rule.Fixable {
			fixable = r.styles.Success.Render(padLeft("✓", fixColWidth))
		}

		fmt.Fprintf(buf, "%s %s %s %s %s\n",
			r.rowStyle(rule.Counts, padRight(truncateRight(label, maxRuleLength), ruleColWidth)),
			padLeft(strconv.Itoa(rule.Issues), numColWidth),
			padLeft(strconv.Itoa(rule.Errors), numColWidth),
			padLeft(strconv.Itoa(rule.Warnings), warnColWidth),
			fixable,
		)
	}
}

func (r *SummaryRenderer) renderFileTable(buf *strings.Builder, files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	buf.WriteString(r.styles.Bold.Render("Files") + "\n")
	r.separator(buf)
	fmt.Fprintf(buf, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	)
	r.separator(buf)

	for _, file := range files {
		fmt.Fprintf(buf, "%s %s %s %s\n",
			r.rowStyle(file.Counts, padRight(truncateLeft(file.Path, maxPathLength), fileColWidth)),
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Errors), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(buf *strings.Builder, totals analysis.Totals) {
	head := fmt.Sprintf("%d %s", totals.Issues, pluralWord(totals.Issues, "issue"))

	var severities []string
	if totals.HasErrors() {
		severities = append(severities, r.styles.Error.Render(fmt.Sprintf("%d %s", totals.Errors, pluralWord(totals.Errors, "error"))))
	}
	if totals.Warnings > 0 {
		severities = append(severities, r.styles.Warning.Render(fmt.Sprintf("%d %s", totals.Warnings, pluralWord(totals.Warnings, "warning"))))
	}
	if len(severities) > 0 {
		head += " (" + strings.Join(severities, ", ") + ")"
	}

	fmt.Fprintf(buf, "%s%s in %d %s, %d %s\n",
		r.styles.Bold.Render("Total: "),
		head,
		totals.Definitions, pluralWord(totals.Definitions, "definition"),
		totals.FilesWithIssues, pluralWord(totals.FilesWithIssues, "file"),
	)
}
