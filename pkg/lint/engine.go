package lint

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/gopydoclint/internal/logging"
	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/fix"
	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// File is the parsed source.
	File *pysrc.File

	// Diagnostics contains all issues found.
	Diagnostics []Diagnostic

	// Edits contains validated, sorted edits for auto-fix.
	// Empty if no fixes are available or --fix was not requested.
	Edits []fix.TextEdit

	// SkippedEdits contains edits that were skipped due to conflicts.
	// When edits overlap, the one starting earlier wins.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true if any edits were skipped due to conflicts.
	EditConflicts bool

	// RuleErrors contains any errors from rule execution.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes returns true if any fixes are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.HasFix() {
			count++
		}
	}
	return count
}

// Engine parses Python files and runs the resolved rules over their
// docstrings.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{Parser: parser, Registry: registry}
}

// LintFile parses content and applies every enabled rule to it.
//
// Diagnostics come back ordered by position, then rule ID. A failing rule is
// recorded in RuleErrors and does not stop the others. Fix edits are only
// collected for rules whose auto-fix is on; overlapping edits are resolved
// in favour of the one that starts first.
func (e *Engine) LintFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	file, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)
	docstrings := CollectDocstrings(file)
	logger.Debug("parsed file",
		logging.FieldDefinitions, len(file.Definitions),
		logging.FieldDocstrings, len(docstrings))
	if file.HasSyntaxErrors {
		logger.Debug("parser recovered from syntax errors")
	}

	result := &FileResult{
		File:       file,
		RuleErrors: make(map[string]error),
	}

	var edits []fix.TextEdit
	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		ruleCtx := NewRuleContext(ctx, file, cfg, rr.Config)
		ruleCtx.Registry = e.Registry
		ruleCtx.docstrings = docstrings

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			logger.Debug("rule failed", logging.FieldRule, rr.Rule.ID(), logging.FieldError, err)
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			d := &diags[i]
			d.Severity = rr.Severity
			d.FilePath = cmp.Or(d.FilePath, path)
			d.RuleName = cmp.Or(d.RuleName, rr.Rule.Name())
			if rr.AutoFix {
				edits = append(edits, d.FixEdits...)
			}
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	slices.SortStableFunc(result.Diagnostics, compareDiagnostics)

	if len(edits) > 0 {
		accepted, skipped, _, err := fix.PrepareEditsFiltered(edits, len(content))
		if err != nil {
			// Invalid edits drop the whole fix set; diagnostics are still reported.
			logger.Debug("discarding invalid edits", logging.FieldError, err)
			result.EditConflicts = true
		} else {
			result.Edits = accepted
			result.SkippedEdits = skipped
			result.EditConflicts = len(skipped) > 0
		}
	}

	return result, nil
}

func compareDiagnostics(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.StartLine, b.StartLine),
		cmp.Compare(a.StartColumn, b.StartColumn),
		CompareRuleIDs(a.RuleID, b.RuleID),
	)
}
