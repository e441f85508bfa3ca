// Package analysis aggregates a run's diagnostics into per-rule and
// per-file views for summary reporting.
package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	"github.com/yaklabco/gopydoclint/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

const (
	severityError   = string(config.SeverityError)
	severityWarning = string(config.SeverityWarning)
	severityInfo    = string(config.SeverityInfo)
)

// accumulator holds the groups while diagnostics are walked.
type accumulator struct {
	files       map[string]*FileAnalysis
	rules       map[string]*RuleAnalysis
	fileRules   map[string]map[string]struct{}
	ruleFiles   map[string]map[string]struct{}
	definitions map[string]struct{}
}

func newAccumulator() *accumulator {
	return &accumulator{
		files:       make(map[string]*FileAnalysis),
		rules:       make(map[string]*RuleAnalysis),
		fileRules:   make(map[string]map[string]struct{}),
		ruleFiles:   make(map[string]map[string]struct{}),
		definitions: make(map[string]struct{}),
	}
}

func (a *accumulator) file(path string) *FileAnalysis {
	fa, ok := a.files[path]
	if !ok {
		fa = &FileAnalysis{Path: path}
		a.files[path] = fa
		a.fileRules[path] = make(map[string]struct{})
	}
	return fa
}

func (a *accumulator) rule(diag *lint.Diagnostic, format config.RuleFormat) *RuleAnalysis {
	ra, ok := a.rules[diag.RuleID]
	if !ok {
		ra = &RuleAnalysis{
			RuleID:   diag.RuleID,
			RuleName: diag.RuleName,
			Label:    config.FormatRuleID(format, diag.RuleID, diag.RuleName),
		}
		a.rules[diag.RuleID] = ra
		a.ruleFiles[diag.RuleID] = make(map[string]struct{})
	}
	return ra
}

// Analyze walks result once and builds the views opts asks for.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	acc := newAccumulator()

	for _, outcome := range result.Files {
		report.Totals.Files++
		if outcome.Error != nil {
			report.Totals.FilesErrored++
			continue
		}
		if outcome.Result == nil || outcome.Result.FileResult == nil || len(outcome.Result.Diagnostics) == 0 {
			continue
		}
		report.Totals.FilesWithIssues++

		path := displayPath(outcome.Path, opts.WorkingDir)
		fa := acc.file(path)

		for i := range outcome.Result.Diagnostics {
			diag := &outcome.Result.Diagnostics[i]
			severity := string(diag.Severity)
			if severity == "" {
				severity = severityWarning
			}
			fixable := diag.HasFix()

			report.Totals.Issues++
			switch severity {
			case severityError:
				report.Totals.Errors++
			case severityWarning:
				report.Totals.Warnings++
			case severityInfo:
				report.Totals.Infos++
			}
			if fixable {
				report.Totals.Fixable++
			}
			acc.definitions[path+"\x00"+diag.Definition] = struct{}{}

			fa.add(severity)
			acc.fileRules[path][diag.RuleID] = struct{}{}

			ra := acc.rule(diag, opts.RuleFormat)
			ra.add(severity)
			ra.Fixable = ra.Fixable || fixable
			acc.ruleFiles[diag.RuleID][path] = struct{}{}

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, DiagnosticEntry{
					FilePath:    path,
					Definition:  diag.Definition,
					RuleID:      diag.RuleID,
					RuleName:    diag.RuleName,
					Severity:    severity,
					Message:     diag.Message,
					StartLine:   diag.StartLine,
					StartColumn: diag.StartColumn,
					Fixable:     fixable,
				})
			}
		}
	}
	report.Totals.Definitions = len(acc.definitions)

	if opts.IncludeByRule {
		report.ByRule = make([]RuleAnalysis, 0, len(acc.rules))
		for id, ra := range acc.rules {
			ra.Files = slices.Sorted(maps.Keys(acc.ruleFiles[id]))
			report.ByRule = append(report.ByRule, *ra)
		}
		sortGroups(report.ByRule, opts, func(ra RuleAnalysis) (string, Counts) { return ra.RuleID, ra.Counts })
	}

	if opts.IncludeByFile {
		report.ByFile = make([]FileAnalysis, 0, len(acc.files))
		for path, fa := range acc.files {
			fa.Rules = slices.Sorted(maps.Keys(acc.fileRules[path]))
			report.ByFile = append(report.ByFile, *fa)
		}
		sortGroups(report.ByFile, opts, func(fa FileAnalysis) (string, Counts) { return fa.Path, fa.Counts })
	}

	return report
}

// sortGroups orders groups by opts.SortBy. Ties fall back to the key so
// output is deterministic despite map iteration.
func sortGroups[T any](groups []T, opts Options, key func(T) (string, Counts)) {
	slices.SortFunc(groups, func(left, right T) int {
		leftKey, lc := key(left)
		rightKey, rc := key(right)

		var result int
		switch opts.SortBy {
		case SortByAlpha:
		case SortBySeverity:
			result = cmp.Or(
				cmp.Compare(rc.Errors, lc.Errors),
				cmp.Compare(rc.Warnings, lc.Warnings),
				cmp.Compare(rc.Issues, lc.Issues),
			)
		default:
			result = cmp.Compare(lc.Issues, rc.Issues)
			if opts.SortDesc {
				result = -result
			}
		}
		return cmp.Or(result, cmp.Compare(leftKey, rightKey))
	})
}

// displayPath makes path relative to workDir when possible.
func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}
