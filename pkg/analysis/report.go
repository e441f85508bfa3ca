package analysis

import "time"

// Report holds the views of a run that the summary renderer draws from.
type Report struct {
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`
	ByFile      []FileAnalysis    `json:"byFile,omitempty"`
	ByRule      []RuleAnalysis    `json:"byRule,omitempty"`
	Totals      Totals            `json:"summary"`
	Version     string            `json:"version"`
	Timestamp   time.Time         `json:"timestamp"`
}

// DiagnosticEntry is one diagnostic with its path made presentable.
type DiagnosticEntry struct {
	FilePath    string `json:"filePath"`
	Definition  string `json:"definition,omitempty"`
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	Fixable     bool   `json:"fixable"`
}

// Totals are the aggregate counts of a run.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	Definitions     int `json:"definitionsWithIssues"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
	Fixable         int `json:"fixable"`
}

// HasIssues reports whether any diagnostic was counted.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors reports whether any error-severity diagnostic was counted.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// Counts tallies diagnostics by severity.
type Counts struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

func (c *Counts) add(severity string) {
	c.Issues++
	switch severity {
	case severityError:
		c.Errors++
	case severityWarning:
		c.Warnings++
	case severityInfo:
		c.Infos++
	}
}

// FileAnalysis groups the diagnostics of one file.
type FileAnalysis struct {
	Path string `json:"path"`
	Counts
	Rules []string `json:"rules,omitempty"`
}

// RuleAnalysis groups the diagnostics of one rule.
type RuleAnalysis struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	// Label is the rule identifier rendered with Options.RuleFormat.
	Label string `json:"label"`
	Counts
	Fixable bool     `json:"fixable"`
	Files   []string `json:"files,omitempty"`
}
