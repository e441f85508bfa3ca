package analysis

import (
	"fmt"

	"github.com/yaklabco/gopydoclint/pkg/config"
)

// SortField selects the ordering of the grouped views.
type SortField string

const (
	// SortByCount orders by issue count.
	SortByCount SortField = "count"
	// SortByAlpha orders by rule ID or path, always ascending.
	SortByAlpha SortField = "alpha"
	// SortBySeverity puts the groups with the most errors first.
	SortBySeverity SortField = "severity"
)

// ParseSortField parses a sort field name. The empty string means count.
func ParseSortField(name string) (SortField, error) {
	switch field := SortField(name); field {
	case "":
		return SortByCount, nil
	case SortByCount, SortByAlpha, SortBySeverity:
		return field, nil
	default:
		return "", fmt.Errorf("unknown sort field %q; valid fields: count, alpha, severity", name)
	}
}

// Options configures Analyze.
type Options struct {
	// IncludeDiagnostics fills Report.Diagnostics.
	IncludeDiagnostics bool

	// IncludeByFile fills Report.ByFile.
	IncludeByFile bool

	// IncludeByRule fills Report.ByRule.
	IncludeByRule bool

	SortBy   SortField
	SortDesc bool

	// RuleFormat controls RuleAnalysis.Label.
	RuleFormat config.RuleFormat

	// WorkingDir, when set, makes reported paths relative to it.
	WorkingDir string
}

// DefaultOptions returns every view, largest groups first.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByRule:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
		RuleFormat:         config.RuleFormatName,
	}
}
