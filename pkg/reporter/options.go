package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gopydoclint/pkg/analysis"
	"github.com/yaklabco/gopydoclint/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	Format Format

	// Color is "auto" (default), "always" or "never".
	Color string

	// ShowContext prints the offending source line under each diagnostic.
	ShowContext bool

	// ShowSummary prints aggregate statistics after the results.
	ShowSummary bool

	// GroupByFile prints a header per file in text output.
	GroupByFile bool

	// Compact disables indentation in JSON and SARIF output.
	Compact bool

	RuleFormat config.RuleFormat

	// SortBy orders the tables of the summary format.
	SortBy analysis.SortField

	// WorkingDir is the directory paths are shown relative to.
	// If empty, paths are shown as given.
	WorkingDir string

	// ToolVersion is reported as the driver version in SARIF output.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		GroupByFile: true,
		RuleFormat:  config.RuleFormatName,
		SortBy:      analysis.SortByCount,
		ToolVersion: "dev",
	}
}

// displayPath shows path relative to workDir when it lies beneath it.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
