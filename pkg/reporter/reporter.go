// Package reporter writes lint results in the supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gopydoclint/pkg/analysis"
	"github.com/yaklabco/gopydoclint/pkg/runner"
)

var _ Reporter = (*rendererFacade)(nil)

// Reporter formats and writes lint results.
type Reporter interface {
	// Report writes formatted output for result and returns the number of
	// issues it reported.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// rendererFacade adapts a Renderer to Reporter by analyzing the result first.
type rendererFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

func (f *rendererFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func newRendererFacade(renderer Renderer, opts Options) *rendererFacade {
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = analysis.SortByCount
	}
	return &rendererFacade{
		renderer: renderer,
		analysisOpts: analysis.Options{
			IncludeByFile: true,
			IncludeByRule: true,
			SortBy:        sortBy,
			SortDesc:      true,
			RuleFormat:    opts.RuleFormat,
			WorkingDir:    opts.WorkingDir,
		},
	}
}

// New creates a Reporter for opts.Format. An empty format means text.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	switch opts.Format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}
