package reporter

import (
	"context"

	"github.com/yaklabco/gopydoclint/pkg/analysis"
)

// Renderer presents an already analyzed report.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}
