package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gopydoclint/internal/logging"
	"github.com/yaklabco/gopydoclint/pkg/lint"
)

// Runner lints many Python files concurrently through a lint.Pipeline.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New creates a Runner.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers the files under opts.Paths and lints them with opts.Jobs
// workers. Outcomes are reported in discovery order regardless of which
// worker finished first. A per-file failure is recorded in its FileOutcome
// and does not stop the run; cancelling ctx does.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = len(files)

	outcomes, done := r.process(ctx, files, opts)
	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}
	result.Stats.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldDocstrings, result.Stats.DocstringsChecked,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldDuration, result.Stats.Duration,
	)

	return result, nil
}

// process lints files on a bounded pool. done[i] reports whether files[i]
// was reached before ctx was cancelled.
func (r *Runner) process(ctx context.Context, files []string, opts Options) ([]FileOutcome, []bool) {
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))
	if len(files) == 0 {
		return outcomes, done
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)

	var group errgroup.Group
	group.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcome := FileOutcome{Path: path}
			pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Config, pipelineOpts)
			if err != nil {
				logging.FromContext(ctx).Debug("file failed", logging.FieldPath, path, logging.FieldError, err)
				outcome.Error = err
			} else {
				outcome.Result = pr
			}
			// Each goroutine owns index i.
			outcomes[i], done[i] = outcome, true
			return nil
		})
	}
	_ = group.Wait()

	return outcomes, done
}
