package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdpreview/internal/logging"
	"github.com/yaklabco/mdpreview/pkg/fsutil"
)

// Engine converts Markdown into HTML. Implementations must be safe for
// concurrent use.
type Engine interface {
	// Render returns a complete HTML document.
	Render(text string) string

	// RenderBody returns the HTML fragment without the document wrapper.
	RenderBody(text string) string
}

// Runner orchestrates multi-file export using an Engine.
type Runner struct {
	// Engine renders each file.
	Engine Engine

	// Logger receives per-file progress. If nil, the package default logger is used.
	Logger *log.Logger
}

// New creates a new Runner with the given engine.
func New(engine Engine) *Runner {
	return &Runner{Engine: engine}
}

// Run discovers files under opts.Paths and exports them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Renders and writes files concurrently using a worker pool
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	logger := r.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger.Debug("export starting", logging.FieldFilesDiscovered, len(files), logging.FieldJobs, jobs)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, logger, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; collect by path first.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker exports files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	logger *log.Logger,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	opts Options,
) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.export(ctx, path, opts)
		if outcome.Error != nil {
			logger.Warn("export failed", logging.FieldPath, path, logging.FieldError, outcome.Error)
		} else {
			logger.Debug("exported", logging.FieldPath, path,
				logging.FieldOutput, outcome.Output, logging.FieldStatus, outcome.Status)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// export renders one file and writes its HTML.
func (r *Runner) export(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{
		Path:   path,
		Output: OutputPath(path, opts.WorkingDir, opts.OutDir),
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Error = err
		return outcome
	}

	var html string
	if opts.Fragment {
		html = r.Engine.RenderBody(string(content))
	} else {
		html = r.Engine.Render(string(content))
	}
	outcome.InputBytes = len(content)
	outcome.OutputBytes = len(html)

	if opts.DryRun {
		outcome.Status = StatusRendered
		return outcome
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, outcome.Output, []byte(html), fsutil.DefaultFileMode)
	switch {
	case err != nil:
		outcome.Status = StatusFailed
		outcome.Error = fmt.Errorf("write %s: %w", outcome.Output, err)
	case written:
		outcome.Status = StatusWritten
	default:
		outcome.Status = StatusUnchanged
	}
	return outcome
}
