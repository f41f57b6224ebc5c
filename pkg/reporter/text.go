package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdpreview/internal/ui/pretty"
	"github.com/yaklabco/mdpreview/pkg/runner"
)

// TextReporter lists failures and prints a one-line summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	opts = opts.withDefaults()
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	if failures := r.styles.FormatFailures(result, r.opts.WorkingDir); failures != "" {
		if _, err := fmt.Fprint(r.opts.ErrorWriter, failures); err != nil {
			return 0, fmt.Errorf("write failures: %w", err)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failedCount(result), nil
}
