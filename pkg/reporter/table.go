package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdpreview/internal/ui/pretty"
	"github.com/yaklabco/mdpreview/pkg/runner"
)

// TableReporter lists every file with its status, then the summary block.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	opts = opts.withDefaults()
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, opts.TermWidth),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	fmt.Fprint(r.bw, r.formatter.FormatFiles(result, r.opts.WorkingDir))
	if failures := r.styles.FormatFailures(result, r.opts.WorkingDir); failures != "" {
		if _, err := fmt.Fprint(r.opts.ErrorWriter, failures); err != nil {
			return 0, fmt.Errorf("write failures: %w", err)
		}
	}
	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	}

	return failedCount(result), nil
}

// SummaryReporter prints only the summary block.
type SummaryReporter struct {
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	opts = opts.withDefaults()
	return &SummaryReporter{
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	return failedCount(result), nil
}
