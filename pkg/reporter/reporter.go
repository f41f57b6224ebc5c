// Package reporter writes the outcome of an export run in a chosen format.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdpreview/pkg/runner"
)

// Reporter formats and writes export results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of failed files and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
//
//nolint:ireturn // The concrete reporter depends on the requested format.
func New(opts Options) (Reporter, error) {
	opts = opts.withDefaults()

	switch opts.Format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

func failedCount(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return result.Stats.FilesFailed
}
