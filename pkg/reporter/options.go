package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for per-file failures (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses minified JSON.
	Compact bool

	// TermWidth bounds table output. Zero means a default width.
	TermWidth int

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
	}
}

// withDefaults fills unset writers and format from DefaultOptions.
func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.Writer == nil {
		o.Writer = defaults.Writer
	}
	if o.ErrorWriter == nil {
		o.ErrorWriter = defaults.ErrorWriter
	}
	if o.Format == "" {
		o.Format = defaults.Format
	}
	return o
}
