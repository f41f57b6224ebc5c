package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdpreview/pkg/runner"
)

// JSONVersion is the version of the JSON report layout.
const JSONVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's export.
type JSONFileResult struct {
	Path        string `json:"path"`
	Output      string `json:"output,omitempty"`
	Status      string `json:"status"`
	InputBytes  int    `json:"inputBytes"`
	OutputBytes int    `json:"outputBytes"`
	Error       string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesRendered   int `json:"filesRendered"`
	FilesWritten    int `json:"filesWritten"`
	FilesUnchanged  int `json:"filesUnchanged"`
	FilesFailed     int `json:"filesFailed"`
	BytesIn         int `json:"bytesIn"`
	BytesOut        int `json:"bytesOut"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	opts = opts.withDefaults()
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildOutput(result, r.opts.WorkingDir)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesFailed, nil
}

func buildOutput(result *runner.Result, workDir string) *JSONOutput {
	output := &JSONOutput{
		Version: JSONVersion,
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:        relativePath(workDir, file.Path),
			Output:      relativePath(workDir, file.Output),
			Status:      string(file.Status),
			InputBytes:  file.InputBytes,
			OutputBytes: file.OutputBytes,
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesRendered:   stats.FilesRendered,
		FilesWritten:    stats.FilesWritten,
		FilesUnchanged:  stats.FilesUnchanged,
		FilesFailed:     stats.FilesFailed,
		BytesIn:         stats.BytesIn,
		BytesOut:        stats.BytesOut,
	}
	return output
}

// relativePath makes path relative to workDir when both are set and the
// result stays inside workDir.
func relativePath(workDir, path string) string {
	if workDir == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
