package runner

// Status describes what happened to one file.
type Status string

const (
	// StatusWritten means new or changed HTML was written.
	StatusWritten Status = "written"
	// StatusUnchanged means the existing HTML already matched.
	StatusUnchanged Status = "unchanged"
	// StatusRendered means the file was rendered but not written (dry run).
	StatusRendered Status = "rendered"
	// StatusFailed means the file could not be read, rendered or written.
	StatusFailed Status = "failed"
)

// FileOutcome records the export of a single source file.
type FileOutcome struct {
	// Path is the source file that was processed.
	Path string

	// Output is the HTML path for this source.
	Output string

	// Status is the outcome of the export.
	Status Status

	// InputBytes is the size of the source.
	InputBytes int

	// OutputBytes is the size of the generated HTML.
	OutputBytes int

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesRendered is the number of files converted to HTML.
	FilesRendered int

	// FilesWritten is the number of HTML files created or updated.
	FilesWritten int

	// FilesUnchanged is the number of HTML files left as they were.
	FilesUnchanged int

	// FilesFailed is the number of files that encountered errors.
	FilesFailed int

	// BytesIn is the total size of the rendered sources.
	BytesIn int

	// BytesOut is the total size of the generated HTML.
	BytesOut int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to export.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// Failures returns the outcomes that carry an error.
func (r *Result) Failures() []FileOutcome {
	if r == nil {
		return nil
	}

	var failed []FileOutcome
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			failed = append(failed, outcome)
		}
	}
	return failed
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}

	r.Stats.FilesRendered++
	r.Stats.BytesIn += outcome.InputBytes
	r.Stats.BytesOut += outcome.OutputBytes

	switch outcome.Status {
	case StatusWritten:
		r.Stats.FilesWritten++
	case StatusUnchanged:
		r.Stats.FilesUnchanged++
	case StatusRendered, StatusFailed:
	}
}
