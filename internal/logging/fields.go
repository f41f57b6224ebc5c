// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Rendering fields.
	FieldTheme     = "theme"
	FieldEngine    = "engine"
	FieldBytes     = "bytes"
	FieldLimit     = "limit"
	FieldBlockID   = "block_id"
	FieldLanguage  = "language"
	FieldLines     = "lines"
	FieldCollapsed = "collapsed"
	FieldBlocks    = "blocks"
	FieldJobs      = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesWritten    = "files_written"
	FieldFilesUnchanged  = "files_unchanged"
	FieldFilesFailed     = "files_failed"

	// Preview server fields.
	FieldAddr     = "addr"
	FieldMethod   = "method"
	FieldStatus   = "status"
	FieldRevision = "revision"
	FieldDuration = "duration"

	// Version fields.
	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
	FieldGo       = "go"
	FieldPlatform = "platform"
)
