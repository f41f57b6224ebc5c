package cli

import (
	"errors"

	"github.com/yaklabco/mdpreview/internal/configloader"
	"github.com/yaklabco/mdpreview/pkg/fsutil"
	"github.com/yaklabco/mdpreview/pkg/runner"
	"github.com/yaklabco/mdpreview/pkg/scaffold"
)

// Exit codes for mdpreview.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a failed command, including exports where some files failed.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrExportFailed is returned when one or more files failed to export.
var ErrExportFailed = errors.New("export failed for one or more files")

// ExitCodeFromResult determines the exit code for an export result.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasFailures() {
		return ExitSuccess
	}
	return ExitFailure
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConfig), errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, scaffold.ErrTableSize), errors.Is(err, scaffold.ErrUnknownKind):
		return ExitInvalidUsage
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitFailure
	}
}
