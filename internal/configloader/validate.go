package configloader

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/mdpreview/pkg/config"
	"github.com/yaklabco/mdpreview/pkg/foldstate"
	"github.com/yaklabco/mdpreview/pkg/theme"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "preview.addr").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// minPollInterval is the shortest poll interval accepted without a warning.
const minPollInterval = 100 * time.Millisecond

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Theme != "" {
		if _, err := theme.Lookup(cfg.Theme); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "theme",
				Value:   cfg.Theme,
				Message: fmt.Sprintf("invalid theme %q; must be one of: %s", cfg.Theme, strings.Join(theme.Names(), ", ")),
			})
		}
	}

	if cfg.Engine != "" && !cfg.Engine.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "engine",
			Value:   cfg.Engine,
			Message: fmt.Sprintf("invalid engine %q; must be one of: builtin, goldmark", cfg.Engine),
		})
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "flavor",
			Value:   cfg.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor),
		})
	}

	if cfg.FoldKeys != "" && !foldstate.KeyStrategy(cfg.FoldKeys).IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "fold_keys",
			Value:   cfg.FoldKeys,
			Message: fmt.Sprintf("invalid fold key strategy %q; must be one of: content, positional", cfg.FoldKeys),
		})
	}

	if cfg.MaxInputBytes < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "max_input_bytes",
			Value:   cfg.MaxInputBytes,
			Message: "max_input_bytes must be >= 0 (0 disables the cap)",
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Engine == config.EngineGoldmark && !cfg.FoldingEnabled() {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "enable_code_folding",
			Value:   false,
			Message: "the goldmark engine has no fold controls; enable_code_folding has no effect",
		})
	}

	validatePreview(cfg, result)
	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validatePreview checks the preview server settings.
func validatePreview(cfg *config.Config, result *ValidationResult) {
	if cfg.Preview.Addr != "" {
		if _, _, err := net.SplitHostPort(cfg.Preview.Addr); err != nil {
			var addrErr *net.AddrError
			msg := err.Error()
			if errors.As(err, &addrErr) {
				msg = addrErr.Err
			}
			result.Errors = append(result.Errors, ValidationError{
				Field:   "preview.addr",
				Value:   cfg.Preview.Addr,
				Message: "invalid listen address: " + msg,
			})
		}
	}

	switch {
	case cfg.Preview.PollInterval < 0:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "preview.poll_interval",
			Value:   cfg.Preview.PollInterval,
			Message: "poll_interval must be >= 0",
		})
	case cfg.Preview.PollInterval > 0 && cfg.Preview.PollInterval < minPollInterval:
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "preview.poll_interval",
			Value:   cfg.Preview.PollInterval,
			Message: fmt.Sprintf("poll_interval %s is very short; pages will poll the server constantly", cfg.Preview.PollInterval),
		})
	}
}

// validateExtensions warns about extensions without a leading dot.
func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("extension %q has no leading dot and will never match", ext),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
