// Package scaffold generates Markdown starting points: table skeletons and
// new documents from a small set of templates.
package scaffold

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Table size limits.
const (
	MaxTableRows = 20
	MaxTableCols = 10
)

// Sentinel errors for scaffold input validation.
var (
	// ErrTableSize is returned for row or column counts outside the limits.
	ErrTableSize = errors.New("invalid table size")

	// ErrUnknownKind is returned for document kinds outside the template list.
	ErrUnknownKind = errors.New("unknown document kind")
)

// Table returns a Markdown table with cols columns: a header row, a
// separator row and rows-1 empty data rows. The header counts as a row.
func Table(rows, cols int) (string, error) {
	if rows < 1 || rows > MaxTableRows {
		return "", fmt.Errorf("%w: rows must be between 1 and %d, got %d", ErrTableSize, MaxTableRows, rows)
	}
	if cols < 1 || cols > MaxTableCols {
		return "", fmt.Errorf("%w: columns must be between 1 and %d, got %d", ErrTableSize, MaxTableCols, cols)
	}

	var builder strings.Builder

	builder.WriteString("|")
	for col := range cols {
		fmt.Fprintf(&builder, " Column %d |", col+1)
	}
	builder.WriteString("\n|")
	builder.WriteString(strings.Repeat(" --- |", cols))
	builder.WriteString("\n")

	for range rows - 1 {
		builder.WriteString("|")
		builder.WriteString(strings.Repeat("  |", cols))
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// Kind selects a document template.
type Kind string

// Document kinds.
const (
	KindEmpty  Kind = "empty"
	KindReadme Kind = "readme"
	KindDoc    Kind = "doc"
)

// Kinds returns the document kinds in display order.
func Kinds() []Kind {
	return []Kind{KindEmpty, KindReadme, KindDoc}
}

// IsValid returns true if the kind has a template.
func (k Kind) IsValid() bool {
	switch k {
	case KindEmpty, KindReadme, KindDoc:
		return true
	default:
		return false
	}
}

// Document returns the template for kind with title filled in. created is
// stamped into templates that record a creation date.
func Document(kind Kind, title string, created time.Time) (string, error) {
	switch kind {
	case KindEmpty:
		return fmt.Sprintf("# %s\n\nStart writing your Markdown here.\n", title), nil
	case KindReadme:
		return fmt.Sprintf(readmeTemplate, title), nil
	case KindDoc:
		return fmt.Sprintf(docTemplate, title, created.Format(time.DateOnly)), nil
	default:
		return "", fmt.Errorf("%w: %q (valid: empty, readme, doc)", ErrUnknownKind, kind)
	}
}

// FileName appends ".md" to name unless it already has a Markdown extension.
func FileName(name string) string {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown") {
		return name
	}
	return name + ".md"
}

// Title derives a document title from a file name.
func Title(fileName string) string {
	base := fileName
	if idx := strings.LastIndexAny(base, `/\`); idx >= 0 {
		base = base[idx+1:]
	}
	lower := strings.ToLower(base)
	for _, ext := range []string{".markdown", ".md"} {
		if strings.HasSuffix(lower, ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}

const readmeTemplate = "# %s\n\n" +
	"## Overview\n\nA short description of the project.\n\n" +
	"## Installation\n\n```bash\n# installation steps\n```\n\n" +
	"## Usage\n\nDescribe how to use the project.\n\n" +
	"## Contributing\n\nContributions are welcome.\n\n" +
	"## License\n\nMIT License\n"

const docTemplate = "# %s\n\n" +
	"## Summary\n\nWhat this document covers.\n\n" +
	"## Contents\n\n- [Section 1](#section-1)\n- [Section 2](#section-2)\n- [Section 3](#section-3)\n\n" +
	"## Section 1\n\n...\n\n" +
	"## Section 2\n\n...\n\n" +
	"## Section 3\n\n...\n\n" +
	"---\n\n*Created %s*\n"
