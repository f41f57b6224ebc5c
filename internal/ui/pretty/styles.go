// Package pretty provides Lipgloss-based styled output for the mdpreview CLI.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style

	// Export outcome styles
	Written   lipgloss.Style
	Unchanged lipgloss.Style
	FilePath  lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableCurrent   lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style

	colorEnabled bool
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// ColorEnabled reports whether the styles emit ANSI sequences.
func (s *Styles) ColorEnabled() bool {
	return s.colorEnabled
}

// Swatch renders a two-cell colour sample, or nothing without colour.
func (s *Styles) Swatch(hex string) string {
	if !s.colorEnabled || hex == "" {
		return ""
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Written:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Unchanged: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		FilePath:  lipgloss.NewStyle().Bold(true),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableCurrent:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),

		colorEnabled: true,
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:          plain,
		Warning:        plain,
		Success:        plain,
		Failure:        plain,
		Written:        plain,
		Unchanged:      plain,
		FilePath:       plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		TableHeader:    plain,
		TableSeparator: plain,
		TableCurrent:   plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
