package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdpreview/pkg/runner"
	"github.com/yaklabco/mdpreview/pkg/theme"
)

// Table formatting constants.
const (
	tablePadding     = 2
	heavySeparator   = "="
	currentMarker    = "*"
	defaultTermWidth = 100
	minLastColumn    = 20
)

// TableFormatter lays out rows in aligned columns.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Format renders headers and rows. Cell widths are measured on the
// unstyled text; style applies per row.
func (t *TableFormatter) Format(headers []string, rows [][]string, rowStyles []lipgloss.Style) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	t.constrain(widths)

	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(t.line(headers, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")

	for i, row := range rows {
		line := t.line(row, widths)
		if i < len(rowStyles) {
			line = rowStyles[i].Render(line)
		}
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	return builder.String()
}

// constrain shrinks the last column so the table fits the terminal.
func (t *TableFormatter) constrain(widths []int) {
	if len(widths) == 0 {
		return
	}

	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}
	if total > t.termWidth {
		last := len(widths) - 1
		widths[last] = max(minLastColumn, widths[last]-(total-t.termWidth))
	}
}

func (t *TableFormatter) line(cells []string, widths []int) string {
	var builder strings.Builder
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if lipgloss.Width(cell) > width {
			cell = truncate(cell, width)
		}
		builder.WriteString(" ")
		builder.WriteString(cell)
		if i < len(widths)-1 {
			builder.WriteString(strings.Repeat(" ", width-lipgloss.Width(cell)+tablePadding-1))
		}
	}
	return strings.TrimRight(builder.String(), " ")
}

func truncate(text string, width int) string {
	runes := []rune(text)
	if width <= 1 || len(runes) <= width {
		return text
	}
	return string(runes[:width-1]) + "…"
}

// FormatThemes lists the theme presets, marking current.
func (t *TableFormatter) FormatThemes(presets []theme.Theme, current string) string {
	rows := make([][]string, 0, len(presets))
	styles := make([]lipgloss.Style, 0, len(presets))

	for _, preset := range presets {
		marker := " "
		style := lipgloss.NewStyle()
		if strings.EqualFold(string(preset.Name), current) {
			marker = currentMarker
			style = t.styles.TableCurrent
		}
		rows = append(rows, []string{marker, string(preset.Name), preset.ChromaStyle, preset.Description})
		styles = append(styles, style)
	}

	table := t.Format([]string{" ", "NAME", "CODE STYLE", "DESCRIPTION"}, rows, styles)

	if t.styles.ColorEnabled() {
		var swatches strings.Builder
		for _, preset := range presets {
			background, text, link := preset.Swatch()
			swatches.WriteString(" ")
			swatches.WriteString(t.styles.Swatch(background))
			swatches.WriteString(t.styles.Swatch(text))
			swatches.WriteString(t.styles.Swatch(link))
			swatches.WriteString(" " + string(preset.Name) + "\n")
		}
		table += "\n" + swatches.String()
	}
	return table
}

// FormatFiles lists each exported file with its status.
func (t *TableFormatter) FormatFiles(result *runner.Result, workDir string) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([][]string, 0, len(result.Files))
	styles := make([]lipgloss.Style, 0, len(result.Files))

	for _, outcome := range result.Files {
		rows = append(rows, []string{
			string(outcome.Status),
			relativeTo(workDir, outcome.Path),
			relativeTo(workDir, outcome.Output),
		})
		styles = append(styles, t.statusStyle(outcome.Status))
	}

	return t.Format([]string{"STATUS", "SOURCE", "OUTPUT"}, rows, styles)
}

func (t *TableFormatter) statusStyle(status runner.Status) lipgloss.Style {
	switch status {
	case runner.StatusWritten:
		return t.styles.Written
	case runner.StatusFailed:
		return t.styles.Failure
	case runner.StatusUnchanged, runner.StatusRendered:
		return t.styles.Unchanged
	default:
		return lipgloss.NewStyle()
	}
}
