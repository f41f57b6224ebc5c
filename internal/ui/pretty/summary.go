package pretty

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yaklabco/mdpreview/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats export statistics as a single line.
// Example: "Exported 3 files: 2 written, 1 unchanged".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Warning.Render("No Markdown files found") + "\n"
	}

	parts := []string{
		s.Written.Render(fmt.Sprintf("%d written", stats.FilesWritten)),
		s.Unchanged.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)),
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}

	verb := s.Success.Render("Exported")
	if stats.FilesFailed > 0 {
		verb = s.Failure.Render("Exported")
	}
	return fmt.Sprintf("%s %d %s: %s\n", verb, stats.FilesRendered, plural(stats.FilesRendered), strings.Join(parts, ", "))
}

// FormatSummary formats export statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(s.Dim.Render(strings.Repeat("-", summaryDividerWidth)))
	builder.WriteString("\n")

	row := func(label, value string) {
		fmt.Fprintf(&builder, "  %-18s %s\n", label+":", value)
	}

	row("Files discovered", s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)))
	row("Files rendered", s.SummaryValue.Render(strconv.Itoa(stats.FilesRendered)))
	if stats.FilesWritten > 0 {
		row("Files written", s.Written.Render(strconv.Itoa(stats.FilesWritten)))
	}
	if stats.FilesUnchanged > 0 {
		row("Files unchanged", s.Unchanged.Render(strconv.Itoa(stats.FilesUnchanged)))
	}
	if stats.FilesFailed > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesFailed)))
	}
	row("Markdown in", s.SummaryValue.Render(formatBytes(stats.BytesIn)))
	row("HTML out", s.SummaryValue.Render(formatBytes(stats.BytesOut)))

	builder.WriteString("\n")
	switch {
	case stats.FilesFailed > 0:
		builder.WriteString(s.Failure.Render("Export finished with errors"))
	case stats.FilesDiscovered == 0:
		builder.WriteString(s.Warning.Render("Nothing to export"))
	default:
		builder.WriteString(s.Success.Render("Export complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatFailures lists each failed file with its error, paths relative to workDir.
func (s *Styles) FormatFailures(result *runner.Result, workDir string) string {
	failures := result.Failures()
	if len(failures) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, outcome := range failures {
		fmt.Fprintf(&builder, "%s %s: %v\n",
			s.Error.Render("error"), s.FilePath.Render(relativeTo(workDir, outcome.Path)), outcome.Error)
	}
	return builder.String()
}

func formatBytes(n int) string {
	const unit = 1024
	switch {
	case n < unit:
		return fmt.Sprintf("%d B", n)
	case n < unit*unit:
		return fmt.Sprintf("%.1f KiB", float64(n)/unit)
	default:
		return fmt.Sprintf("%.1f MiB", float64(n)/(unit*unit))
	}
}

func relativeTo(workDir, path string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
