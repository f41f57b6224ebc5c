package pretty_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdpreview/internal/ui/pretty"
	"github.com/yaklabco/mdpreview/pkg/runner"
	"github.com/yaklabco/mdpreview/pkg/theme"
)

func TestTableFormatter_Format(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 80)
	got := formatter.Format(
		[]string{"A", "LONGER"},
		[][]string{{"xyz", "1"}, {"q", "22"}},
		nil,
	)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, " A    LONGER", lines[0])
	assert.Equal(t, strings.Repeat("=", 13), lines[1])
	assert.Equal(t, " xyz  1", lines[2])
	assert.Equal(t, " q    22", lines[3])
}

func TestTableFormatter_TruncatesLastColumn(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 30)
	got := formatter.Format([]string{"K", "V"}, [][]string{{"k", strings.Repeat("v", 60)}}, nil)

	for _, line := range strings.Split(strings.TrimSuffix(got, "\n"), "\n")[2:] {
		assert.LessOrEqual(t, len([]rune(line)), 30)
		assert.True(t, strings.HasSuffix(line, "…"))
	}
}

func TestTableFormatter_FormatThemes(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 120)
	got := formatter.FormatThemes(theme.All(), "Dark")

	assert.Contains(t, got, "NAME")
	assert.Contains(t, got, "CODE STYLE")
	assert.Regexp(t, `(?m)^ \*\s+dark\s+monokai`, got)
	assert.Regexp(t, `(?m)^\s+github\s+github`, got)
	assert.Contains(t, got, "Serif reading layout")
}

func TestTableFormatter_FormatFiles(t *testing.T) {
	t.Parallel()

	work := filepath.FromSlash("/work")
	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: filepath.FromSlash("/work/a.md"), Output: filepath.FromSlash("/work/site/a.html"), Status: runner.StatusWritten},
		{Path: filepath.FromSlash("/work/b.md"), Output: filepath.FromSlash("/work/site/b.html"), Status: runner.StatusUnchanged},
	}}

	got := pretty.NewTableFormatter(pretty.NewStyles(false), 0).FormatFiles(result, work)

	assert.Contains(t, got, "STATUS")
	assert.Contains(t, got, "written")
	assert.Contains(t, got, filepath.FromSlash("site/b.html"))
	assert.Empty(t, pretty.NewTableFormatter(pretty.NewStyles(false), 0).FormatFiles(nil, work))
}
