package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdpreview/internal/cli"
	"github.com/yaklabco/mdpreview/internal/configloader"
	"github.com/yaklabco/mdpreview/pkg/fsutil"
	"github.com/yaklabco/mdpreview/pkg/reporter"
	"github.com/yaklabco/mdpreview/pkg/scaffold"
)

// execute runs the root command with args and returns stdout, stderr and the error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// configFile writes a config file in a fresh directory and returns its path.
func configFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".mdpreview.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeMarkdown(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestIntegration_Render(t *testing.T) {
	t.Parallel()

	source := writeMarkdown(t, t.TempDir(), "doc.md", "# Hi\n\ntext\n")
	cfg := configFile(t, "theme: github\n")

	tests := []struct {
		name         string
		stdin        string
		args         []string
		wantContains []string
		wantMissing  []string
	}{
		{
			name:         "file to stdout",
			args:         []string{"render", source},
			wantContains: []string{"<!DOCTYPE html>", "<h1>Hi</h1>", "<p>text</p>"},
		},
		{
			name:         "stdin fragment",
			stdin:        "**b**",
			args:         []string{"render", "-", "--fragment"},
			wantContains: []string{"<p><strong>b</strong></p>"},
			wantMissing:  []string{"<!DOCTYPE html>"},
		},
		{
			name:         "dark theme and title",
			args:         []string{"render", source, "--theme", "dark", "--title", "Custom"},
			wantContains: []string{"#0d1117", "<title>Custom</title>"},
		},
		{
			name:         "goldmark engine",
			args:         []string{"render", source, "--engine", "goldmark", "--fragment"},
			wantContains: []string{`<h1 id="hi">Hi</h1>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, tt.stdin, append(tt.args, "--config", cfg)...)
			require.NoError(t, err)

			for _, want := range tt.wantContains {
				assert.Contains(t, stdout, want)
			}
			for _, missing := range tt.wantMissing {
				assert.NotContains(t, stdout, missing)
			}
		})
	}
}

func TestIntegration_RenderOutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := writeMarkdown(t, dir, "doc.md", "```go\nx := 1\n```\n")
	output := filepath.Join(dir, "out", "doc.html")

	stdout, _, err := execute(t, "", "render", source, "-o", output, "--config", configFile(t, ""))
	require.NoError(t, err)
	assert.Empty(t, stdout)

	html, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(html), `class="code-block-container"`)
}

func TestIntegration_RenderErrors(t *testing.T) {
	t.Parallel()

	source := writeMarkdown(t, t.TempDir(), "doc.md", "# x\n")

	_, _, err := execute(t, "", "render", source, "--theme", "sepia", "--config", configFile(t, ""))
	require.Error(t, err)
	require.ErrorIs(t, err, cli.ErrConfig)
	var validation *configloader.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	_, _, err = execute(t, "", "render", filepath.Join(t.TempDir(), "absent.md"), "--config", configFile(t, ""))
	require.ErrorIs(t, err, fsutil.ErrNotFound)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestIntegration_Export(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMarkdown(t, dir, "a.md", "# A\n")
	writeMarkdown(t, dir, "docs/b.markdown", "# B\n")
	writeMarkdown(t, dir, "notes.txt", "not markdown")
	cfg := configFile(t, "")

	stdout, _, err := execute(t, "", "export", dir, "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "Exported 2 files: 2 written, 0 unchanged\n", stdout)
	assert.FileExists(t, filepath.Join(dir, "a.html"))
	assert.FileExists(t, filepath.Join(dir, "docs", "b.html"))
	assert.NoFileExists(t, filepath.Join(dir, "notes.html"))

	stdout, _, err = execute(t, "", "export", dir, "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "Exported 2 files: 0 written, 2 unchanged\n", stdout)
}

func TestIntegration_ExportDryRunVerbose(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMarkdown(t, dir, "a.md", "# A\n")
	writeMarkdown(t, dir, "drafts/b.md", "# B\n")

	stdout, _, err := execute(t, "", "export", dir, "--dry-run", "-v", "--ignore", "**/drafts/**",
		"--config", configFile(t, ""))
	require.NoError(t, err)

	assert.Contains(t, stdout, "STATUS")
	assert.Contains(t, stdout, "rendered")
	assert.Contains(t, stdout, "Files discovered:  1")
	assert.NoFileExists(t, filepath.Join(dir, "a.html"))
}

func TestIntegration_ExportJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMarkdown(t, dir, "a.md", "# A\n")

	stdout, _, err := execute(t, "", "export", dir, "--format", "json", "--compact", "--config", configFile(t, ""))
	require.NoError(t, err)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	require.Len(t, decoded.Files, 1)
	assert.Equal(t, "written", decoded.Files[0].Status)
	assert.Equal(t, 1, decoded.Summary.FilesWritten)

	_, _, err = execute(t, "", "export", dir, "--format", "sarif", "--config", configFile(t, ""))
	require.ErrorIs(t, err, cli.ErrInvalidArgument)
}

func TestIntegration_Table(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "table", "2", "2")
	require.NoError(t, err)
	assert.Equal(t, "| Column 1 | Column 2 |\n| --- | --- |\n|  |  |\n", stdout)

	_, _, err = execute(t, "", "table", "0", "2")
	require.ErrorIs(t, err, scaffold.ErrTableSize)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, _, err = execute(t, "", "table", "x", "2")
	require.ErrorIs(t, err, cli.ErrInvalidArgument)

	_, _, err = execute(t, "", "table", "2")
	require.Error(t, err)
}

func TestIntegration_Themes(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "themes", "--config", configFile(t, "theme: dark\n"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "NAME")
	assert.Regexp(t, `(?m)^ \*\s+dark`, stdout)
	assert.Contains(t, stdout, "github")
	assert.Contains(t, stdout, "minimal")
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, ".mdpreview.yml")

	_, _, err := execute(t, "", "init", "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "theme: github")

	_, _, err = execute(t, "", "init", "--output", output)
	require.ErrorIs(t, err, cli.ErrInvalidArgument, "existing file without --force")

	_, _, err = execute(t, "", "init", "--output", output, "--force", "--full")
	require.NoError(t, err)

	_, _, err = execute(t, "", "init", "--output", filepath.Join(dir, "c.toml"), "--format", "toml")
	require.ErrorIs(t, err, cli.ErrInvalidArgument)

	jsonOut := filepath.Join(dir, "config.json")
	_, _, err = execute(t, "", "init", "--output", jsonOut, "--format", "json")
	require.NoError(t, err)
	content, err = os.ReadFile(jsonOut)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "{"))
}

func TestIntegration_New(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "README")

	_, _, err := execute(t, "", "new", base, "--kind", "readme")
	require.NoError(t, err)

	content, err := os.ReadFile(base + ".md")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# README\n"))
	assert.Contains(t, string(content), "## Installation")

	_, _, err = execute(t, "", "new", base)
	require.ErrorIs(t, err, cli.ErrInvalidArgument)

	_, _, err = execute(t, "", "new", base, "--force", "--title", "Project")
	require.NoError(t, err)
	content, err = os.ReadFile(base + ".md")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# Project\n"))

	_, _, err = execute(t, "", "new", base, "--kind", "poem")
	require.ErrorIs(t, err, scaffold.ErrUnknownKind)
}

func TestIntegration_Help(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Commands:")
	assert.Contains(t, stdout, "Environment:")
	assert.Contains(t, stdout, "MDPREVIEW_THEME")

	stdout, _, err = execute(t, "", "export", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "-f, --format string")
	assert.Contains(t, stdout, `(default "text")`)
	assert.Contains(t, stdout, "Global Flags:")
	assert.NotContains(t, stdout, "Environment:")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"export failures", cli.ErrExportFailed, cli.ExitFailure},
		{"config", errors.Join(cli.ErrConfig, errors.New("bad yaml")), cli.ExitConfigError},
		{"validation", &configloader.ValidationError{Field: "theme", Message: "unknown"}, cli.ExitConfigError},
		{"usage", fmt.Errorf("wrap: %w", cli.ErrInvalidArgument), cli.ExitInvalidUsage},
		{"io", fmt.Errorf("%w: x.md", fsutil.ErrPermissionDenied), cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
