package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdpreview/pkg/render"
	"github.com/yaklabco/mdpreview/pkg/runner"
)

// stubEngine wraps the input in a marker so tests can check which method ran.
type stubEngine struct {
	calls atomic.Int64
}

func (s *stubEngine) Render(text string) string {
	s.calls.Add(1)
	return "<doc>" + text + "</doc>"
}

func (s *stubEngine) RenderBody(text string) string {
	s.calls.Add(1)
	return "<body>" + text + "</body>"
}

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New(&stubEngine{}).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)

	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_BesideSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"readme.md":           "one",
		"docs/guide.markdown": "two",
		"notes.txt":           "skip",
	})

	engine := &stubEngine{}
	result, err := runner.New(engine).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, runner.Stats{
		FilesDiscovered: 2,
		FilesRendered:   2,
		FilesWritten:    2,
		BytesIn:         6,
		BytesOut:        len("<doc>one</doc>") + len("<doc>two</doc>"),
	}, result.Stats)

	assert.Equal(t, "<doc>one</doc>", readFile(t, filepath.Join(dir, "readme.html")))
	assert.Equal(t, "<doc>two</doc>", readFile(t, filepath.Join(dir, "docs", "guide.html")))
	assert.Equal(t, int64(2), engine.calls.Load())
}

func TestRunner_Run_OutDirMirrorsLayout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"readme.md":     "one",
		"docs/guide.md": "two",
	})

	opts := runner.Options{WorkingDir: dir, OutDir: "site", Fragment: true}
	result, err := runner.New(&stubEngine{}).Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.Equal(t, "<body>two</body>", readFile(t, filepath.Join(dir, "site", "docs", "guide.html")))
	assert.Equal(t, "<body>one</body>", readFile(t, filepath.Join(dir, "site", "readme.html")))
	assert.NoFileExists(t, filepath.Join(dir, "readme.html"))
}

func TestRunner_Run_SkipsUnchangedOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": "a", "b.md": "b"})

	r := runner.New(&stubEngine{})
	opts := runner.Options{WorkingDir: dir}

	_, err := r.Run(context.Background(), opts)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("b2"), 0o644))

	result, err := r.Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesUnchanged)
	assert.Equal(t, 1, result.Stats.FilesWritten)
	assert.Equal(t, runner.StatusUnchanged, result.Files[0].Status)
	assert.Equal(t, runner.StatusWritten, result.Files[1].Status)
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": "a"})

	result, err := runner.New(&stubEngine{}).Run(context.Background(), runner.Options{WorkingDir: dir, DryRun: true})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, runner.StatusRendered, result.Files[0].Status)
	assert.Equal(t, 1, result.Stats.FilesRendered)
	assert.Zero(t, result.Stats.FilesWritten)
	assert.NoFileExists(t, filepath.Join(dir, "a.html"))
}

func TestRunner_Run_WriteFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": "a", "b.md": "b"})
	// A directory where the output file should go makes the write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a.html"), 0o755))

	result, err := runner.New(&stubEngine{}).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesFailed)
	assert.Equal(t, 1, result.Stats.FilesWritten)

	failures := result.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, filepath.Join(dir, "a.md"), failures[0].Path)
	assert.Equal(t, runner.StatusFailed, failures[0].Status)
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[filepath.Join("docs", name+".md")] = "# " + name + "\n\n```go\nfunc " + name + "() {}\n```\n"
	}

	run := func(jobs int) *runner.Result {
		dir := t.TempDir()
		writeTree(t, dir, files)

		opts := runner.Options{WorkingDir: dir, Jobs: jobs, DryRun: true}
		result, err := runner.New(render.New(render.DefaultOptions())).Run(context.Background(), opts)
		require.NoError(t, err)
		return result
	}

	serial := run(1)
	parallel := run(8)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, filepath.Base(serial.Files[i].Path), filepath.Base(parallel.Files[i].Path))
		assert.Equal(t, serial.Files[i].OutputBytes, parallel.Files[i].OutputBytes)
	}
	assert.Equal(t, serial.Stats.BytesOut, parallel.Stats.BytesOut)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(&stubEngine{}).Run(ctx, runner.Options{WorkingDir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_RealRenderer(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"doc.md": "# Hello\n\n- item"})

	opts := render.DefaultOptions()
	opts.Title = "Exported"
	result, err := runner.New(render.New(opts)).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	html := readFile(t, filepath.Join(dir, "doc.html"))
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Exported</title>")
	assert.Contains(t, html, "<h1>Hello</h1>")
	assert.Contains(t, html, "<li>item</li>")
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	work := filepath.FromSlash("/work")
	tests := []struct {
		name   string
		source string
		outDir string
		want   string
	}{
		{"beside source", "/work/docs/a.md", "", "/work/docs/a.html"},
		{"markdown extension", "/work/b.markdown", "", "/work/b.html"},
		{"relative out dir", "/work/docs/a.md", "site", "/work/site/docs/a.html"},
		{"absolute out dir", "/work/a.md", "/tmp/out", "/tmp/out/a.html"},
		{"outside work dir", "/elsewhere/c.md", "site", "/work/site/c.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := runner.OutputPath(filepath.FromSlash(tt.source), work, filepath.FromSlash(tt.outDir))
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}
