package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFindProjectConfig_PrefersFirstName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mdpreview.yaml"), "theme: dark\n")
	writeFile(t, filepath.Join(dir, ".mdpreview.json"), `{"theme": "dark"}`)

	got, err := FindProjectConfig(context.Background(), dir)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if want := filepath.Join(dir, ".mdpreview.json"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".mdpreview.yml"), "theme: dark\n")

	repo := filepath.Join(outer, "repo")
	nested := filepath.Join(repo, "docs")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if got != "" {
		t.Errorf("search crossed the repository root and found %q", got)
	}
}

func TestFirstExisting_IgnoresDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config.yaml"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "config.yml"), "theme: dark\n")

	if got, want := firstExisting(dir, layerConfigNames), filepath.Join(dir, "config.yml"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := firstExisting("", layerConfigNames); got != "" {
		t.Errorf("empty dir should find nothing, got %q", got)
	}
}
