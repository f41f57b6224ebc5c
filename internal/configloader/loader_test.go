package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yaklabco/mdpreview/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// isolated returns options that only look at dir and ignore the environment.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Theme != config.DefaultTheme {
		t.Errorf("expected theme %q, got %q", config.DefaultTheme, result.Config.Theme)
	}
	if result.Config.Engine != config.EngineBuiltin {
		t.Errorf("expected engine %q, got %q", config.EngineBuiltin, result.Config.Engine)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdpreview.yml"), `
theme: dark
engine: goldmark
enable_code_folding: false
preview:
  poll_interval: 2s
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Theme != "dark" {
		t.Errorf("expected theme dark, got %q", cfg.Theme)
	}
	if cfg.Engine != config.EngineGoldmark {
		t.Errorf("expected engine goldmark, got %q", cfg.Engine)
	}
	if cfg.Preview.PollInterval != 2*time.Second {
		t.Errorf("expected poll interval 2s, got %s", cfg.Preview.PollInterval)
	}
	// Unset fields keep their defaults.
	if cfg.Preview.Addr != config.DefaultPreviewAddr {
		t.Errorf("expected default addr, got %q", cfg.Preview.Addr)
	}
	if cfg.MaxInputBytes != config.DefaultMaxInputBytes {
		t.Errorf("expected default max_input_bytes, got %d", cfg.MaxInputBytes)
	}
	// Folding off with goldmark produces a warning, not an error.
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "no fold controls") {
		t.Errorf("expected one folding warning, got %v", result.Warnings)
	}
	if len(result.LoadedFrom) != 1 || filepath.Base(result.LoadedFrom[0]) != ".mdpreview.yml" {
		t.Errorf("expected project config to be loaded, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigFromSubdirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(root, ".mdpreview.yaml"), "theme: minimal\n")

	nested := filepath.Join(root, "docs", "guide")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Theme != "minimal" {
		t.Errorf("expected theme minimal, got %q", result.Config.Theme)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdpreview.yml"), "theme: dark\ntitle: Project\n")

	customPath := filepath.Join(tmpDir, "custom-config.yml")
	writeFile(t, customPath, "theme: minimal\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Theme != "minimal" {
		t.Errorf("expected explicit theme minimal, got %q", result.Config.Theme)
	}
	if result.Config.Title != "Project" {
		t.Errorf("expected project title to survive, got %q", result.Config.Title)
	}
	if result.Paths.Explicit != customPath {
		t.Errorf("expected explicit path %q, got %q", customPath, result.Paths.Explicit)
	}
}

func TestLoad_JSONConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdpreview.json"), `{"theme": "dark", "ignore": ["drafts/**"]}`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Theme != "dark" {
		t.Errorf("expected theme dark, got %q", result.Config.Theme)
	}
	if len(result.Config.Ignore) != 1 || result.Config.Ignore[0] != "drafts/**" {
		t.Errorf("unexpected ignore patterns: %v", result.Config.Ignore)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdpreview.yml"), "theme: dark\nenable_syntax_highlight: true\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Theme:           "minimal",
		SyntaxHighlight: config.Bool(false),
		Jobs:            8,
		Force:           true,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Theme != "minimal" {
		t.Errorf("expected theme minimal (CLI override), got %q", result.Config.Theme)
	}
	if result.Config.HighlightEnabled() {
		t.Error("expected highlighting off (CLI override)")
	}
	if result.Config.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Jobs)
	}
	if !result.Config.Force {
		t.Error("expected force true (CLI override)")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdpreview.yml"), "theme: solarized\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	if err == nil {
		t.Fatal("expected validation error for unknown theme")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if validationErr.Field != "theme" {
		t.Errorf("expected field theme, got %q", validationErr.Field)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdpreview.yml"), "theme: [dark\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "load project config") {
		t.Errorf("expected layer name in error, got %v", err)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("MDPREVIEW_THEME", "dark")
	t.Setenv("MDPREVIEW_CODE_FOLDING", "false")
	t.Setenv("MDPREVIEW_IGNORE", "a/**, b/**")
	t.Setenv("MDPREVIEW_POLL_INTERVAL", "500ms")

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdpreview.yml"), "theme: minimal\n")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Theme != "dark" {
		t.Errorf("expected env theme dark over project config, got %q", cfg.Theme)
	}
	if cfg.FoldingEnabled() {
		t.Error("expected folding disabled by env")
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[1] != "b/**" {
		t.Errorf("unexpected ignore patterns: %v", cfg.Ignore)
	}
	if cfg.Preview.PollInterval != 500*time.Millisecond {
		t.Errorf("expected poll interval 500ms, got %s", cfg.Preview.PollInterval)
	}
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"MDPREVIEW_DETECT_LANGUAGE", "maybe"},
		{"MDPREVIEW_JOBS", "many"},
		{"MDPREVIEW_POLL_INTERVAL", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.name, tt.value)

			err := LoadFromEnv(config.NewConfig())
			if err == nil {
				t.Fatalf("expected error for %s=%q", tt.name, tt.value)
			}
			if !strings.Contains(err.Error(), tt.name) {
				t.Errorf("expected variable name in error, got %v", err)
			}
		})
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if len(vars) != len(envMappings) {
		t.Fatalf("expected %d vars, got %d", len(envMappings), len(vars))
	}
	for i := 1; i < len(vars); i++ {
		if vars[i-1].Name >= vars[i].Name {
			t.Errorf("vars not sorted: %q before %q", vars[i-1].Name, vars[i].Name)
		}
	}
	if got := GetEnvVarName("preview.addr"); got != "MDPREVIEW_ADDR" {
		t.Errorf("GetEnvVarName(preview.addr) = %q", got)
	}
}
