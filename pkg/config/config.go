// Package config defines core configuration types for mdpreview.
// These types are pure data structures with no dependency on the loaders that fill them.
package config

import "time"

// Engine selects the Markdown renderer.
type Engine string

const (
	// EngineBuiltin is the line-oriented renderer with fold controls.
	EngineBuiltin Engine = "builtin"
	// EngineGoldmark is the goldmark-based CommonMark/GFM renderer.
	EngineGoldmark Engine = "goldmark"
)

// IsValid returns true if the engine is known.
func (e Engine) IsValid() bool {
	switch e {
	case EngineBuiltin, EngineGoldmark:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor used by the goldmark engine.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// Defaults used by NewConfig.
const (
	DefaultTheme         = "github"
	DefaultFoldKeys      = "content"
	DefaultMaxInputBytes = 1_000_000
	DefaultTitle         = "Markdown Preview"
	DefaultPreviewAddr   = "127.0.0.1:7777"
	DefaultPollInterval  = time.Second
)

// DefaultExtensions returns the file extensions treated as Markdown.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// ExportConfig controls batch HTML export.
type ExportConfig struct {
	// OutDir receives the HTML files. Empty writes each file beside its source.
	OutDir string `mapstructure:"out_dir" yaml:"out_dir,omitempty"`

	// Fragment writes body fragments instead of complete documents.
	Fragment bool `mapstructure:"fragment" yaml:"fragment"`
}

// PreviewConfig controls the live preview server.
type PreviewConfig struct {
	// Addr is the listen address.
	Addr string `mapstructure:"addr" yaml:"addr"`

	// PollInterval is how often the page checks for a new revision.
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
}

// Config is the root configuration structure for mdpreview.
type Config struct {
	// Theme is the preset name: github, dark or minimal.
	Theme string `mapstructure:"theme" yaml:"theme"`

	// Engine selects the renderer ("builtin" or "goldmark").
	Engine Engine `mapstructure:"engine" yaml:"engine"`

	// Flavor is the goldmark Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// FoldKeys selects how code block ids are derived ("content" or "positional").
	FoldKeys string `mapstructure:"fold_keys" yaml:"fold_keys"`

	// MaxInputBytes caps the rendered input. Zero leaves the value from lower layers.
	MaxInputBytes int `mapstructure:"max_input_bytes" yaml:"max_input_bytes"`

	// SyntaxHighlight enables code highlighting. Nil means enabled.
	SyntaxHighlight *bool `mapstructure:"enable_syntax_highlight" yaml:"enable_syntax_highlight,omitempty"`

	// CodeFolding enables fold controls on code blocks. Nil means enabled.
	CodeFolding *bool `mapstructure:"enable_code_folding" yaml:"enable_code_folding,omitempty"`

	// DetectLanguage guesses the language of untagged code blocks.
	DetectLanguage bool `mapstructure:"detect_language" yaml:"detect_language"`

	// Title is the HTML document title.
	Title string `mapstructure:"title" yaml:"title"`

	// Extensions lists the file extensions treated as Markdown.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Ignore contains glob patterns for files to skip during export.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Export configures batch export.
	Export ExportConfig `mapstructure:"export" yaml:"export"`

	// Preview configures the preview server.
	Preview PreviewConfig `mapstructure:"preview" yaml:"preview"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel export workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Force overwrites existing files without asking.
	Force bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Theme:         DefaultTheme,
		Engine:        EngineBuiltin,
		Flavor:        FlavorGFM,
		FoldKeys:      DefaultFoldKeys,
		MaxInputBytes: DefaultMaxInputBytes,
		Title:         DefaultTitle,
		Extensions:    DefaultExtensions(),
		Preview: PreviewConfig{
			Addr:         DefaultPreviewAddr,
			PollInterval: DefaultPollInterval,
		},
		Jobs: 0, // 0 means use GOMAXPROCS
	}
}

// HighlightEnabled reports whether syntax highlighting is on.
func (c *Config) HighlightEnabled() bool {
	return c.SyntaxHighlight == nil || *c.SyntaxHighlight
}

// FoldingEnabled reports whether code folding is on.
func (c *Config) FoldingEnabled() bool {
	return c.CodeFolding == nil || *c.CodeFolding
}

// Bool returns a pointer to b, for optional settings.
func Bool(b bool) *bool {
	return &b
}
