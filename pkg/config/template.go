package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdpreview/pkg/theme"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateJSON = "json"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every setting and lists the theme presets.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var content []byte
	if opts.Full {
		content = generateFullTemplate()
	} else {
		content = generateMinimalTemplate()
	}

	if opts.Format == TemplateJSON {
		return templateToJSON(content)
	}
	return content, nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# Theme preset: github, dark or minimal
theme: github

# Renderer: builtin (fold controls) or goldmark (full CommonMark/GFM)
engine: builtin

# Guess the language of code blocks without a tag
# detect_language: false

# File patterns to skip during export (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)
}

// generateFullTemplate creates a template with every setting documented.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(` - Full Template
#
# Every setting is shown with its default value.

# Theme preset. Available presets:
`)
	for _, preset := range theme.All() {
		fmt.Fprintf(&buf, "#   %s: %s\n", preset.Name, wrapComment(preset.Description, commentWrapWidth))
	}

	fmt.Fprintf(&buf, `theme: %s

# Renderer: builtin (fold controls) or goldmark (full CommonMark/GFM)
engine: %s

# Markdown flavor for the goldmark engine: commonmark or gfm
flavor: %s

# Code block ids: content (stable across edits above the block) or positional
fold_keys: %s

# Input above this size is truncated (0 disables the cap)
max_input_bytes: %d

# Highlight code blocks
enable_syntax_highlight: true

# Show fold controls on code blocks
enable_code_folding: true

# Guess the language of code blocks without a tag
detect_language: false

# HTML document title
title: %q

# File extensions treated as Markdown
extensions:
  - ".md"
  - ".markdown"

# File patterns to skip during export (glob patterns)
ignore:
  - "vendor/**"
  - "node_modules/**"
  - ".git/**"

# Batch export
export:
  # Output directory (empty writes HTML beside each source)
  out_dir: ""
  # Write body fragments instead of complete documents
  fragment: false

# Live preview server
preview:
  addr: %q
  poll_interval: %s
`, DefaultTheme, EngineBuiltin, FlavorGFM, DefaultFoldKeys, DefaultMaxInputBytes,
		DefaultTitle, DefaultPreviewAddr, DefaultPollInterval)

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n#     ")
}

// templateToJSON converts a YAML template to JSON. Comments are dropped.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	values := map[string]any{}
	if err := yaml.Unmarshal(yamlContent, &values); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdpreview configuration
# See: https://github.com/yaklabco/mdpreview`
}
