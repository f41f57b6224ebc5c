// Package theme holds the stylesheet presets used to wrap rendered Markdown
// into a standalone HTML document.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Name identifies a theme preset.
type Name string

const (
	GitHub  Name = "github"
	Dark    Name = "dark"
	Minimal Name = "minimal"
)

// Default is the theme used when none is configured.
const Default = GitHub

// ErrUnknownTheme is returned when a theme name is not one of the presets.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is a named stylesheet preset.
type Theme struct {
	// Name is the canonical preset name.
	Name Name

	// Description is a one-line summary shown by the CLI.
	Description string

	// ChromaStyle is the chroma style used by engines that highlight with chroma directly.
	ChromaStyle string

	// palette holds the colour values substituted into the shared stylesheet.
	palette palette
}

// palette is the set of colours and metrics that differ between presets.
type palette struct {
	font       string
	fontSize   string
	lineHeight string
	maxWidth   string
	padding    string
	text       string
	background string
	heading    string
	border     string
	muted      string
	link       string
	codeBg     string
	codeText   string
	blockBg    string
	tableHead  string
	badgeBg    string
	keyword    string
	str        string
	number     string
	comment    string
	tag        string
	attr       string
	errorText  string
	errorBg    string
}

// presets lists every theme in display order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var presets = []Theme{
	{
		Name:        GitHub,
		Description: "Light theme modelled on GitHub's Markdown styling",
		ChromaStyle: "github",
		palette: palette{
			font:       "-apple-system, BlinkMacSystemFont, 'Segoe UI', 'Noto Sans', Helvetica, Arial, sans-serif",
			fontSize:   "16px",
			lineHeight: "1.6",
			maxWidth:   "1000px",
			padding:    "20px",
			text:       "#24292f",
			background: "#ffffff",
			heading:    "#1f2328",
			border:     "#d0d7de",
			muted:      "#656d76",
			link:       "#0969da",
			codeBg:     "rgba(175, 184, 193, 0.2)",
			codeText:   "#24292f",
			blockBg:    "#f6f8fa",
			tableHead:  "#f6f8fa",
			badgeBg:    "#eaeef2",
			keyword:    "#cf222e",
			str:        "#0a3069",
			number:     "#0550ae",
			comment:    "#6e7781",
			tag:        "#116329",
			attr:       "#953800",
			errorText:  "#d73a49",
			errorBg:    "#ffeef0",
		},
	},
	{
		Name:        Dark,
		Description: "Dark theme for low-light editors",
		ChromaStyle: "monokai",
		palette: palette{
			font:       "-apple-system, BlinkMacSystemFont, 'Segoe UI', 'Noto Sans', Helvetica, Arial, sans-serif",
			fontSize:   "16px",
			lineHeight: "1.6",
			maxWidth:   "1000px",
			padding:    "20px",
			text:       "#c9d1d9",
			background: "#0d1117",
			heading:    "#f0f6fc",
			border:     "#30363d",
			muted:      "#8b949e",
			link:       "#4fc3f7",
			codeBg:     "rgba(110, 118, 129, 0.4)",
			codeText:   "#e6edf3",
			blockBg:    "#161b22",
			tableHead:  "#161b22",
			badgeBg:    "#21262d",
			keyword:    "#569cd6",
			str:        "#ce9178",
			number:     "#b5cea8",
			comment:    "#6a9955",
			tag:        "#4ec9b0",
			attr:       "#9cdcfe",
			errorText:  "#ff7b72",
			errorBg:    "#3d1d20",
		},
	},
	{
		Name:        Minimal,
		Description: "Serif reading layout with muted code styling",
		ChromaStyle: "friendly",
		palette: palette{
			font:       "Georgia, 'Times New Roman', serif",
			fontSize:   "18px",
			lineHeight: "1.7",
			maxWidth:   "800px",
			padding:    "40px",
			text:       "#333333",
			background: "#ffffff",
			heading:    "#111111",
			border:     "#e0e0e0",
			muted:      "#666666",
			link:       "#1a5fb4",
			codeBg:     "#f5f5f5",
			codeText:   "#333333",
			blockBg:    "#f8f8f8",
			tableHead:  "#f5f5f5",
			badgeBg:    "#ececec",
			keyword:    "#7b3294",
			str:        "#2a7e19",
			number:     "#b35900",
			comment:    "#999999",
			tag:        "#1a5fb4",
			attr:       "#7b3294",
			errorText:  "#b00020",
			errorBg:    "#fdecea",
		},
	},
}

// Lookup returns the preset with the given name. Matching is case-insensitive.
func Lookup(name string) (Theme, error) {
	key := Name(strings.ToLower(strings.TrimSpace(name)))
	for _, preset := range presets {
		if preset.Name == key {
			return preset, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTheme, name, strings.Join(Names(), ", "))
}

// MustLookup is like Lookup but falls back to the default preset.
func MustLookup(name string) Theme {
	preset, err := Lookup(name)
	if err != nil {
		return presets[0]
	}
	return preset
}

// All returns every preset in display order.
func All() []Theme {
	out := make([]Theme, len(presets))
	copy(out, presets)
	return out
}

// Names returns the preset names in display order.
func Names() []string {
	out := make([]string, 0, len(presets))
	for _, preset := range presets {
		out = append(out, string(preset.Name))
	}
	return out
}

// Swatch returns the page background, body text and link colours as CSS hex values.
func (t Theme) Swatch() (background, text, link string) {
	p := t.palette
	return p.background, p.text, p.link
}
