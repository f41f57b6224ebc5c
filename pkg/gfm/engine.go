// Package gfm renders Markdown with goldmark as an alternative to the
// built-in line renderer. It trades fold controls for full CommonMark and
// GitHub Flavored Markdown coverage, and highlights code with chroma styles
// that follow the selected theme.
package gfm

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/yaklabco/mdpreview/internal/logging"
	"github.com/yaklabco/mdpreview/pkg/render"
	"github.com/yaklabco/mdpreview/pkg/theme"
)

// Flavor identifies the Markdown dialect parsed by the engine.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Options configures an Engine.
type Options struct {
	// Logger receives conversion failures. If nil, the package default logger is used.
	Logger *log.Logger

	// Flavor is FlavorGFM or FlavorCommonMark. Anything else means FlavorGFM.
	Flavor string

	// Theme is the initial theme preset name.
	Theme string

	// Title is the document title used by Render.
	Title string

	// Script is JavaScript embedded by Render.
	Script string

	// MaxInputBytes caps the input size. Zero or negative disables the cap.
	MaxInputBytes int

	// SyntaxHighlight enables chroma highlighting of fenced code.
	SyntaxHighlight bool
}

// Engine converts Markdown to HTML with goldmark. It is safe for concurrent use.
type Engine struct {
	opts   Options
	logger *log.Logger

	mu    sync.RWMutex
	theme theme.Theme
	md    goldmark.Markdown
}

// New creates an Engine. An unknown theme name falls back to the default preset.
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	opts.Flavor = flavorOrDefault(opts.Flavor)

	preset := theme.MustLookup(opts.Theme)
	return &Engine{
		opts:   opts,
		logger: opts.Logger,
		theme:  preset,
		md:     newGoldmarkInstance(opts.Flavor, preset, opts.SyntaxHighlight),
	}
}

// Flavor returns the configured Markdown flavor.
func (e *Engine) Flavor() string {
	return e.opts.Flavor
}

// Render returns a complete HTML document for text.
func (e *Engine) Render(text string) string {
	body := e.RenderBody(text)

	e.mu.RLock()
	current := e.theme
	e.mu.RUnlock()

	return current.Wrap(theme.Page{Title: e.opts.Title, Body: body, Script: e.opts.Script})
}

// RenderBody returns the HTML fragment for text. Conversion errors are
// rendered as an error block.
func (e *Engine) RenderBody(text string) (body string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err := fmt.Errorf("goldmark: %v", recovered)
			e.logger.Error("render failed", logging.FieldEngine, "goldmark", logging.FieldError, err)
			body = render.ErrorHTML(err)
		}
	}()

	if strings.TrimSpace(text) == "" {
		return render.Placeholder()
	}

	capped, truncated := render.Truncate(text, e.opts.MaxInputBytes)

	e.mu.RLock()
	md := e.md
	e.mu.RUnlock()

	var buf bytes.Buffer
	if err := md.Convert([]byte(capped), &buf); err != nil {
		e.logger.Error("render failed", logging.FieldEngine, "goldmark", logging.FieldError, err)
		return render.ErrorHTML(err)
	}

	if truncated {
		buf.WriteString(render.TruncationNotice())
	}
	return buf.String()
}

// SetTheme selects the theme and rebuilds the highlighter with its chroma style.
func (e *Engine) SetTheme(name string) error {
	preset, err := theme.Lookup(name)
	if err != nil {
		return fmt.Errorf("set theme: %w", err)
	}

	md := newGoldmarkInstance(e.opts.Flavor, preset, e.opts.SyntaxHighlight)

	e.mu.Lock()
	e.theme = preset
	e.md = md
	e.mu.Unlock()
	return nil
}

func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorGFM
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
// Raw HTML in the source is omitted from the output.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string, preset theme.Theme, highlight bool) goldmark.Markdown {
	var extensions []goldmark.Extender

	if flavor == FlavorGFM {
		extensions = append(extensions, extension.GFM)
	}
	if highlight {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(preset.ChromaStyle),
		))
	}

	return goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
}
