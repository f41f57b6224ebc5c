// Package render converts Markdown text into HTML.
//
// The renderer is line oriented: each line is classified by its leading
// characters and dispatched to a handler for headings, lists, blockquotes,
// rules, tables, fenced code blocks or paragraphs. Inline formatting runs
// over a sequence of typed segments so that escaping applies exactly once to
// user text and never to markup the renderer inserted.
//
// Fenced code blocks carry a fold control. Fold state lives in a
// foldstate.Store owned by the caller and survives re-renders.
package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdpreview/internal/logging"
	"github.com/yaklabco/mdpreview/pkg/foldstate"
	"github.com/yaklabco/mdpreview/pkg/theme"
)

// DefaultMaxInputBytes is the input size above which text is truncated.
const DefaultMaxInputBytes = 1_000_000

const (
	placeholderHTML  = `<p class="placeholder">Start writing Markdown to see the preview.</p>` + "\n"
	truncationNotice = `<p class="truncation-notice">… (content truncated)</p>` + "\n"
)

// ErrUnknownTheme is returned by SetTheme for names outside the preset list.
var ErrUnknownTheme = theme.ErrUnknownTheme

// Options configures a Renderer. Start from DefaultOptions.
type Options struct {
	// Logger receives debug output and recovered render failures.
	// If nil, the package default logger is used.
	Logger *log.Logger

	// Folds holds fold state across renders. If nil, the renderer owns a new store.
	Folds *foldstate.Store

	// FoldKeys selects how code block ids are derived.
	FoldKeys foldstate.KeyStrategy

	// MaxInputBytes caps the input size. Zero or negative disables the cap.
	MaxInputBytes int

	// Theme is the initial theme preset name.
	Theme string

	// Title is the document title used by Render.
	Title string

	// Script is JavaScript embedded by Render. Empty means no script element.
	Script string

	// SyntaxHighlight enables per-language highlighting of code lines.
	SyntaxHighlight bool

	// CodeFolding enables the fold control on code blocks.
	// When false every block is rendered expanded.
	CodeFolding bool

	// DetectLanguage guesses the language of code blocks without a tag.
	DetectLanguage bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		FoldKeys:        foldstate.KeyContent,
		MaxInputBytes:   DefaultMaxInputBytes,
		Theme:           string(theme.Default),
		Title:           theme.DefaultTitle,
		SyntaxHighlight: true,
		CodeFolding:     true,
	}
}

// Renderer converts Markdown into HTML. It is safe for concurrent use.
type Renderer struct {
	opts   Options
	logger *log.Logger
	folds  *foldstate.Store

	mu    sync.RWMutex
	theme theme.Theme

	// convert produces the body for already-capped input.
	convert func(text string) string
}

// New creates a Renderer from opts. An unknown theme name falls back to the default preset.
func New(opts Options) *Renderer {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Folds == nil {
		opts.Folds = foldstate.New()
	}
	if !opts.FoldKeys.IsValid() {
		opts.FoldKeys = foldstate.KeyContent
	}

	renderer := &Renderer{
		opts:   opts,
		logger: opts.Logger,
		folds:  opts.Folds,
		theme:  theme.MustLookup(opts.Theme),
	}
	renderer.convert = renderer.convertBody
	return renderer
}

// Render returns a complete HTML document for text.
func (r *Renderer) Render(text string) string {
	body := r.RenderBody(text)

	r.mu.RLock()
	current := r.theme
	r.mu.RUnlock()

	return current.Wrap(theme.Page{
		Title:  r.opts.Title,
		Body:   body,
		Script: r.opts.Script,
	})
}

// RenderBody returns the HTML fragment for text without the document wrapper.
// It never fails: internal errors are rendered as an error block.
func (r *Renderer) RenderBody(text string) (body string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err := panicError(recovered)
			r.logger.Error("render failed", logging.FieldError, err)
			body = ErrorHTML(err)
		}
	}()

	if strings.TrimSpace(text) == "" {
		return placeholderHTML
	}

	capped, truncated := Truncate(text, r.opts.MaxInputBytes)
	if truncated {
		r.logger.Debug("input truncated",
			logging.FieldBytes, len(text),
			logging.FieldLimit, r.opts.MaxInputBytes,
		)
	}

	body = r.convert(capped)
	if truncated {
		body += truncationNotice
	}
	return body
}

// ToggleFold flips the fold state of the code block with the given id and
// returns true if the block is now collapsed. Unknown ids become collapsed.
func (r *Renderer) ToggleFold(id string) bool {
	collapsed := r.folds.Toggle(id)
	r.logger.Debug("fold toggled", logging.FieldBlockID, id, logging.FieldCollapsed, collapsed)
	return collapsed
}

// Folds returns the fold state store used by the renderer.
func (r *Renderer) Folds() *foldstate.Store {
	return r.folds
}

// SetTheme selects the theme used by Render. Unknown names leave the
// current theme unchanged and return an error wrapping ErrUnknownTheme.
func (r *Renderer) SetTheme(name string) error {
	preset, err := theme.Lookup(name)
	if err != nil {
		return fmt.Errorf("set theme: %w", err)
	}

	r.mu.Lock()
	r.theme = preset
	r.mu.Unlock()

	r.logger.Debug("theme changed", logging.FieldTheme, preset.Name)
	return nil
}

// Theme returns the current theme.
func (r *Renderer) Theme() theme.Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.theme
}

// Dispose drops all fold state.
func (r *Renderer) Dispose() {
	r.folds.Clear()
}

// Truncate cuts text to at most limit bytes without splitting a UTF-8
// sequence. A limit of zero or less disables truncation.
func Truncate(text string, limit int) (string, bool) {
	if limit <= 0 || len(text) <= limit {
		return text, false
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut], true
}

// Placeholder returns the fragment shown for empty input.
func Placeholder() string {
	return placeholderHTML
}

// TruncationNotice returns the fragment appended to truncated output.
func TruncationNotice() string {
	return truncationNotice
}

// ErrorHTML returns a visible error block describing err.
func ErrorHTML(err error) string {
	return `<div class="render-error"><strong>Render error:</strong> ` + escapeHTML(err.Error()) + "</div>\n"
}

func panicError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return err
	}
	return errors.New(fmt.Sprint(recovered))
}

// convertBody runs the line classifier over text.
func (r *Renderer) convertBody(text string) string {
	conv := &converter{
		opts:   &r.opts,
		logger: r.logger,
		folds:  r.folds,
		keyer:  foldstate.NewKeyer(r.opts.FoldKeys),
		lines:  splitLines(text),
	}
	return conv.run()
}
