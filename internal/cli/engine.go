package cli

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdpreview/pkg/config"
	"github.com/yaklabco/mdpreview/pkg/foldstate"
	"github.com/yaklabco/mdpreview/pkg/gfm"
	"github.com/yaklabco/mdpreview/pkg/render"
)

// Engine is the rendering surface shared by both renderers.
type Engine interface {
	Render(text string) string
	RenderBody(text string) string
	SetTheme(name string) error
}

// newEngine builds the renderer selected by cfg. script is embedded in
// complete documents and may be empty.
//
//nolint:ireturn // The concrete engine depends on configuration.
func newEngine(cfg *config.Config, logger *log.Logger, script string) Engine {
	if cfg.Engine == config.EngineGoldmark {
		return gfm.New(gfm.Options{
			Logger:          logger,
			Flavor:          string(cfg.Flavor),
			Theme:           cfg.Theme,
			Title:           cfg.Title,
			Script:          script,
			MaxInputBytes:   cfg.MaxInputBytes,
			SyntaxHighlight: cfg.HighlightEnabled(),
		})
	}

	opts := render.DefaultOptions()
	opts.Logger = logger
	opts.FoldKeys = foldstate.KeyStrategy(cfg.FoldKeys)
	opts.MaxInputBytes = cfg.MaxInputBytes
	opts.Theme = cfg.Theme
	opts.Title = cfg.Title
	opts.Script = script
	opts.SyntaxHighlight = cfg.HighlightEnabled()
	opts.CodeFolding = cfg.FoldingEnabled()
	opts.DetectLanguage = cfg.DetectLanguage
	return render.New(opts)
}
