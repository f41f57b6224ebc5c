package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdpreview/internal/logging"
	"github.com/yaklabco/mdpreview/pkg/config"
	"github.com/yaklabco/mdpreview/pkg/fsutil"
)

// stdinArg reads Markdown from standard input.
const stdinArg = "-"

type renderFlags struct {
	output   string
	engine   string
	flavor   string
	fragment bool
}

func newRenderCommand() *cobra.Command {
	var cfg config.Config
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render one Markdown file to HTML",
		Long:  renderLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, &cfg, flags)
		},
	}

	addEngineFlags(cmd, &cfg, &flags.engine, &flags.flavor)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write HTML to this file instead of stdout")
	cmd.Flags().BoolVar(&flags.fragment, "fragment", false, "emit the body fragment without the document wrapper")
	cmd.Flags().StringVar(&cfg.Title, "title", "", "document title")

	return cmd
}

const renderLongDescription = `Render a Markdown file into an HTML document.

Reads the named file, or standard input when the argument is "-" or
missing, and writes the HTML to standard output or to --output.

Examples:
  mdpreview render README.md                  # HTML to stdout
  mdpreview render README.md -o README.html   # Write a file
  mdpreview render --theme dark notes.md      # Pick a theme
  cat notes.md | mdpreview render --fragment  # Body only`

// addEngineFlags registers the flags shared by every rendering command.
func addEngineFlags(cmd *cobra.Command, cfg *config.Config, engine, flavor *string) {
	cmd.Flags().StringVar(&cfg.Theme, "theme", "", "theme preset: github, dark, minimal")
	cmd.Flags().StringVar(engine, "engine", "", "renderer: builtin, goldmark")
	cmd.Flags().StringVar(flavor, "flavor", "", "goldmark flavor: commonmark, gfm")
}

// applyEngineFlags copies the typed engine flags into cfg when they were set.
func applyEngineFlags(cmd *cobra.Command, cfg *config.Config, engine, flavor string) {
	if cmd.Flags().Changed("engine") {
		cfg.Engine = config.Engine(engine)
	}
	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(flavor)
	}
}

func runRender(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *renderFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	applyEngineFlags(cmd, cliCfg, flags.engine, flags.flavor)

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	source := stdinArg
	if len(args) == 1 {
		source = args[0]
	}

	var content []byte
	if source == stdinArg {
		content, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	} else {
		content, _, err = fsutil.ReadFile(ctx, source)
		if err != nil {
			return err
		}
	}

	engine := newEngine(cfg, logger, "")

	var html string
	if flags.fragment {
		html = engine.RenderBody(string(content))
	} else {
		html = engine.Render(string(content))
	}

	logger.Debug("rendered",
		logging.FieldInput, source,
		logging.FieldBytes, len(content),
		logging.FieldEngine, cfg.Engine,
	)

	if flags.output == "" {
		if isTerminal(cmd.OutOrStdout()) {
			logger.Warn("writing HTML to a terminal; use --output to write a file")
		}
		_, err := io.WriteString(cmd.OutOrStdout(), html)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if err := fsutil.WriteAtomic(ctx, flags.output, []byte(html), fsutil.DefaultFileMode); err != nil {
		return err
	}
	logger.Info("wrote HTML", logging.FieldOutput, flags.output)
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
}

