package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdpreview/internal/logging"
	"github.com/yaklabco/mdpreview/internal/preview"
	"github.com/yaklabco/mdpreview/pkg/config"
)

type previewFlags struct {
	engine    string
	flavor    string
	stateFile string
}

func newPreviewCommand() *cobra.Command {
	var cfg config.Config
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Serve a live HTML preview of a Markdown file",
		Long: `Serve a live HTML preview of a Markdown file.

The page reloads when the file changes on disk. Code block fold toggles made
in the page are kept for the life of the server, and across runs when
--state-file is set. Stop the server with Ctrl+C.

Examples:
  mdpreview preview README.md
  mdpreview preview notes.md --addr 127.0.0.1:8080 --theme dark
  mdpreview preview notes.md --state-file .notes-folds.yml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], &cfg, flags)
		},
	}

	addEngineFlags(cmd, &cfg, &flags.engine, &flags.flavor)
	cmd.Flags().StringVar(&cfg.Preview.Addr, "addr", "", "listen address (default "+config.DefaultPreviewAddr+")")
	cmd.Flags().DurationVar(&cfg.Preview.PollInterval, "poll-interval", 0, "how often the page checks for changes (default 1s)")
	cmd.Flags().StringVar(&flags.stateFile, "state-file", "", "persist fold state to this file")

	return cmd
}

func runPreview(cmd *cobra.Command, path string, cliCfg *config.Config, flags *previewFlags) error {
	ctx, logger := logging.WithFields(commandContext(cmd), logging.FieldPath, path)

	applyEngineFlags(cmd, cliCfg, flags.engine, flags.flavor)

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	engine := newEngine(cfg, logger, preview.Script(cfg.Preview.PollInterval))

	server, err := preview.New(ctx, engine, preview.Options{
		Path:      path,
		Addr:      cfg.Preview.Addr,
		StateFile: flags.stateFile,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	return server.Run(ctx)
}
