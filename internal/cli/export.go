package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdpreview/internal/logging"
	"github.com/yaklabco/mdpreview/pkg/config"
	"github.com/yaklabco/mdpreview/pkg/reporter"
	"github.com/yaklabco/mdpreview/pkg/runner"
)

type exportFlags struct {
	engine  string
	flavor  string
	ignore  []string
	format  string
	compact bool
	dryRun  bool
	verbose bool
}

func newExportCommand() *cobra.Command {
	var cfg config.Config
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export [paths...]",
		Short: "Export Markdown files to HTML",
		Long:  exportLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, &cfg, flags)
		},
	}

	addEngineFlags(cmd, &cfg, &flags.engine, &flags.flavor)
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&cfg.Export.OutDir, "out-dir", "", "write HTML under this directory, mirroring the source layout")
	cmd.Flags().BoolVar(&cfg.Export.Fragment, "fragment", false, "write body fragments instead of complete documents")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "render without writing any files")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list every file and print a detailed summary (same as --format table)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, table, json, summary")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")

	return cmd
}

const exportLongDescription = `Export Markdown files to HTML.

By default, exports all .md and .markdown files in the current directory and
subdirectories, writing each <name>.html beside its source. Files whose HTML
is already up to date are left untouched.

Examples:
  mdpreview export                        # Export the current directory
  mdpreview export docs/ --out-dir site   # Mirror docs/ into site/
  mdpreview export --ignore 'drafts/**'   # Skip drafts
  mdpreview export --dry-run -v           # Show what would be written
  mdpreview export --format json          # Machine-readable results`

func runExport(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *exportFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return errors.Join(ErrInvalidArgument, err)
	}
	if flags.verbose && format == reporter.FormatText {
		format = reporter.FormatTable
	}

	applyEngineFlags(cmd, cliCfg, flags.engine, flags.flavor)
	if len(flags.ignore) > 0 {
		cliCfg.Ignore = flags.ignore
	}

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	exporter := runner.New(newEngine(cfg, logger, ""))
	exporter.Logger = logger

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir
	runOpts.DryRun = flags.dryRun

	logger.Debug("starting export",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := exporter.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("export run failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: true,
		Compact:     flags.compact,
		TermWidth:   terminalWidth(cmd),
		WorkingDir:  workDir,
	})
	if err != nil {
		return errors.Join(ErrInvalidArgument, err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrExportFailed
	}
	return nil
}

// terminalWidth returns the width of cmd's output terminal, or zero when it is not one.
func terminalWidth(cmd *cobra.Command) int {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
	if err != nil {
		return 0
	}
	return width
}
