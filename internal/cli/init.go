package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdpreview/internal/logging"
	"github.com/yaklabco/mdpreview/pkg/config"
	"github.com/yaklabco/mdpreview/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdpreview configuration file",
		Long: `Create a new .mdpreview.yml configuration file in the current directory
with sensible defaults. The file can be customized to pick a theme, switch
the rendering engine, and configure export and preview options.

When the file exists and the terminal is interactive, init asks before
overwriting it.

Examples:
  mdpreview init                      Create minimal .mdpreview.yml
  mdpreview init --full               Create full config with every setting documented
  mdpreview init --format json        Create .mdpreview.json instead
  mdpreview init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every setting documented")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateYAML, "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .mdpreview.yml or .mdpreview.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	// Validate format
	if flags.format != config.TemplateYAML && flags.format != config.TemplateJSON {
		return fmt.Errorf("%w: format %q must be yaml or json", ErrInvalidArgument, flags.format)
	}

	// Determine output path
	outputPath := flags.output
	if outputPath == "" {
		if flags.format == config.TemplateJSON {
			outputPath = ".mdpreview.json"
		} else {
			outputPath = ".mdpreview.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		switch {
		case flags.force:
			logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
		case isTerminalReader(cmd.InOrStdin()):
			if !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("%s exists. Overwrite?", outputPath)) {
				logger.Info("left existing file unchanged", logging.FieldPath, outputPath)
				return nil
			}
		default:
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidArgument, outputPath)
		}
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template documents every setting")
	}

	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'mdpreview themes' to see the available themes")

	return nil
}

// isTerminalReader reports whether r is an interactive terminal.
func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
}

// confirm asks a yes/no question, defaulting to no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
