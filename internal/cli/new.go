package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdpreview/internal/logging"
	"github.com/yaklabco/mdpreview/pkg/fsutil"
	"github.com/yaklabco/mdpreview/pkg/scaffold"
)

type newFlags struct {
	kind  string
	title string
	force bool
}

func newNewCommand() *cobra.Command {
	flags := &newFlags{}

	kinds := make([]string, 0, len(scaffold.Kinds()))
	for _, kind := range scaffold.Kinds() {
		kinds = append(kinds, string(kind))
	}

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a Markdown file from a template",
		Long: `Create a Markdown file from a template. ".md" is appended to the name
unless it already ends in a Markdown extension.

Examples:
  mdpreview new notes                 # notes.md with a heading
  mdpreview new README --kind readme  # Project README skeleton
  mdpreview new guide --kind doc      # Document with contents and sections`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.kind, "kind", "k", string(scaffold.KindEmpty),
		"template: "+strings.Join(kinds, ", "))
	cmd.Flags().StringVar(&flags.title, "title", "", "document title (default: the file name)")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file")

	return cmd
}

func runNew(cmd *cobra.Command, name string, flags *newFlags) error {
	logger := logging.FromContext(commandContext(cmd))

	path := scaffold.FileName(name)
	title := flags.title
	if title == "" {
		title = scaffold.Title(path)
	}

	content, err := scaffold.Document(scaffold.Kind(flags.kind), title, time.Now())
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !flags.force {
		return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidArgument, path)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), path, []byte(content), fsutil.DefaultFileMode); err != nil {
		return err
	}

	logger.Info("created Markdown file", logging.FieldPath, path)
	return nil
}
