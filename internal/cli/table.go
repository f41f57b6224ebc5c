package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdpreview/pkg/scaffold"
)

// ErrInvalidArgument is returned for malformed positional arguments.
var ErrInvalidArgument = errors.New("invalid argument")

func newTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "table <rows> <cols>",
		Short: "Print a Markdown table skeleton",
		Long: fmt.Sprintf(`Print a Markdown table skeleton with a header row, a separator row and
rows-1 empty data rows. Rows range from 1 to %d, columns from 1 to %d.

Examples:
  mdpreview table 3 3
  mdpreview table 5 2 >> notes.md`, scaffold.MaxTableRows, scaffold.MaxTableCols),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := parseCount("rows", args[0])
			if err != nil {
				return err
			}
			cols, err := parseCount("cols", args[1])
			if err != nil {
				return err
			}

			skeleton, err := scaffold.Table(rows, cols)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), skeleton)
			return err
		},
	}
}

func parseCount(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", ErrInvalidArgument, name, value)
	}
	return n, nil
}
