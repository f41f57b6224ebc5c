package cli

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdpreview/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit hash, build date and toolchain of mdpreview.
With --short only the version string is printed, for use in scripts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), info.Version); err != nil {
					return fmt.Errorf("write version: %w", err)
				}
				return nil
			}

			printer := log.NewWithOptions(cmd.OutOrStdout(), log.Options{Level: log.InfoLevel})
			printer.Info("mdpreview",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
				logging.FieldGo, runtime.Version(),
				logging.FieldPlatform, runtime.GOOS+"/"+runtime.GOARCH,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version string")
	return cmd
}
