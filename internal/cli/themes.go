package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdpreview/internal/ui/pretty"
	"github.com/yaklabco/mdpreview/pkg/theme"
)

func newThemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the available theme presets",
		Long: `List the available theme presets. The theme selected by the resolved
configuration is marked with "*".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			formatter := pretty.NewTableFormatter(colorStyles(cmd), terminalWidth(cmd))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatThemes(theme.All(), cfg.Theme))
			return nil
		},
	}
}
