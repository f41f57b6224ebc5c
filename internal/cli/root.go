// Package cli provides the Cobra command structure for mdpreview.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdpreview/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdpreview command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdpreview",
		Short: "Render Markdown to HTML and preview it live",
		Long: `mdpreview renders Markdown into themed HTML documents.

It ships a line-oriented renderer with foldable, highlighted code blocks and
an optional goldmark engine for full CommonMark and GitHub Flavored Markdown.
Render single files, export whole trees, or serve a live preview that reloads
as you edit.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newPreviewCommand())
	rootCmd.AddCommand(newTableCommand())
	rootCmd.AddCommand(newNewCommand())
	rootCmd.AddCommand(newThemesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
