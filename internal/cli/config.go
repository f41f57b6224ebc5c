package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdpreview/internal/configloader"
	"github.com/yaklabco/mdpreview/internal/logging"
	"github.com/yaklabco/mdpreview/internal/ui/pretty"
	"github.com/yaklabco/mdpreview/pkg/config"
)

// ErrConfig marks failures to load or validate configuration.
var ErrConfig = errors.New("failed to load configuration")

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the configuration layers with cliCfg on top.
// Only flags the user actually set should be present in cliCfg.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(commandContext(cmd))

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	// Get working directory for config discovery.
	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldTheme, cfg.Theme,
		logging.FieldEngine, cfg.Engine,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, workDir, nil
}

// colorMode returns the value of the --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return pretty.ColorAuto
	}
	return mode
}

// colorStyles returns output styles for the --color flag and cmd's output writer.
func colorStyles(cmd *cobra.Command) *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))
}
