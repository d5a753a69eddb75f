package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/godedupe/internal/config"
	"github.com/dbsmedya/godedupe/internal/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Validate checks the configuration file for syntax errors and
invalid values.

Checks performed:
  - YAML syntax and field types
  - Protected directory existence
  - Worker count and hash buffer bounds
  - Logging level and format values

Example:
  godedupe validate --config godedupe.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Workers, overrides.NoNameMatch)

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting validation checks...")

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed:\n%w", err)
	}

	cmd.Printf("Configuration '%s' is valid.\n", configFile)
	return nil
}
