package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile     string
	logLevel    string
	logFormat   string
	workers     int
	noNameMatch bool
)

var rootCmd = &cobra.Command{
	Use:   "godedupe",
	Short: "Duplicate File Detector & Resolver",
	Long: `A CLI tool for finding duplicate files in a directory tree and
moving the redundant copies to a recoverable trash location.

Features:
  - Size bucketing so only same-size files are ever compared
  - Streaming SHA-256 content fingerprints with a bounded worker pool
  - Optional same-name matching for renamed or re-encoded copies
  - Protected directory support: files under it always survive
  - Recoverable disposal via a freedesktop.org style trash
  - Run journal with full disposal history`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "godedupe.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Processing overrides
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0,
		"Override fingerprint worker count")
	rootCmd.PersistentFlags().BoolVar(&noNameMatch, "no-name-match", false,
		"Disable the same-name duplicate heuristic (content matches only)")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel    string
	LogFormat   string
	Workers     int
	NoNameMatch bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:    logLevel,
		LogFormat:   logFormat,
		Workers:     workers,
		NoNameMatch: noNameMatch,
	}
}
