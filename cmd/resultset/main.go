package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alevsk/resultset/internal/config"
	"github.com/alevsk/resultset/internal/logger"
)

var (
	configPath string
	debug      bool
	rootDir    string
)

var cfg = &config.Config{}

var rootCmd = &cobra.Command{
	Use:   "resultset",
	Short: "resultset - golden-file snapshot tooling",
	Long: `resultset manages the JSON snapshots (resultsets) produced by
golden-file test assertions: listing stored snapshots, reviewing and
approving pending actual-value dumps, and cleaning diagnostic artifacts.`,
	SilenceErrors: true, // We'll handle error printing ourselves
	SilenceUsage:  true, // We'll handle usage printing ourselves
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		// Load configuration from file or environment variable
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}

		// flags override config due to highest precedence
		if debug {
			cfg.Debug = true
		}
		if rootDir != "" {
			cfg.Snapshot.RootDir = rootDir
		}

		// Initialize logger
		logger.Init(cfg)

		// Print configuration source
		if configPath != "" || os.Getenv(config.ResultsetConfigPathEnvVar) != "" {
			logger.Debug().Msgf("Using config file: %s", configPath)
		} else {
			logger.Debug().Msg("Using default configuration")
		}

		return nil
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: config.yml in current directory)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging and additional debug information")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "project root directory (default: working directory)")

	// Add commands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(serveCmd)

	// Add cobra completion command
	rootCmd.AddCommand(completionCmd)

	// Add version command to root command
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Custom error handling to show usage before error
	if err := rootCmd.Execute(); err != nil {
		// Get the most recent command
		cmd := rootCmd
		if c, err2 := rootCmd.ExecuteC(); err2 == nil {
			cmd = c
		}
		// Show usage first
		fmt.Println(cmd.UsageString())
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
