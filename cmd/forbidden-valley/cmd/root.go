// Package cmd provides CLI commands for forbidden-valley.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pigeonworks-llc/forbidden-valley/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool

	// appConfig is loaded once before any subcommand runs.
	appConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "forbidden-valley",
	Short: "Borrow money and watch the interest pile up",
	Long: `forbidden-valley is a text-menu loan simulation.

You pick a starting date and a loan, watch daily compound interest
accrue on it, then deposit, withdraw and pay the loan down from a menu.

It supports:
- Scenario files (YAML) for the daily rate, warm-up days and loan options
- A SQLite journal of every session event
- Beancount export of a finished session

Example:
  forbidden-valley play
  forbidden-valley play --scenario hard.yaml --journal journal.db --export
  forbidden-valley history --journal journal.db`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(getConfigFile())
		exitOnError(err, "failed to load configuration")
		appConfig = cfg

		// Setup logging
		logLevel := slog.LevelInfo
		if debug || cfg.Debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
