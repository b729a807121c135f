package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/probekit/pingdump/pkg/datadir"
)

var (
	flagConfig  string
	flagDataDir string
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pingdump",
	Short: "Export stabping probe logs to CSV or JSON",
	Long: `pingdump reads the binary TCP-ping log written by stabping and exports
it in tabular form, one row per sample timestamp and one column per
probed address. Diagnostics go to stderr so CSV on stdout stays clean.`,
	SilenceUsage: true,
}

func init() {
	// All warnings and progress messages go to stderr; stdout is
	// reserved for exported data.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to stabping_config.json")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (skips the search path)")
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveDataDir applies the --data-dir override, then falls back to the
// stabping search path.
func resolveDataDir() (string, error) {
	if flagDataDir != "" {
		return datadir.Verify(flagDataDir)
	}
	return datadir.Find(flagConfig)
}
