package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vseledkin/paperlayout/logging"
)

var (
	verbose    bool
	configPath string
	logger     logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "layoutctl",
	Short: "Drive the citation-graph force-directed layout engine",
	Long: `layoutctl loads a paper snapshot, builds the multi-level layout
hierarchy, runs the Barnes-Hut force iteration to convergence, and prints
the resulting node positions.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if verbose {
			level = logging.LevelDebug
		}
		logger = logging.NewDefaultLogger(level, os.Stdout)
	},
}

// Execute runs the root command, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a layoutctl config file (defaults applied if omitted)")
}
