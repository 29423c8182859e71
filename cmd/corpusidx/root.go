package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "corpusidx",
	Short: "Build and query an inverted index over a captured web corpus",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "./data", "directory holding the index, doc map, and offset table")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(queryCmd)
}
