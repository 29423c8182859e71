package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/corpusidx"
)

var flushEvery int

var buildCmd = &cobra.Command{
	Use:   "build <input-dir>",
	Short: "Scan a corpus directory and write a fresh index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := corpus.DefaultBuildConfig(dataDir)
		if flushEvery > 0 {
			cfg.FlushEvery = flushEvery
		}

		start := time.Now()
		count, err := corpus.Build(args[0], cfg)
		if err != nil {
			return err
		}

		fmt.Printf("indexed %d documents in %s\n", count, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	buildCmd.Flags().IntVar(&flushEvery, "flush-every", 0, "documents per shard flush (0 = default)")
}
