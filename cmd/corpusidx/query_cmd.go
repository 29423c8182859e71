package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/corpusidx"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Evaluate a query against a previously built index",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ev, err := corpus.Open(corpus.DefaultBuildConfig(dataDir), corpus.DefaultQueryConfig())
		if err != nil {
			return err
		}

		if len(args) == 1 {
			return runOneQuery(ev, args[0])
		}
		return runQueryREPL(ev)
	},
}

func runOneQuery(ev *corpus.Evaluator, text string) error {
	start := time.Now()
	results, err := ev.Query(text)
	if err != nil {
		return err
	}
	printResults(results, time.Since(start))
	return nil
}

// runQueryREPL reads one query per line from stdin until EOF or "exit",
// printing ranked results after each — the in-scope CLI analogue of a
// console read-query-print loop.
func runQueryREPL(ev *corpus.Evaluator) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("enter a query (type 'exit' to quit):")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" {
			return nil
		}

		start := time.Now()
		results, err := ev.Query(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		printResults(results, time.Since(start))
	}
}

func printResults(results []corpus.Result, elapsed time.Duration) {
	for i, r := range results {
		fmt.Printf("%2d. %.4f  %s\n", i+1, r.Score, r.URL)
	}
	fmt.Printf("(%d results in %s)\n", len(results), elapsed.Round(time.Microsecond))
}
