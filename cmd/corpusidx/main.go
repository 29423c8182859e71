// Command corpusidx builds and queries an inverted index over a captured
// web corpus: `corpusidx build <input-dir>` runs the offline pipeline,
// `corpusidx query [text]` evaluates one query (or reads a REPL loop from
// stdin when no text is given).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
