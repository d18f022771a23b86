// ABOUTME: Entry point for the tally CLI
// ABOUTME: Command-line client for the Tally benefits portal proxy

package main

import (
	"fmt"
	"os"

	"github.com/markalston/tally/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
