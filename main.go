package main

import (
	"fmt"
	"os"

	"github.com/touchbind/touchbind/cli"
)

func main() {
	// long-running commands (run, debug-events) install their own
	// SIGINT/SIGTERM handling and exit their loops cooperatively, so
	// main only has to report the final error state
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
