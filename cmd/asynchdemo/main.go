// Command asynchdemo wires a small message pipeline out of composed
// channels: a producer broadcasts through a merge of mailboxes, and a
// consumer races the same merge, through a filter, against an idle timer.
package main

import (
	"fmt"
	"os"
)

var (
	// Set via ldflags at build time
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
