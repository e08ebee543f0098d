// Command gsjoin merges segmented GoPro 360 recordings. It parses flags and
// the optional config file, validates paths and tools, and either runs the
// system check (--check) or the join pipeline over one input directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version and commit are set at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the root command with args and returns the process exit
// code. Errors that occur before the logger exists are printed here.
func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var code int
	cmd := newRootCommand(&code)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "gsjoin: %v\n", err)
		}
		return 1
	}
	return code
}
