// Command repodriller acquires remote Git repositories as local clones and
// reports their metadata.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmgilman/repodriller/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
