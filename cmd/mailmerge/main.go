// Command mailmerge sends one personalized email per CSV row.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/mailmerge/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.New().Execute(ctx, os.Args[1:]); err != nil {
		cancel()
		os.Exit(1)
	}
}
