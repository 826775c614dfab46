// Package main is the entry point for the ghl CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ghl/internal/api"
	"ghl/internal/cli"
)

func main() {
	// Create a context that cancels on interrupt signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create and execute CLI
	app := cli.New()
	if err := app.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var rle *api.RateLimitError
		if errors.As(err, &rle) {
			fmt.Fprintln(os.Stderr, "The API rate limit was not released after several retries; wait a moment and try again.")
		}

		os.Exit(1)
	}
}
