// cmd/websearch/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/law-makers/websearch/internal/cli"
)

func main() {
	// Cancel in-flight searches on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute CLI (app initialization happens inside cli.ExecuteContext)
	cli.ExecuteContext(ctx)
}
