package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/kapu/kokkai-giin-go/cmd/giin/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	commands.ExecuteContext(ctx)
}
