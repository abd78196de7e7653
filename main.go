package main

import (
	"arkiv/cmd"
	L "arkiv/logger"
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	err := cmd.Execute(ctx, os.Args[:])

	select {
	case <-ctx.Done():
		L.Debug("Command execution was aborted.")
	default:
		L.Debug("Command execution complete.")
	}
	if err != nil {
		L.Panic(err)
	}
	os.Exit(0)
}
