package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"deskCalc/internal/app"
)

func main() {
	cfg, err := app.LoadCfg()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg).Run(ctx); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}
