package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ssegura/abasto/internal/app"
	"github.com/ssegura/abasto/internal/config"
	"github.com/ssegura/abasto/internal/devserver"
)

func main() {
	os.Exit(run())
}

func run() int {
	dev := flag.Bool("dev", false, "serve an in-process stub API and point the client at it")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *dev {
		// The TUI owns stdout, so the stub server logs nowhere.
		quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
		addr, err := devserver.Start(ctx, quiet)
		if err != nil {
			fmt.Fprintf(os.Stderr, "abasto: start dev server: %v\n", err)
			return 1
		}
		os.Setenv("ABASTO_API_URL", "http://"+addr)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "abasto: %v\n", err)
		return 1
	}

	if err := app.Run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "abasto: %v\n", err)
		return 1
	}
	return 0
}
