package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"mini-server/application/http/server"
	"mini-server/application/router"
	"mini-server/application/todo"
	"mini-server/transport/tcp"

	"github.com/benbjohnson/clock"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "listen address (host:port)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	clk := clock.New()

	lis, err := tcp.Listen(*addr)
	if err != nil {
		logger.Error("failed to listen", "addr", *addr, "error", err)
		os.Exit(1)
	}

	store := todo.NewStore(clk)
	handlers := todo.NewHandlers(store, clk, *addr)

	r := router.New()
	handlers.Register(r)

	srv := server.New(lis, logger, clk, r, server.Options{})
	srv.Start()
	logger.Info("serving", "addr", lis.Addr().String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	if err := srv.Close(); err != nil {
		logger.Error("error during shutdown", "error", err)
		os.Exit(1)
	}
}
