package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/tirasundara/ledger-service/internal/config"
	"github.com/tirasundara/ledger-service/internal/repository"
	"github.com/tirasundara/ledger-service/internal/server"
	"github.com/tirasundara/ledger-service/internal/service"
)

type serveCmd struct {
	cfg   *config.Config
	rates rateFlags
	addr  string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serves the ledger over HTTP" }
func (*serveCmd) Usage() string {
	return `ledger serve [-addr <host:port>] [-rates <file>]

  Serves the ledger JSON API until interrupted. State is kept in memory.

`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	c.rates.register(f, c.cfg)
	f.StringVar(&c.addr, "addr", c.cfg.HTTPAddr, "Address to listen on")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rates, err := c.rates.load(c.cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load rates: %v\n", err)
		return subcommands.ExitFailure
	}

	logger := slog.Default()
	ledger := service.NewLedgerService(repository.NewInMemoryAccountRepository(), rates, service.WithLogger(logger))
	app := server.New(ledger, rates, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", c.addr)
		errCh <- app.Listen(c.addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server stopped", "error", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		return subcommands.ExitFailure
	}

	slog.Info("Server exited")
	return subcommands.ExitSuccess
}
