package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tirasundara/ledger-service/internal/config"
	"github.com/tirasundara/ledger-service/internal/console"
	"github.com/tirasundara/ledger-service/internal/report"
	"github.com/tirasundara/ledger-service/internal/repository"
	"github.com/tirasundara/ledger-service/internal/service"
)

type shellCmd struct {
	cfg    *config.Config
	rates  rateFlags
	format string
	pretty bool
}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "runs the interactive ledger console" }
func (*shellCmd) Usage() string {
	return `ledger shell [-format text|json] [-rates <file>]

  Starts an interactive session on stdin/stdout. Create or log in as a user,
  then deposit, withdraw, send, exchange and inspect balances and history.
  The ledger lives in memory and is lost when the session ends.

`
}

func (c *shellCmd) SetFlags(f *flag.FlagSet) {
	c.rates.register(f, c.cfg)
	f.StringVar(&c.format, "format", "text", "Output format for balances and history: text or json")
	f.BoolVar(&c.pretty, "pretty", true, "Pretty print JSON output")
}

func (c *shellCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var formatter report.Formatter
	switch c.format {
	case "text":
		formatter = report.NewTextFormatter()
	case "json":
		formatter = report.NewJSONFormatter(c.pretty)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported output format: %s\n", c.format)
		return subcommands.ExitUsageError
	}

	rates, err := c.rates.load(c.cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load rates: %v\n", err)
		return subcommands.ExitFailure
	}

	ledger := service.NewLedgerService(
		repository.NewInMemoryAccountRepository(),
		rates,
		service.WithLogger(c.cfg.NewConsoleLogger(os.Stderr)),
	)
	session := console.NewSession(ledger, formatter, os.Stdin, os.Stdout)

	if err := session.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
