package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/tirasundara/ledger-service/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(fmt.Sprintf("Invalid configuration: %v", err))
	}
	slog.SetDefault(cfg.NewLogger())

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&shellCmd{cfg: cfg}, "ledger")
	commander.Register(&serveCmd{cfg: cfg}, "ledger")
	commander.Register(&ratesCmd{cfg: cfg}, "rates")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func exitWithError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	fmt.Fprintf(os.Stderr, "Run with -h flag for usage information.\n")
	os.Exit(1)
}
