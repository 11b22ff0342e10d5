package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/tirasundara/ledger-service/internal/config"
	"github.com/tirasundara/ledger-service/internal/domain"
	"github.com/tirasundara/ledger-service/internal/repository"
)

// rateFlags are shared by every command that needs the rate table
type rateFlags struct {
	file     string
	format   string
	jsonPath string
}

func (r *rateFlags) register(f *flag.FlagSet, cfg *config.Config) {
	f.StringVar(&r.file, "rates", cfg.RatesFile, "Path to the exchange rate table (JSON or CSV)")
	f.StringVar(&r.format, "rates-format", "", "Rate file format: json or csv (inferred from the extension by default)")
	f.StringVar(&r.jsonPath, "rates-jsonpath", cfg.RatesJSONPath, "JSONPath selecting the rate table inside the JSON document")
}

// load reads the configured rate table. A missing file falls back to the
// built-in rates.
func (r *rateFlags) load(cfg *config.Config) (*repository.RateTable, error) {
	format := r.format
	if format == "" {
		format = cfg.RatesFormat
		if r.file != cfg.RatesFile {
			format = config.InferRatesFormat(r.file)
		}
	}

	if _, err := os.Stat(r.file); errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Rate file not found, using built-in rates", "file", r.file)
		return repository.NewRateTable(repository.DefaultRates())
	}

	switch format {
	case config.FormatCSV:
		return repository.LoadCSVRates(r.file)
	case config.FormatJSON:
		return repository.LoadJSONRates(r.file, r.jsonPath)
	default:
		return nil, fmt.Errorf("unsupported rates format %q", format)
	}
}

type ratesCmd struct {
	cfg   *config.Config
	rates rateFlags
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "prints the loaded exchange rate table" }
func (*ratesCmd) Usage() string {
	return `ledger rates [-rates <file>] [-rates-format json|csv] [-rates-jsonpath <expr>]

  Loads the exchange rate table the same way shell and serve do and prints
  every base/target multiplier.

`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	c.rates.register(f, c.cfg)
}

func (c *ratesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	table, err := c.rates.load(c.cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load rates: %v\n", err)
		return subcommands.ExitFailure
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BASE\tTARGET\tRATE")
	for _, base := range domain.SupportedCurrencies() {
		for _, target := range domain.SupportedCurrencies() {
			rate, ok := table.Rate(base, target)
			if !ok {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", base, target, rate)
		}
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
