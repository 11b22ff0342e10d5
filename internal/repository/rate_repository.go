package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"github.com/tirasundara/ledger-service/internal/domain"
	"github.com/tirasundara/ledger-service/pkg/fileutil"
)

var rateHeaderFields = []string{"base", "target", "rate"}

// Rates maps a base currency to the multipliers converting it to each target
type Rates map[domain.Currency]map[domain.Currency]decimal.Decimal

// RateTable implements the RateSource interface over a fixed table of
// multipliers loaded once at startup
type RateTable struct {
	rates Rates
}

// NewRateTable validates rates and creates a RateTable. Every supported
// currency must have a positive rate to every other supported currency.
func NewRateTable(rates Rates) (*RateTable, error) {
	table := make(Rates, len(rates))

	for _, base := range domain.SupportedCurrencies() {
		table[base] = make(map[domain.Currency]decimal.Decimal)

		for _, target := range domain.SupportedCurrencies() {
			if base == target {
				continue
			}

			rate, ok := rates[base][target]
			if !ok {
				return nil, fmt.Errorf("%w: %s->%s", domain.ErrRateNotFound, base, target)
			}
			if !rate.IsPositive() {
				return nil, fmt.Errorf("rate %s->%s must be positive, got %s", base, target, rate)
			}

			table[base][target] = rate
		}
	}

	return &RateTable{rates: table}, nil
}

// DefaultRates returns the built-in table used when no rate file is configured
func DefaultRates() Rates {
	return Rates{
		domain.PLN: {domain.EUR: decimal.RequireFromString("0.22"), domain.USD: decimal.RequireFromString("0.23")},
		domain.EUR: {domain.PLN: decimal.RequireFromString("4.58"), domain.USD: decimal.RequireFromString("1.07")},
		domain.USD: {domain.PLN: decimal.RequireFromString("4.26"), domain.EUR: decimal.RequireFromString("0.93")},
	}
}

// Convert implements the RateSource interface
func (t *RateTable) Convert(base, target domain.Currency, amount decimal.Decimal) (decimal.Decimal, error) {
	if base == target {
		return decimal.Decimal{}, domain.ErrInvalidExchange
	}

	rate, ok := t.Rate(base, target)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s->%s", domain.ErrRateNotFound, base, target)
	}

	return amount.Mul(rate), nil
}

// Rate returns the multiplier converting base into target
func (t *RateTable) Rate(base, target domain.Currency) (decimal.Decimal, bool) {
	rate, ok := t.rates[base][target]
	return rate, ok
}

// Rates returns a copy of the whole table
func (t *RateTable) Rates() Rates {
	out := make(Rates, len(t.rates))
	for base, targets := range t.rates {
		out[base] = make(map[domain.Currency]decimal.Decimal, len(targets))
		for target, rate := range targets {
			out[base][target] = rate
		}
	}
	return out
}

// LoadJSONRates reads a table shaped like {"PLN": {"EUR": 0.22, ...}, ...}.
// If selector is not empty it is a JSONPath expression locating the table
// inside a larger document, e.g. "$.rates".
func LoadJSONRates(path, selector string) (*RateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rate file: %w", err)
	}

	return ParseJSONRates(data, selector)
}

// ParseJSONRates is LoadJSONRates over an in-memory document
func ParseJSONRates(data []byte, selector string) (*RateTable, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // keep rates exact until they become decimals

	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding rate file: %w", err)
	}

	if selector != "" {
		selected, err := jsonpath.Get(selector, doc)
		if err != nil {
			return nil, fmt.Errorf("selecting rates with %q: %w", selector, err)
		}
		doc = selected
	}

	raw, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rate table must be a JSON object, got %T", doc)
	}

	rates := make(Rates)
	for baseCode, targets := range raw {
		base, err := domain.ParseCurrency(baseCode)
		if err != nil {
			slog.Warn("Skipping rates for unsupported currency", "currency", baseCode)
			continue
		}

		targetMap, ok := targets.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("rates for %s must be a JSON object, got %T", base, targets)
		}

		rates[base] = make(map[domain.Currency]decimal.Decimal)
		for targetCode, value := range targetMap {
			target, err := domain.ParseCurrency(targetCode)
			if err != nil {
				slog.Warn("Skipping rate to unsupported currency", "base", base, "target", targetCode)
				continue
			}

			rate, err := decimal.NewFromString(fmt.Sprint(value))
			if err != nil {
				return nil, fmt.Errorf("parsing rate %s->%s: %w", base, target, err)
			}
			rates[base][target] = rate
		}
	}

	return NewRateTable(rates)
}

// LoadCSVRates reads a table from a CSV file with columns base,target,rate
func LoadCSVRates(path string) (*RateTable, error) {
	reader := fileutil.NewCSVReader(path)

	header, err := reader.ReadHeader()
	if err != nil {
		return nil, fmt.Errorf("reading rate file header: %w", err)
	}

	columnMap, err := createHeaderMap(header, rateHeaderFields)
	if err != nil {
		return nil, fmt.Errorf("mapping CSV columns: %w", err)
	}
	maxIndex := maxColumnIndex(columnMap)

	rates := make(Rates)
	rowProcessorFn := func(rowNum int, row []string) error {
		if len(row) <= maxIndex {
			return fmt.Errorf("row %d: expected at least %d fields, got %d", rowNum, maxIndex+1, len(row))
		}

		base, err := domain.ParseCurrency(row[columnMap["base"]])
		if err != nil {
			return fmt.Errorf("row %d: %w", rowNum, err)
		}

		target, err := domain.ParseCurrency(row[columnMap["target"]])
		if err != nil {
			return fmt.Errorf("row %d: %w", rowNum, err)
		}

		rate, err := decimal.NewFromString(strings.TrimSpace(row[columnMap["rate"]]))
		if err != nil {
			return fmt.Errorf("row %d: parsing rate: %w", rowNum, err)
		}

		if rates[base] == nil {
			rates[base] = make(map[domain.Currency]decimal.Decimal)
		}
		rates[base][target] = rate
		return nil
	}

	if err := reader.ReadAndProcessByRow(rowProcessorFn); err != nil {
		return nil, fmt.Errorf("processing rate file: %w", err)
	}

	return NewRateTable(rates)
}
