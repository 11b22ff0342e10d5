package report_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/ledger-service/internal/domain"
	"github.com/tirasundara/ledger-service/internal/report"
)

func TestDisplayAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{"whole", "100", "$100.00"},
		{"cents", "22.77", "$22.77"},
		{"sub-cent", "0.005", "$0.005"},
		{"trailing digits", "2.415", "$2.415"},
		{"negative", "-77.23", "-$77.23"},
		{"zero", "0", "$0.00"},
		{"beyond int64", "123456789012345678901234.5", "$123456789012345678901234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.DisplayAmount(decimal.RequireFromString(tt.amount), domain.USD)
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestTextFormatter_FormatHistory(t *testing.T) {
	output, err := report.NewTextFormatter().FormatHistory("alice", sampleHistory())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(output), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d lines:\n%s", len(lines), output)
	}
	if !strings.HasPrefix(lines[0], "TIME") {
		t.Errorf("Expected header row, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "2025-01-15 09:30:00") || !strings.Contains(lines[1], "DEPOSIT") {
		t.Errorf("Unexpected first row: %q", lines[1])
	}
	for _, want := range []string{"SEND", "$100.00", "$22.77", "bob"} {
		if !strings.Contains(lines[2], want) {
			t.Errorf("Expected second row to contain %q, got %q", want, lines[2])
		}
	}
}

func TestTextFormatter_EmptyHistory(t *testing.T) {
	output, _ := report.NewTextFormatter().FormatHistory("alice", nil)

	if string(output) != "No transactions for alice\n" {
		t.Errorf("Unexpected output: %q", output)
	}
}

func TestTextFormatter_FormatBalances(t *testing.T) {
	balances := map[domain.Currency]decimal.Decimal{
		domain.USD: decimal.RequireFromString("22.77"),
		domain.PLN: decimal.NewFromInt(1),
		domain.EUR: decimal.Zero,
	}

	output, err := report.NewTextFormatter().FormatBalances("alice", balances)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(output), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected title and 3 rows, got %d lines:\n%s", len(lines), output)
	}
	if lines[0] != "Balances for alice" {
		t.Errorf("Unexpected title: %q", lines[0])
	}

	order := []string{"PLN", "EUR", "USD"}
	for i, code := range order {
		if !strings.HasPrefix(lines[i+1], code) {
			t.Errorf("Expected row %d to start with %s, got %q", i+1, code, lines[i+1])
		}
	}
	if !strings.Contains(lines[3], "$22.77") {
		t.Errorf("Expected USD row to show $22.77, got %q", lines[3])
	}
}

func TestTextFormatter_FormatBalancesExact(t *testing.T) {
	balances := map[domain.Currency]decimal.Decimal{
		domain.USD: decimal.RequireFromString("2.415"),
		domain.PLN: decimal.RequireFromString("0.004"),
		domain.EUR: decimal.RequireFromString("1e20"),
	}

	output, err := report.NewTextFormatter().FormatBalances("alice", balances)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, want := range []string{"$2.415", "0.004", "100000000000000000000.00"} {
		if !strings.Contains(string(output), want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, output)
		}
	}
}
