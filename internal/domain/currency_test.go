package domain_test

import (
	"errors"
	"testing"

	"github.com/tirasundara/ledger-service/internal/domain"
)

func TestParseCurrency(t *testing.T) {
	for _, code := range []string{"PLN", "eur", " usd "} {
		if _, err := domain.ParseCurrency(code); err != nil {
			t.Errorf("Expected %q to be accepted, got %v", code, err)
		}
	}

	_, err := domain.ParseCurrency("GBP")
	if !errors.Is(err, domain.ErrUnsupportedCurrency) {
		t.Errorf("Expected ErrUnsupportedCurrency, got %v", err)
	}
}

func TestSupportedCurrencies(t *testing.T) {
	currencies := domain.SupportedCurrencies()
	if len(currencies) != 3 {
		t.Fatalf("Expected 3 currencies, got %d", len(currencies))
	}

	currencies[0] = "XXX"
	if domain.SupportedCurrencies()[0] != domain.PLN {
		t.Errorf("Expected SupportedCurrencies to return a copy")
	}
}
