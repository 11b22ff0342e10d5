package domain

import (
	"fmt"
	"strings"
)

// Currency represents a supported currency code
type Currency string

// Supported currencies
const (
	PLN Currency = "PLN"
	EUR Currency = "EUR"
	USD Currency = "USD"
)

var supportedCurrencies = []Currency{PLN, EUR, USD}

// SupportedCurrencies returns every supported currency in declaration order
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// ParseCurrency converts a currency code into a Currency, ignoring case
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return c, nil
}

// IsValid reports whether c is one of the supported currencies
func (c Currency) IsValid() bool {
	for _, s := range supportedCurrencies {
		if c == s {
			return true
		}
	}
	return false
}

func (c Currency) String() string {
	return string(c)
}
