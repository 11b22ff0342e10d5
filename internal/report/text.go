package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/tirasundara/ledger-service/internal/domain"
)

const textTimeFormat = "2006-01-02 15:04:05"

// TextFormatter renders reports as aligned columns with currency symbols
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// FormatHistory implements the Formatter interface for plain text
func (f *TextFormatter) FormatHistory(userID string, txns []domain.Transaction) ([]byte, error) {
	var buf bytes.Buffer

	if len(txns) == 0 {
		fmt.Fprintf(&buf, "No transactions for %s\n", userID)
		return buf.Bytes(), nil
	}

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTYPE\tCURRENCY\tBEFORE\tCHANGE\tAFTER\tCOUNTERPARTY")
	for _, tx := range txns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Timestamp.Format(textTimeFormat),
			tx.Type,
			tx.Currency,
			DisplayAmount(tx.InitialBalance, tx.Currency),
			DisplayAmount(tx.BalanceChange, tx.Currency),
			DisplayAmount(tx.FinalBalance(), tx.Currency),
			tx.Counterparty,
		)
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("writing history table: %w", err)
	}

	return buf.Bytes(), nil
}

// FormatBalances implements the Formatter interface for plain text.
// Currencies are listed in their declaration order.
func (f *TextFormatter) FormatBalances(userID string, balances map[domain.Currency]decimal.Decimal) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Balances for %s\n", userID)
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	for _, currency := range domain.SupportedCurrencies() {
		balance, ok := balances[currency]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", currency, DisplayAmount(balance, currency))
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("writing balance table: %w", err)
	}

	return buf.Bytes(), nil
}

func (f *TextFormatter) FileExtension() string {
	return "txt"
}

// DisplayAmount formats the exact amount with the symbol of currency,
// padded to at least the currency's minor unit. Amounts are never rounded.
// Unknown codes fall back to the plain decimal string.
func DisplayAmount(amount decimal.Decimal, currency domain.Currency) string {
	cur := money.GetCurrency(currency.String())
	if cur == nil {
		return amount.String() + " " + currency.String()
	}

	places := int32(cur.Fraction)
	if exp := amount.Exponent(); -exp > places {
		places = -exp
	}
	digits := amount.Abs().StringFixed(places)

	out := strings.Replace(cur.Template, "$", cur.Grapheme, 1)
	out = strings.Replace(out, "1", digits, 1)
	if amount.IsNegative() {
		out = "-" + out
	}
	return out
}
