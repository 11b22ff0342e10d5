package report

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/ledger-service/internal/domain"
)

// Formatter defines the interface for rendering balances and history
type Formatter interface {
	FormatHistory(userID string, txns []domain.Transaction) ([]byte, error)
	FormatBalances(userID string, balances map[domain.Currency]decimal.Decimal) ([]byte, error)
	FileExtension() string
}

// HistoryReport is the JSON shape of a history listing
type HistoryReport struct {
	UserID       string               `json:"userId"`
	Count        int                  `json:"count"`
	Transactions []domain.Transaction `json:"transactions"`
}

// BalanceReport is the JSON shape of a balance listing
type BalanceReport struct {
	UserID   string                              `json:"userId"`
	Balances map[domain.Currency]decimal.Decimal `json:"balances"`
}

// JSONFormatter formats reports as JSON
type JSONFormatter struct {
	PrettyPrint bool
}

func NewJSONFormatter(prettyPrint bool) *JSONFormatter {
	return &JSONFormatter{
		PrettyPrint: prettyPrint,
	}
}

// FormatHistory implements the Formatter interface for JSON
func (f *JSONFormatter) FormatHistory(userID string, txns []domain.Transaction) ([]byte, error) {
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return f.marshal(HistoryReport{UserID: userID, Count: len(txns), Transactions: txns})
}

// FormatBalances implements the Formatter interface for JSON
func (f *JSONFormatter) FormatBalances(userID string, balances map[domain.Currency]decimal.Decimal) ([]byte, error) {
	return f.marshal(BalanceReport{UserID: userID, Balances: balances})
}

func (f *JSONFormatter) FileExtension() string {
	return "json"
}

func (f *JSONFormatter) marshal(v any) ([]byte, error) {
	if f.PrettyPrint {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
