package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of balance-affecting event
type TransactionType string

// Transaction types
const (
	Deposit  TransactionType = "DEPOSIT"
	Withdraw TransactionType = "WITHDRAW"
	Send     TransactionType = "SEND"
	Receive  TransactionType = "RECEIVE"
	Exchange TransactionType = "EXCHANGE"
)

var transactionTypes = []TransactionType{Deposit, Withdraw, Send, Receive, Exchange}

// ParseTransactionType converts a name such as "deposit" into a TransactionType
func ParseTransactionType(name string) (TransactionType, bool) {
	for _, t := range transactionTypes {
		if string(t) == strings.ToUpper(strings.TrimSpace(name)) {
			return t, true
		}
	}
	return "", false
}

// Transaction is an immutable record of one balance change on one account.
// Seq is process-local and breaks ties between equal timestamps.
type Transaction struct {
	ID             uuid.UUID       `json:"id"`
	Seq            uint64          `json:"seq"`
	Type           TransactionType `json:"type"`
	Currency       Currency        `json:"currency"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	BalanceChange  decimal.Decimal `json:"balanceChange"`
	Counterparty   string          `json:"counterparty,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}

// NewTransaction creates a Transaction with a fresh ID
func NewTransaction(txType TransactionType, currency Currency, initialBalance, balanceChange decimal.Decimal, at time.Time, seq uint64) Transaction {
	return Transaction{
		ID:             uuid.New(),
		Seq:            seq,
		Type:           txType,
		Currency:       currency,
		InitialBalance: initialBalance,
		BalanceChange:  balanceChange,
		Timestamp:      at,
	}
}

// WithCounterparty returns a copy of t naming the other side of the event
func (t Transaction) WithCounterparty(counterparty string) Transaction {
	t.Counterparty = counterparty
	return t
}

// FinalBalance returns the account balance right after this transaction
func (t Transaction) FinalBalance() decimal.Decimal {
	return t.InitialBalance.Add(t.BalanceChange)
}

// Before orders transactions by timestamp, then by sequence number
func (t Transaction) Before(other Transaction) bool {
	if t.Timestamp.Equal(other.Timestamp) {
		return t.Seq < other.Seq
	}
	return t.Timestamp.Before(other.Timestamp)
}
