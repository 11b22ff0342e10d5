package domain

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// Account holds the balance of one user in one currency and the ordered
// history of transactions applied to it.
//
// Account does not lock itself. Callers that share accounts between
// goroutines hold the lock returned by LockAccounts while reading or
// mutating them.
type Account struct {
	mu       sync.Mutex
	userID   string
	currency Currency
	balance  decimal.Decimal
	history  []Transaction
}

// NewAccount creates an account with zero balance and empty history
func NewAccount(userID string, currency Currency) *Account {
	return &Account{
		userID:   userID,
		currency: currency,
		balance:  decimal.Zero,
	}
}

// Deposit adds a positive amount to the balance
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	a.balance = a.balance.Add(amount)
	return nil
}

// Withdraw removes a positive amount not greater than the balance
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if a.balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	a.balance = a.balance.Sub(amount)
	return nil
}

// AddTransactionToHistory appends tx without checking it against the balance
func (a *Account) AddTransactionToHistory(tx Transaction) {
	a.history = append(a.history, tx)
}

func (a *Account) UserID() string {
	return a.userID
}

func (a *Account) Currency() Currency {
	return a.currency
}

func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// History returns a copy of the transaction history in insertion order
func (a *Account) History() []Transaction {
	out := make([]Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// Key identifies an account by (user, currency)
func (a *Account) Key() AccountKey {
	return AccountKey{UserID: a.userID, Currency: a.currency}
}

// AccountKey is the directory key of an account
type AccountKey struct {
	UserID   string
	Currency Currency
}

// Less gives the total order used for lock acquisition
func (k AccountKey) Less(other AccountKey) bool {
	if k.UserID != other.UserID {
		return k.UserID < other.UserID
	}
	return k.Currency < other.Currency
}

// LockAccounts locks every distinct account in key order and returns a
// function releasing them.
func LockAccounts(accounts ...*Account) (unlock func()) {
	ordered := make([]*Account, 0, len(accounts))
	seen := make(map[*Account]bool, len(accounts))
	for _, a := range accounts {
		if a == nil || seen[a] {
			continue
		}
		seen[a] = true
		ordered = append(ordered, a)
	}

	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Key().Less(ordered[j].Key())
	})

	for _, a := range ordered {
		a.mu.Lock()
	}

	return func() {
		for i := len(ordered) - 1; i >= 0; i-- {
			ordered[i].mu.Unlock()
		}
	}
}
