package service

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/ledger-service/internal/domain"
	"github.com/tirasundara/ledger-service/internal/filter"
)

// LedgerService orchestrates deposits, withdrawals, transfers and exchanges
// across accounts and answers balance and history queries
type LedgerService struct {
	accounts domain.AccountRepository
	rates    domain.RateSource
	logger   *slog.Logger
	now      func() time.Time

	// stampMu guards lastStamp and seq so that timestamps never go backwards
	// and every transaction gets a distinct sequence number
	stampMu   sync.Mutex
	lastStamp time.Time
	seq       uint64
}

// Option configures a LedgerService
type Option func(*LedgerService)

// WithClock replaces time.Now as the source of transaction timestamps
func WithClock(now func() time.Time) Option {
	return func(s *LedgerService) {
		s.now = now
	}
}

// WithLogger sets the logger used for operation events
func WithLogger(logger *slog.Logger) Option {
	return func(s *LedgerService) {
		s.logger = logger
	}
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(accounts domain.AccountRepository, rates domain.RateSource, opts ...Option) *LedgerService {
	s := &LedgerService{
		accounts: accounts,
		rates:    rates,
		logger:   slog.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewUser creates a zero-balance account in every supported currency
func (s *LedgerService) NewUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrInvalidUser
	}

	currencies := domain.SupportedCurrencies()

	if registrar, ok := s.accounts.(domain.UserRegistrar); ok {
		if _, err := registrar.Register(userID, currencies); err != nil {
			return err
		}
	} else {
		if len(s.accounts.AccountsForUser(userID)) > 0 {
			return fmt.Errorf("registering %q: %w", userID, domain.ErrDuplicateUser)
		}
		for _, currency := range currencies {
			if err := s.accounts.Save(domain.NewAccount(userID, currency)); err != nil {
				return fmt.Errorf("registering %q: %w", userID, err)
			}
		}
	}

	s.logger.Info("User created", "user", userID, "accounts", len(currencies))
	return nil
}

// DepositFunds adds amount to the user's account in currency
func (s *LedgerService) DepositFunds(currency domain.Currency, amount decimal.Decimal, userID string) error {
	account, err := s.accountFor(userID, currency, "account")
	if err != nil {
		return err
	}

	unlock := domain.LockAccounts(account)
	defer unlock()

	initial := account.Balance()
	if err := account.Deposit(amount); err != nil {
		s.reject("deposit", err, "user", userID, "currency", currency, "amount", amount)
		return err
	}
	account.AddTransactionToHistory(s.record(domain.Deposit, currency, initial, amount))

	s.logger.Info("Deposit completed", "user", userID, "currency", currency, "amount", amount)
	return nil
}

// WithdrawFunds removes amount from the user's account in currency
func (s *LedgerService) WithdrawFunds(currency domain.Currency, amount decimal.Decimal, userID string) error {
	account, err := s.accountFor(userID, currency, "account")
	if err != nil {
		return err
	}

	unlock := domain.LockAccounts(account)
	defer unlock()

	initial := account.Balance()
	if err := account.Withdraw(amount); err != nil {
		s.reject("withdraw", err, "user", userID, "currency", currency, "amount", amount)
		return err
	}
	account.AddTransactionToHistory(s.record(domain.Withdraw, currency, initial, amount.Neg()))

	s.logger.Info("Withdrawal completed", "user", userID, "currency", currency, "amount", amount)
	return nil
}

// SendFunds moves amount from sender to receiver in the same currency.
// Nothing changes on either side if the withdrawal fails.
func (s *LedgerService) SendFunds(currency domain.Currency, amount decimal.Decimal, senderID, receiverID string) error {
	sender, err := s.accountFor(senderID, currency, "sender account")
	if err != nil {
		return err
	}
	receiver, err := s.accountFor(receiverID, currency, "receiver account")
	if err != nil {
		return err
	}

	unlock := domain.LockAccounts(sender, receiver)
	defer unlock()

	// A self-send touches one account; each record keeps the balance seen
	// right before its own change.
	senderInitial := sender.Balance()
	if err := sender.Withdraw(amount); err != nil {
		s.reject("send", err, "sender", senderID, "receiver", receiverID, "currency", currency, "amount", amount)
		return err
	}

	receiverInitial := receiver.Balance()
	if err := receiver.Deposit(amount); err != nil {
		s.rollback(sender, amount)
		return fmt.Errorf("crediting receiver: %w", err)
	}

	sender.AddTransactionToHistory(s.record(domain.Send, currency, senderInitial, amount.Neg()).WithCounterparty(receiverID))
	receiver.AddTransactionToHistory(s.record(domain.Receive, currency, receiverInitial, amount).WithCounterparty(senderID))

	s.logger.Info("Transfer completed", "sender", senderID, "receiver", receiverID, "currency", currency, "amount", amount)
	return nil
}

// ExchangeCurrency converts amount from the user's base account into the
// target account at the rate supplied by the rate source
func (s *LedgerService) ExchangeCurrency(base, target domain.Currency, amount decimal.Decimal, userID string) error {
	baseAccount, err := s.accountFor(userID, base, "base currency account")
	if err != nil {
		return err
	}
	targetAccount, err := s.accountFor(userID, target, "target currency account")
	if err != nil {
		return err
	}

	received, err := s.rates.Convert(base, target, amount)
	if err != nil {
		s.reject("exchange", err, "user", userID, "base", base, "target", target, "amount", amount)
		return err
	}
	if !amount.IsPositive() || !received.IsPositive() {
		s.reject("exchange", domain.ErrInvalidAmount, "user", userID, "base", base, "target", target, "amount", amount)
		return domain.ErrInvalidAmount
	}

	unlock := domain.LockAccounts(baseAccount, targetAccount)
	defer unlock()

	baseInitial := baseAccount.Balance()
	targetInitial := targetAccount.Balance()

	if err := baseAccount.Withdraw(amount); err != nil {
		s.reject("exchange", err, "user", userID, "base", base, "target", target, "amount", amount)
		return err
	}
	if err := targetAccount.Deposit(received); err != nil {
		s.rollback(baseAccount, amount)
		return fmt.Errorf("crediting target account: %w", err)
	}

	baseAccount.AddTransactionToHistory(s.record(domain.Exchange, base, baseInitial, amount.Neg()).WithCounterparty(target.String()))
	targetAccount.AddTransactionToHistory(s.record(domain.Exchange, target, targetInitial, received).WithCounterparty(base.String()))

	s.logger.Info("Exchange completed", "user", userID, "base", base, "target", target, "amount", amount, "received", received)
	return nil
}

// GetAccountHistory returns the user's transactions matching q, oldest first
func (s *LedgerService) GetAccountHistory(userID string, q domain.HistoryQuery) ([]domain.Transaction, error) {
	var accounts []*domain.Account

	if q.Currency != nil {
		account, err := s.accountFor(userID, *q.Currency, "account")
		if err != nil {
			return nil, err
		}
		accounts = []*domain.Account{account}
	} else {
		accounts = s.accounts.AccountsForUser(userID)
		if len(accounts) == 0 {
			return nil, fmt.Errorf("user %q: %w", userID, domain.ErrAccountNotFound)
		}
	}

	unlock := domain.LockAccounts(accounts...)
	var txns []domain.Transaction
	for _, account := range accounts {
		txns = append(txns, account.History()...)
	}
	unlock()

	return filter.FromQuery(q).Apply(txns), nil
}

// GetAccountBalance returns the balance of every account of the user
func (s *LedgerService) GetAccountBalance(userID string) (map[domain.Currency]decimal.Decimal, error) {
	accounts := s.accounts.AccountsForUser(userID)
	if len(accounts) == 0 {
		return nil, fmt.Errorf("user %q: %w", userID, domain.ErrAccountNotFound)
	}

	unlock := domain.LockAccounts(accounts...)
	defer unlock()

	balances := make(map[domain.Currency]decimal.Decimal, len(accounts))
	for _, account := range accounts {
		balances[account.Currency()] = account.Balance()
	}

	return balances, nil
}

// ListUsers returns every registered user id in registration order
func (s *LedgerService) ListUsers() []string {
	return s.accounts.Users()
}

func (s *LedgerService) accountFor(userID string, currency domain.Currency, role string) (*domain.Account, error) {
	account, ok := s.accounts.AccountFor(userID, currency)
	if !ok {
		return nil, fmt.Errorf("%s %s/%s: %w", role, userID, currency, domain.ErrAccountNotFound)
	}
	return account, nil
}

// record creates a transaction stamped with a non-decreasing timestamp and
// the next sequence number
func (s *LedgerService) record(txType domain.TransactionType, currency domain.Currency, initial, change decimal.Decimal) domain.Transaction {
	s.stampMu.Lock()
	defer s.stampMu.Unlock()

	at := s.now()
	if at.Before(s.lastStamp) {
		at = s.lastStamp
	}
	s.lastStamp = at
	s.seq++

	return domain.NewTransaction(txType, currency, initial, change, at, s.seq)
}

// rollback returns a debited amount after the matching credit failed
func (s *LedgerService) rollback(account *domain.Account, amount decimal.Decimal) {
	if err := account.Deposit(amount); err != nil {
		s.logger.Error("Rollback failed", "user", account.UserID(), "currency", account.Currency(), "amount", amount, "error", err)
	}
}

func (s *LedgerService) reject(op string, err error, attrs ...any) {
	s.logger.Warn("Operation rejected", append([]any{"op", op, "error", err}, attrs...)...)
}
