package repository

import (
	"fmt"
	"sync"

	"github.com/tirasundara/ledger-service/internal/domain"
)

// InMemoryAccountRepository implements the AccountRepository interface with
// a map indexed by (user, currency)
type InMemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[domain.AccountKey]*domain.Account
	byUser   map[string][]*domain.Account
	users    []string
}

// NewInMemoryAccountRepository creates an empty InMemoryAccountRepository
func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{
		accounts: make(map[domain.AccountKey]*domain.Account),
		byUser:   make(map[string][]*domain.Account),
	}
}

func (r *InMemoryAccountRepository) AccountsForUser(userID string) []*domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := r.byUser[userID]
	out := make([]*domain.Account, len(accounts))
	copy(out, accounts)
	return out
}

func (r *InMemoryAccountRepository) AccountFor(userID string, currency domain.Currency) (*domain.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[domain.AccountKey{UserID: userID, Currency: currency}]
	return account, ok
}

func (r *InMemoryAccountRepository) Save(account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := account.Key()
	if _, exists := r.accounts[key]; exists {
		return fmt.Errorf("saving %s/%s: %w", key.UserID, key.Currency, domain.ErrDuplicateAccount)
	}

	r.accounts[key] = account
	if _, known := r.byUser[key.UserID]; !known {
		r.users = append(r.users, key.UserID)
	}
	r.byUser[key.UserID] = append(r.byUser[key.UserID], account)

	return nil
}

func (r *InMemoryAccountRepository) Users() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.users))
	copy(out, r.users)
	return out
}

// Register saves one account per currency for userID while holding the
// repository lock, so two concurrent registrations of the same user cannot
// both succeed. It fails with ErrDuplicateUser if userID already has accounts.
func (r *InMemoryAccountRepository) Register(userID string, currencies []domain.Currency) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.byUser[userID]) > 0 {
		return nil, fmt.Errorf("registering %q: %w", userID, domain.ErrDuplicateUser)
	}

	created := make([]*domain.Account, 0, len(currencies))
	for _, currency := range currencies {
		key := domain.AccountKey{UserID: userID, Currency: currency}
		if _, exists := r.accounts[key]; exists {
			return nil, fmt.Errorf("registering %q: %w", userID, domain.ErrDuplicateAccount)
		}
		created = append(created, domain.NewAccount(userID, currency))
	}

	for _, account := range created {
		r.accounts[account.Key()] = account
	}
	r.byUser[userID] = append(r.byUser[userID], created...)
	r.users = append(r.users, userID)

	return created, nil
}
