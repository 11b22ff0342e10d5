package domain

import "github.com/shopspring/decimal"

// AccountRepository defines the interface for storing and looking up accounts
type AccountRepository interface {
	// AccountsForUser returns every account of userID in registration order
	AccountsForUser(userID string) []*Account

	// AccountFor returns the account of userID in the given currency
	AccountFor(userID string, currency Currency) (*Account, bool)

	// Save stores a new account, failing with ErrDuplicateAccount when the
	// (user, currency) pair is already present
	Save(account *Account) error

	// Users returns the ids of every registered user in registration order
	Users() []string
}

// RateSource defines the interface for converting amounts between currencies
type RateSource interface {
	// Convert returns amount expressed in target currency. It fails with
	// ErrInvalidExchange when base equals target.
	Convert(base, target Currency, amount decimal.Decimal) (decimal.Decimal, error)
}

// UserRegistrar is implemented by repositories that create all accounts of a
// new user in one step, failing with ErrDuplicateUser when the user exists
type UserRegistrar interface {
	Register(userID string, currencies []Currency) ([]*Account, error)
}
