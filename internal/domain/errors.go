package domain

import "errors"

// Domain errors. Callers add context with fmt.Errorf("...: %w", err) and
// branch with errors.Is.
var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAccountNotFound     = errors.New("account not found")
	ErrDuplicateUser       = errors.New("duplicated user id")
	ErrDuplicateAccount    = errors.New("duplicated account")
	ErrInvalidExchange     = errors.New("target currency cannot be the same as base currency")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrRateNotFound        = errors.New("exchange rate not found")
	ErrInvalidUser         = errors.New("user id must not be empty")
)
