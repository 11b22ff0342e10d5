package filter

import (
	"time"

	"github.com/tirasundara/ledger-service/internal/domain"
)

// Criterion decides whether a transaction belongs in a history result
type Criterion interface {
	Keep(tx domain.Transaction) bool
}

// DateRangeCriterion keeps transactions between Start and End, both inclusive.
// A nil bound is open.
type DateRangeCriterion struct {
	Start *time.Time
	End   *time.Time
}

// NewDateRangeCriterion creates a new DateRangeCriterion
func NewDateRangeCriterion(start, end *time.Time) *DateRangeCriterion {
	return &DateRangeCriterion{
		Start: start,
		End:   end,
	}
}

// Keep implements the Criterion interface
func (c *DateRangeCriterion) Keep(tx domain.Transaction) bool {
	if c.Start != nil && tx.Timestamp.Before(*c.Start) {
		return false
	}
	if c.End != nil && tx.Timestamp.After(*c.End) {
		return false
	}
	return true
}

// TypeCriterion keeps transactions of exactly one type
type TypeCriterion struct {
	Type domain.TransactionType
}

// NewTypeCriterion creates a new TypeCriterion
func NewTypeCriterion(txType domain.TransactionType) *TypeCriterion {
	return &TypeCriterion{
		Type: txType,
	}
}

// Keep implements the Criterion interface
func (c *TypeCriterion) Keep(tx domain.Transaction) bool {
	return tx.Type == c.Type
}
