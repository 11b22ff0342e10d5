package filter

import (
	"sort"

	"github.com/tirasundara/ledger-service/internal/domain"
)

// Chain keeps the transactions accepted by every criterion and returns them
// in chronological order
type Chain struct {
	criteria []Criterion
}

// NewChain creates a new Chain with the given criteria. An empty chain keeps
// everything.
func NewChain(criteria ...Criterion) *Chain {
	return &Chain{
		criteria: criteria,
	}
}

// FromQuery builds the chain matching the optional fields of a history query.
// The currency field selects accounts, not transactions, so it is not used here.
func FromQuery(q domain.HistoryQuery) *Chain {
	var criteria []Criterion

	if q.Start != nil || q.End != nil {
		criteria = append(criteria, NewDateRangeCriterion(q.Start, q.End))
	}
	if q.Type != nil {
		criteria = append(criteria, NewTypeCriterion(*q.Type))
	}

	return NewChain(criteria...)
}

// Apply filters txns and sorts the result by (timestamp, sequence).
// The input slice is not modified.
func (c *Chain) Apply(txns []domain.Transaction) []domain.Transaction {
	result := make([]domain.Transaction, 0, len(txns))

	for _, tx := range txns {
		if c.keep(tx) {
			result = append(result, tx)
		}
	}

	SortChronologically(result)
	return result
}

func (c *Chain) keep(tx domain.Transaction) bool {
	for _, criterion := range c.criteria {
		if !criterion.Keep(tx) {
			return false
		}
	}
	return true
}

// SortChronologically sorts txns in place by timestamp, then sequence number
func SortChronologically(txns []domain.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Before(txns[j])
	})
}
