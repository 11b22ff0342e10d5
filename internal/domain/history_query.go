package domain

import "time"

// HistoryQuery narrows a history lookup. Nil fields are not applied.
// Start and End are inclusive.
type HistoryQuery struct {
	Currency *Currency
	Start    *time.Time
	End      *time.Time
	Type     *TransactionType
}
