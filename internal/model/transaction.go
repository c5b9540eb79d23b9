package model

import "time"

// Transaction kinds.
const (
	TxKindEarn  = "earn"
	TxKindSpend = "spend"
)

// Transaction is a single immutable entry in the point ledger.
// The ledger is append-only: transactions are never edited or removed.
type Transaction struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Amount      int       `json:"amount"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`

	// RelatedID optionally ties the transaction to the entity that
	// triggered it (a goal, a shop item).
	RelatedID string `json:"related_id,omitempty"`
}

// PointStats is the derived view over the transaction list.
type PointStats struct {
	TotalEarned    int `json:"total_earned"`
	TotalSpent     int `json:"total_spent"`
	CurrentBalance int `json:"current_balance"`
	SearchCount    int `json:"search_count"`
}
