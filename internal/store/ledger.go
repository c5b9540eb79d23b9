package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jyoon/topic-tracker/internal/model"
)

// ErrInsufficientPoints is returned by Spend when the amount exceeds
// the current balance. No transaction is recorded in that case.
var ErrInsufficientPoints = errors.New("insufficient points")

// pointState is the persisted shape of the ledger, one JSON document
// under KeyPointSystem.
type pointState struct {
	Transactions []model.Transaction `json:"transactions"`
	SearchCount  int                 `json:"search_count"`
}

// Ledger tracks point-earning and point-spending events plus the
// running search counter, and derives balance statistics by summation.
// The transaction list is append-only and kept most-recent-first.
//
// State is held in memory and written through to the KV store on every
// mutation. Statistics are recomputed per call rather than maintained
// incrementally; the list stays small enough that the O(n) scan is the
// simpler trade.
type Ledger struct {
	mu      sync.Mutex
	kv      KV
	rewards model.Rewards
	log     *zap.Logger
	state   pointState
}

// NewLedger loads ledger state from kv, starting from an empty ledger
// when nothing valid is stored.
func NewLedger(kv KV, rewards model.Rewards, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Ledger{kv: kv, rewards: rewards, log: log}
	kv.Load(KeyPointSystem, &l.state)
	return l
}

// Earn appends an earn transaction. It is total: any positive amount
// is accepted and the operation has no failure mode beyond a logged
// write error.
func (l *Ledger) Earn(amount int, description, relatedID string) model.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.earnLocked(amount, description, relatedID)
}

// Spend appends a spend transaction after checking the balance
// computed at call time. When amount exceeds the balance it returns
// ErrInsufficientPoints and performs no mutation.
func (l *Ledger) Spend(amount int, description, relatedID string) (model.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if balance := l.statsLocked().CurrentBalance; balance < amount {
		return model.Transaction{}, fmt.Errorf(
			"spending %d with balance %d: %w", amount, balance, ErrInsufficientPoints)
	}

	tx := model.Transaction{
		ID:          uuid.New().String(),
		Kind:        model.TxKindSpend,
		Amount:      amount,
		Description: description,
		Timestamp:   time.Now().UTC(),
		RelatedID:   relatedID,
	}
	l.state.Transactions = append([]model.Transaction{tx}, l.state.Transactions...)
	l.persistLocked()
	return tx, nil
}

// Stats sums the transaction list into the derived statistics.
func (l *Ledger) Stats() model.PointStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.statsLocked()
}

// Transactions returns a copy of the transaction list, most recent first.
func (l *Ledger) Transactions() []model.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Transaction, len(l.state.Transactions))
	copy(out, l.state.Transactions)
	return out
}

// SpendHistory returns up to limit spend transactions, most recent first.
func (l *Ledger) SpendHistory(limit int) []model.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []model.Transaction
	for _, tx := range l.state.Transactions {
		if tx.Kind != model.TxKindSpend {
			continue
		}
		out = append(out, tx)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// RecordSearch bumps the search counter and awards the search reward.
// Both changes land in the same persisted document, so one write
// covers the whole user action.
func (l *Ledger) RecordSearch(topicName string) model.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.SearchCount++
	return l.earnLocked(
		l.rewards.SearchPoints,
		fmt.Sprintf("Searched %q", topicName),
		"",
	)
}

// CheckInAward returns the points awarded for a check-in with the
// given rating: base plus a bonus step per rating point above 3,
// floored at the base so low ratings never award less.
func (l *Ledger) CheckInAward(rating int) int {
	award := l.rewards.CheckBasePoints + (rating-3)*l.rewards.CheckBonusStep
	if award < l.rewards.CheckBasePoints {
		award = l.rewards.CheckBasePoints
	}
	return award
}

// RecordCheckIn awards check-in points for a goal.
func (l *Ledger) RecordCheckIn(goalID string, rating int) model.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.earnLocked(
		l.CheckInAward(rating),
		fmt.Sprintf("Goal check-in (%d/5)", rating),
		goalID,
	)
}

func (l *Ledger) earnLocked(amount int, description, relatedID string) model.Transaction {
	tx := model.Transaction{
		ID:          uuid.New().String(),
		Kind:        model.TxKindEarn,
		Amount:      amount,
		Description: description,
		Timestamp:   time.Now().UTC(),
		RelatedID:   relatedID,
	}
	l.state.Transactions = append([]model.Transaction{tx}, l.state.Transactions...)
	l.persistLocked()
	return tx
}

func (l *Ledger) statsLocked() model.PointStats {
	stats := model.PointStats{SearchCount: l.state.SearchCount}
	for _, tx := range l.state.Transactions {
		switch tx.Kind {
		case model.TxKindEarn:
			stats.TotalEarned += tx.Amount
		case model.TxKindSpend:
			stats.TotalSpent += tx.Amount
		}
	}
	stats.CurrentBalance = stats.TotalEarned - stats.TotalSpent
	return stats
}

// persistLocked writes the full ledger state through to storage. A
// failed write leaves the in-memory mutation in place; the divergence
// is logged and resolves at next successful save.
func (l *Ledger) persistLocked() {
	if err := l.kv.Save(KeyPointSystem, l.state); err != nil {
		l.log.Error("persisting ledger", zap.Error(err))
	}
}
