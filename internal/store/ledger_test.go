package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyoon/topic-tracker/internal/model"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return NewLedger(newTestKV(t), model.DefaultRewards(), nil)
}

func TestEarnIsNeverRejected(t *testing.T) {
	l := newTestLedger(t)

	for _, amount := range []int{1, 10, 1_000_000} {
		tx := l.Earn(amount, "bonus", "")
		assert.Equal(t, model.TxKindEarn, tx.Kind)
		assert.Equal(t, amount, tx.Amount)
		assert.NotEmpty(t, tx.ID)
	}
	assert.Equal(t, 1_000_011, l.Stats().CurrentBalance)
}

func TestSpendRejectedWhenBalanceTooLow(t *testing.T) {
	l := newTestLedger(t)

	// Mirrors a fresh user earning through searches and overspending.
	l.RecordSearch("AI")
	stats := l.Stats()
	assert.Equal(t, 10, stats.CurrentBalance)
	assert.Equal(t, 1, stats.SearchCount)

	_, err := l.Spend(15, "sticker", "")
	require.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, 10, l.Stats().CurrentBalance, "failed spend must not mutate")

	l.RecordSearch("ML")
	assert.Equal(t, 20, l.Stats().CurrentBalance)

	_, err = l.Spend(15, "sticker", "")
	require.NoError(t, err)
	assert.Equal(t, 5, l.Stats().CurrentBalance)
	assert.Equal(t, 2, l.Stats().SearchCount)
}

func TestStatsInvariant(t *testing.T) {
	l := newTestLedger(t)

	l.Earn(100, "a", "")
	l.Earn(30, "b", "")
	_, err := l.Spend(50, "c", "")
	require.NoError(t, err)

	stats := l.Stats()
	assert.Equal(t, 130, stats.TotalEarned)
	assert.Equal(t, 50, stats.TotalSpent)
	assert.Equal(t, stats.TotalEarned-stats.TotalSpent, stats.CurrentBalance)
}

func TestCheckInAwardFlooredAtBase(t *testing.T) {
	l := newTestLedger(t)

	awards := map[int]int{1: 50, 2: 50, 3: 50, 4: 60, 5: 70}
	for rating, want := range awards {
		assert.Equal(t, want, l.CheckInAward(rating), "rating %d", rating)
	}
}

func TestRecordCheckInCreditsAward(t *testing.T) {
	l := newTestLedger(t)

	tx := l.RecordCheckIn("goal-1", 4)
	assert.Equal(t, 60, tx.Amount)
	assert.Equal(t, "goal-1", tx.RelatedID)
	assert.Equal(t, 60, l.Stats().CurrentBalance)
}

func TestTransactionsMostRecentFirst(t *testing.T) {
	l := newTestLedger(t)

	l.Earn(1, "first", "")
	l.Earn(2, "second", "")
	l.Earn(3, "third", "")

	txs := l.Transactions()
	require.Len(t, txs, 3)
	assert.Equal(t, "third", txs[0].Description)
	assert.Equal(t, "first", txs[2].Description)
}

func TestSpendHistoryFiltersAndLimits(t *testing.T) {
	l := newTestLedger(t)

	l.Earn(500, "seed", "")
	for _, desc := range []string{"a", "b", "c"} {
		_, err := l.Spend(10, desc, "")
		require.NoError(t, err)
	}

	history := l.SpendHistory(2)
	require.Len(t, history, 2)
	assert.Equal(t, "c", history[0].Description)
	assert.Equal(t, "b", history[1].Description)
}

func TestLedgerStateSurvivesReload(t *testing.T) {
	kv := newTestKV(t)

	l := NewLedger(kv, model.DefaultRewards(), nil)
	l.RecordSearch("history")
	l.Earn(90, "bonus", "")
	_, err := l.Spend(40, "coupon", "")
	require.NoError(t, err)

	reloaded := NewLedger(kv, model.DefaultRewards(), nil)
	assert.Equal(t, l.Stats(), reloaded.Stats())
	assert.Equal(t, l.Transactions(), reloaded.Transactions())
}
