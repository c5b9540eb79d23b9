package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyoon/topic-tracker/internal/model"
)

func newTestResearch(t *testing.T) *ResearchLog {
	t.Helper()
	return NewResearchLog(newTestKV(t), nil)
}

func TestGetUnknownGoalReturnsEmptyRecord(t *testing.T) {
	r := newTestResearch(t)
	assert.Equal(t, model.Research{}, r.Get("nothing"))
}

func TestSaveCountsNewlyFilledFields(t *testing.T) {
	r := newTestResearch(t)

	rec, newlyFilled := r.Save("goal-1", model.ResearchFields{
		Link:     "https://go.dev",
		Keywords: "generics, iterators",
	})
	assert.Equal(t, 2, newlyFilled)
	assert.Equal(t, 2, rec.AwardedCount)
	require.NotNil(t, rec.LastSaved)

	// Filling a third field credits only the new one.
	rec, newlyFilled = r.Save("goal-1", model.ResearchFields{
		Link:     "https://go.dev",
		Keywords: "generics, iterators",
		Notes:    "read the spec",
	})
	assert.Equal(t, 1, newlyFilled)
	assert.Equal(t, 3, rec.AwardedCount)
}

func TestAwardedCountIsMonotonic(t *testing.T) {
	r := newTestResearch(t)

	_, newlyFilled := r.Save("goal-1", model.ResearchFields{Link: "a", Keywords: "b"})
	require.Equal(t, 2, newlyFilled)

	// Clearing both fields must not reset the credit.
	rec, newlyFilled := r.Save("goal-1", model.ResearchFields{})
	assert.Equal(t, 0, newlyFilled)
	assert.Equal(t, 2, rec.AwardedCount)

	// Refilling previously credited fields earns nothing.
	rec, newlyFilled = r.Save("goal-1", model.ResearchFields{Link: "a", Keywords: "b"})
	assert.Equal(t, 0, newlyFilled)
	assert.Equal(t, 2, rec.AwardedCount)
}

func TestBlankFieldsDoNotCount(t *testing.T) {
	r := newTestResearch(t)

	_, newlyFilled := r.Save("goal-1", model.ResearchFields{Link: "   ", Notes: "\n\t"})
	assert.Equal(t, 0, newlyFilled)
}

func TestHistoryBoundedAndMostRecentFirst(t *testing.T) {
	r := newTestResearch(t)

	for i := 0; i < model.MaxResearchHistory+5; i++ {
		r.Save("goal-1", model.ResearchFields{Notes: fmt.Sprintf("rev %d", i)})
	}

	rec := r.Get("goal-1")
	require.Len(t, rec.History, model.MaxResearchHistory)
	assert.Equal(t, "rev 14", rec.History[0].Fields.Notes)
	assert.Equal(t, "rev 5", rec.History[len(rec.History)-1].Fields.Notes)
}

func TestDeleteRemovesRecord(t *testing.T) {
	r := newTestResearch(t)

	r.Save("goal-1", model.ResearchFields{Link: "x"})
	r.Delete("goal-1")
	assert.Equal(t, model.Research{}, r.Get("goal-1"))

	// Deleting an absent record is a no-op.
	r.Delete("goal-1")
}

func TestResearchSurvivesReload(t *testing.T) {
	kv := newTestKV(t)

	r := NewResearchLog(kv, nil)
	r.Save("goal-1", model.ResearchFields{Summary: "findings"})

	reloaded := NewResearchLog(kv, nil)
	assert.Equal(t, r.Get("goal-1"), reloaded.Get("goal-1"))
}
