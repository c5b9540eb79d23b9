package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyoon/topic-tracker/internal/model"
)

func newTestGoals(t *testing.T) *Goals {
	t.Helper()
	return NewGoals(newTestKV(t), nil)
}

func TestCreateGoalDefaults(t *testing.T) {
	g := newTestGoals(t)

	goal := g.Create(GoalParams{Title: "Learn Go"})
	assert.NotEmpty(t, goal.ID)
	assert.Equal(t, model.GoalStatusActive, goal.Status)
	assert.False(t, goal.CreatedAt.IsZero())

	got, ok := g.Goal(goal.ID)
	require.True(t, ok)
	assert.Equal(t, goal, got)
}

func TestGoalsMostRecentFirst(t *testing.T) {
	g := newTestGoals(t)

	g.Create(GoalParams{Title: "first"})
	g.Create(GoalParams{Title: "second"})

	all := g.All()
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Title)
	assert.Equal(t, "first", all[1].Title)
}

func TestUpdateGoalMergesPartialFields(t *testing.T) {
	g := newTestGoals(t)

	goal := g.Create(GoalParams{Title: "Learn Go", Description: "stdlib first"})

	status := model.GoalStatusCompleted
	g.Update(goal.ID, model.GoalUpdate{Status: &status})

	got, ok := g.Goal(goal.ID)
	require.True(t, ok)
	assert.Equal(t, model.GoalStatusCompleted, got.Status)
	assert.Equal(t, "Learn Go", got.Title, "untouched fields keep their values")
	assert.Equal(t, "stdlib first", got.Description)
}

func TestUpdateUnknownGoalIsNoop(t *testing.T) {
	g := newTestGoals(t)
	goal := g.Create(GoalParams{Title: "keep me"})

	title := "changed"
	g.Update("no-such-id", model.GoalUpdate{Title: &title})

	got, _ := g.Goal(goal.ID)
	assert.Equal(t, "keep me", got.Title)
}

func TestDeleteGoalCascadesToChecks(t *testing.T) {
	g := newTestGoals(t)

	doomed := g.Create(GoalParams{Title: "doomed"})
	kept := g.Create(GoalParams{Title: "kept"})

	g.AddCheck(doomed.ID, "day 1", 4, 60)
	g.AddCheck(doomed.ID, "day 2", 5, 70)
	g.AddCheck(kept.ID, "day 1", 3, 50)

	g.Delete(doomed.ID)

	_, ok := g.Goal(doomed.ID)
	assert.False(t, ok)
	assert.Empty(t, g.ChecksForGoal(doomed.ID))

	survivors := g.ChecksForGoal(kept.ID)
	require.Len(t, survivors, 1)
	assert.Equal(t, "day 1", survivors[0].Content)
}

func TestDeleteUnknownGoalIsNoop(t *testing.T) {
	g := newTestGoals(t)
	g.Create(GoalParams{Title: "survivor"})

	g.Delete("no-such-id")
	assert.Len(t, g.All(), 1)
}

func TestChecksForGoalMostRecentFirst(t *testing.T) {
	g := newTestGoals(t)
	goal := g.Create(GoalParams{Title: "steady"})

	g.AddCheck(goal.ID, "day 1", 3, 50)
	g.AddCheck(goal.ID, "day 2", 4, 60)

	checks := g.ChecksForGoal(goal.ID)
	require.Len(t, checks, 2)
	assert.Equal(t, "day 2", checks[0].Content)
	assert.Equal(t, "day 1", checks[1].Content)
}

func TestGoalForTopicQueriesOwningSide(t *testing.T) {
	g := newTestGoals(t)

	linked := g.Create(GoalParams{Title: "linked", TopicID: "topic-1"})
	g.Create(GoalParams{Title: "unlinked"})

	got, ok := g.GoalForTopic("topic-1")
	require.True(t, ok)
	assert.Equal(t, linked.ID, got.ID)

	_, ok = g.GoalForTopic("")
	assert.False(t, ok, "goals without a topic must not match the empty id")
}

func TestGoalStateSurvivesReload(t *testing.T) {
	kv := newTestKV(t)

	g := NewGoals(kv, nil)
	goal := g.Create(GoalParams{Title: "durable"})
	g.AddCheck(goal.ID, "day 1", 5, 70)

	reloaded := NewGoals(kv, nil)
	assert.Equal(t, g.All(), reloaded.All())
	assert.Equal(t, g.ChecksForGoal(goal.ID), reloaded.ChecksForGoal(goal.ID))
}
