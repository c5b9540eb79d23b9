package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyoon/topic-tracker/internal/model"
	"github.com/jyoon/topic-tracker/internal/service"
	"github.com/jyoon/topic-tracker/internal/store"
	"github.com/jyoon/topic-tracker/tests/testutil"
)

func newTestTracker(t *testing.T) *service.Tracker {
	t.Helper()
	return service.New(testutil.NewTestKV(t), model.DefaultRewards(), nil)
}

func TestCheckInStoresAuthoritativeAward(t *testing.T) {
	tr := newTestTracker(t)

	goal, err := tr.CreateGoal(store.GoalParams{Title: "Learn Go"})
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusActive, goal.Status)

	check, err := tr.CheckIn(goal.ID, "day1", 4)
	require.NoError(t, err)
	assert.Equal(t, 60, check.PointsEarned)
	assert.Equal(t, 4, check.Rating)

	// The matching earn transaction lands in the same operation.
	stats := tr.Ledger().Stats()
	assert.Equal(t, 60, stats.CurrentBalance)

	checks := tr.Goals().ChecksForGoal(goal.ID)
	require.Len(t, checks, 1)
	assert.Equal(t, check.ID, checks[0].ID)
}

func TestCheckInValidatesRating(t *testing.T) {
	tr := newTestTracker(t)
	goal, err := tr.CreateGoal(store.GoalParams{Title: "Learn Go"})
	require.NoError(t, err)

	for _, rating := range []int{0, 6, -1} {
		_, err := tr.CheckIn(goal.ID, "x", rating)
		assert.ErrorIs(t, err, service.ErrInvalidRating, "rating %d", rating)
	}
	assert.Zero(t, tr.Ledger().Stats().CurrentBalance)
	assert.Zero(t, tr.Goals().CheckCount())
}

func TestCheckInUnknownGoal(t *testing.T) {
	tr := newTestTracker(t)

	_, err := tr.CheckIn("no-such-goal", "x", 3)
	assert.ErrorIs(t, err, service.ErrGoalNotFound)
	assert.Zero(t, tr.Ledger().Stats().CurrentBalance)
}

func TestDeleteGoalCascadesChecksAndResearch(t *testing.T) {
	tr := newTestTracker(t)

	goal, err := tr.CreateGoal(store.GoalParams{Title: "Learn Go"})
	require.NoError(t, err)

	_, err = tr.CheckIn(goal.ID, "day1", 4)
	require.NoError(t, err)
	_, _, err = tr.SaveResearch(goal.ID, model.ResearchFields{Notes: "notes"})
	require.NoError(t, err)

	tr.DeleteGoal(goal.ID)

	assert.Empty(t, tr.Goals().ChecksForGoal(goal.ID))
	assert.Equal(t, model.Research{}, tr.Research().Get(goal.ID))

	// The ledger is append-only: earned points survive the delete.
	assert.Equal(t, 90, tr.Ledger().Stats().CurrentBalance)
}

func TestSearchTopicAwardsAndCounts(t *testing.T) {
	tr := newTestTracker(t)

	topic, err := tr.SearchTopic("coffee")
	require.NoError(t, err)
	assert.Equal(t, "Coffee", topic.Name)

	stats := tr.Ledger().Stats()
	assert.Equal(t, 10, stats.CurrentBalance)
	assert.Equal(t, 1, stats.SearchCount)

	_, err = tr.SearchTopic("no-such-topic")
	assert.ErrorIs(t, err, service.ErrTopicNotFound)
	assert.Equal(t, 1, tr.Ledger().Stats().SearchCount)
}

func TestSaveResearchAwardsNewFieldsOnly(t *testing.T) {
	tr := newTestTracker(t)
	goal, err := tr.CreateGoal(store.GoalParams{Title: "Learn Go"})
	require.NoError(t, err)

	_, earned, err := tr.SaveResearch(goal.ID, model.ResearchFields{
		Link:     "https://go.dev",
		Keywords: "testing",
	})
	require.NoError(t, err)
	assert.Equal(t, 60, earned)
	assert.Equal(t, 60, tr.Ledger().Stats().CurrentBalance)

	// Saving the same fields again earns nothing.
	_, earned, err = tr.SaveResearch(goal.ID, model.ResearchFields{
		Link:     "https://go.dev",
		Keywords: "testing",
	})
	require.NoError(t, err)
	assert.Zero(t, earned)
	assert.Equal(t, 60, tr.Ledger().Stats().CurrentBalance)
}

func TestSaveResearchUnknownGoal(t *testing.T) {
	tr := newTestTracker(t)

	_, _, err := tr.SaveResearch("no-such-goal", model.ResearchFields{Link: "x"})
	assert.ErrorIs(t, err, service.ErrGoalNotFound)
}

func TestPurchaseFlow(t *testing.T) {
	tr := newTestTracker(t)

	// Coffee costs 100; an empty wallet is rejected without mutation.
	_, err := tr.Purchase("coffee")
	require.ErrorIs(t, err, store.ErrInsufficientPoints)
	assert.False(t, tr.Purchases().Contains("coffee"))

	tr.Ledger().Earn(150, "seed", "")
	item, err := tr.Purchase("coffee")
	require.NoError(t, err)
	assert.Equal(t, 100, item.Price)
	assert.True(t, tr.Purchases().Contains("coffee"))
	assert.Equal(t, 50, tr.Ledger().Stats().CurrentBalance)

	_, err = tr.Purchase("coffee")
	assert.ErrorIs(t, err, service.ErrAlreadyPurchased)

	_, err = tr.Purchase("no-such-item")
	assert.ErrorIs(t, err, service.ErrUnknownItem)
}

func TestCreateGoalRequiresTitle(t *testing.T) {
	tr := newTestTracker(t)

	_, err := tr.CreateGoal(store.GoalParams{Title: "   "})
	assert.ErrorIs(t, err, service.ErrEmptyTitle)
}

func TestSetGoalForTopicOwnsSingleLink(t *testing.T) {
	tr := newTestTracker(t)

	topic := tr.Topics().Create(store.TopicParams{Name: "Go Conferences"})

	created, err := tr.SetGoalForTopic(topic.ID, "Attend one", "this year")
	require.NoError(t, err)
	assert.Equal(t, topic.ID, created.TopicID)

	// A second save updates the same goal instead of creating another.
	updated, err := tr.SetGoalForTopic(topic.ID, "Attend two", "stretch")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Attend two", updated.Title)

	linked, ok := tr.Goals().GoalForTopic(topic.ID)
	require.True(t, ok)
	assert.Equal(t, created.ID, linked.ID)
	assert.Len(t, tr.Goals().All(), 1)
}

func TestFullScenario(t *testing.T) {
	tr := newTestTracker(t)

	goal, err := tr.CreateGoal(store.GoalParams{Title: "Learn Go"})
	require.NoError(t, err)

	_, err = tr.SearchTopic("workspace")
	require.NoError(t, err)

	check, err := tr.CheckIn(goal.ID, "day1", 4)
	require.NoError(t, err)
	assert.Equal(t, 60, check.PointsEarned)

	stats := tr.Ledger().Stats()
	assert.Equal(t, 70, stats.CurrentBalance)
	assert.Equal(t, 1, stats.SearchCount)

	tr.DeleteGoal(goal.ID)
	assert.Empty(t, tr.Goals().ChecksForGoal(goal.ID))
}
