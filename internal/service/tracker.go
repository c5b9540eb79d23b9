package service

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jyoon/topic-tracker/internal/model"
	"github.com/jyoon/topic-tracker/internal/store"
)

// Errors for the declared failure modes of tracker operations.
var (
	ErrGoalNotFound     = errors.New("goal not found")
	ErrTopicNotFound    = errors.New("topic not found")
	ErrUnknownItem      = errors.New("unknown shop item")
	ErrAlreadyPurchased = errors.New("item already purchased")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrEmptyTitle       = errors.New("title must not be empty")
)

// Tracker coordinates the stores for operations that touch more than
// one of them: check-ins (goal store + ledger), research saves
// (research log + ledger), purchases (ledger + purchases), topic
// searches, and goal deletion cascades.
type Tracker struct {
	ledger    *store.Ledger
	goals     *store.Goals
	research  *store.ResearchLog
	topics    *store.Topics
	purchases *store.Purchases
	log       *zap.Logger
	rewards   model.Rewards
}

// New wires a Tracker over freshly loaded stores backed by kv.
func New(kv store.KV, rewards model.Rewards, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{
		ledger:    store.NewLedger(kv, rewards, log),
		goals:     store.NewGoals(kv, log),
		research:  store.NewResearchLog(kv, log),
		topics:    store.NewTopics(kv, log),
		purchases: store.NewPurchases(kv, log),
		log:       log,
		rewards:   rewards,
	}
}

// Ledger exposes the point ledger.
func (t *Tracker) Ledger() *store.Ledger { return t.ledger }

// Goals exposes the goal store.
func (t *Tracker) Goals() *store.Goals { return t.goals }

// Research exposes the research log.
func (t *Tracker) Research() *store.ResearchLog { return t.research }

// Topics exposes the topic store.
func (t *Tracker) Topics() *store.Topics { return t.topics }

// Purchases exposes the purchased-items store.
func (t *Tracker) Purchases() *store.Purchases { return t.purchases }

// Rewards returns the reward configuration the tracker was built with.
func (t *Tracker) Rewards() model.Rewards { return t.rewards }

// CreateGoal validates and creates a goal.
func (t *Tracker) CreateGoal(params store.GoalParams) (model.Goal, error) {
	if strings.TrimSpace(params.Title) == "" {
		return model.Goal{}, ErrEmptyTitle
	}
	goal := t.goals.Create(params)
	t.log.Info("goal created",
		zap.String("goal_id", goal.ID), zap.String("title", goal.Title))
	return goal, nil
}

// DeleteGoal removes a goal, its checks, and its research record.
func (t *Tracker) DeleteGoal(goalID string) {
	t.goals.Delete(goalID)
	t.research.Delete(goalID)
}

// CheckIn records a self-assessment against a goal and credits the
// award in the same operation. The check carries the authoritative
// PointsEarned value; the matching earn transaction references the
// goal.
func (t *Tracker) CheckIn(goalID, content string, rating int) (model.Check, error) {
	if rating < model.MinRating || rating > model.MaxRating {
		return model.Check{}, fmt.Errorf("rating %d: %w", rating, ErrInvalidRating)
	}
	if _, ok := t.goals.Goal(goalID); !ok {
		return model.Check{}, fmt.Errorf("goal %s: %w", goalID, ErrGoalNotFound)
	}

	award := t.ledger.CheckInAward(rating)
	check := t.goals.AddCheck(goalID, content, rating, award)
	t.ledger.RecordCheckIn(goalID, rating)

	t.log.Info("check-in recorded",
		zap.String("goal_id", goalID),
		zap.Int("rating", rating),
		zap.Int("points", award))
	return check, nil
}

// SearchTopic records a search against a topic and returns the topic
// so the caller can open its link.
func (t *Tracker) SearchTopic(topicID string) (model.Topic, error) {
	topic, ok := t.topics.Topic(topicID)
	if !ok {
		return model.Topic{}, fmt.Errorf("topic %s: %w", topicID, ErrTopicNotFound)
	}
	t.ledger.RecordSearch(topic.Name)
	return topic, nil
}

// SaveResearch stores the research fields for a goal and credits
// points for fields filled for the first time. It returns the updated
// record and the number of points earned by this save (zero when no
// new fields were filled).
func (t *Tracker) SaveResearch(goalID string, fields model.ResearchFields) (model.Research, int, error) {
	goal, ok := t.goals.Goal(goalID)
	if !ok {
		return model.Research{}, 0, fmt.Errorf("goal %s: %w", goalID, ErrGoalNotFound)
	}

	rec, newlyFilled := t.research.Save(goalID, fields)
	earned := 0
	if newlyFilled > 0 {
		earned = newlyFilled * t.rewards.ResearchFieldPoints
		t.ledger.Earn(earned, fmt.Sprintf("Research notes for %q", goal.Title), goalID)
	}
	return rec, earned, nil
}

// Purchase buys a shop item: rejects items already owned, spends the
// price (ErrInsufficientPoints propagates untouched), and records
// ownership.
func (t *Tracker) Purchase(itemID string) (model.ShopItem, error) {
	item, ok := model.FindShopItem(itemID)
	if !ok {
		return model.ShopItem{}, fmt.Errorf("item %s: %w", itemID, ErrUnknownItem)
	}
	if t.purchases.Contains(itemID) {
		return model.ShopItem{}, fmt.Errorf("item %s: %w", itemID, ErrAlreadyPurchased)
	}

	if _, err := t.ledger.Spend(item.Price, fmt.Sprintf("Purchased %s", item.Name), item.ID); err != nil {
		return model.ShopItem{}, err
	}
	t.purchases.Add(itemID)

	t.log.Info("item purchased",
		zap.String("item_id", item.ID), zap.Int("price", item.Price))
	return item, nil
}

// SetGoalForTopic creates or updates the goal owned by a user topic.
// The goal side stores the link; nothing is written to the topic.
func (t *Tracker) SetGoalForTopic(topicID, title, description string) (model.Goal, error) {
	if strings.TrimSpace(title) == "" {
		return model.Goal{}, ErrEmptyTitle
	}
	if _, ok := t.topics.Topic(topicID); !ok {
		return model.Goal{}, fmt.Errorf("topic %s: %w", topicID, ErrTopicNotFound)
	}

	if existing, ok := t.goals.GoalForTopic(topicID); ok {
		t.goals.Update(existing.ID, model.GoalUpdate{
			Title:       &title,
			Description: &description,
		})
		updated, _ := t.goals.Goal(existing.ID)
		return updated, nil
	}

	return t.goals.Create(store.GoalParams{
		Title:       title,
		Description: description,
		TopicID:     topicID,
	}), nil
}
