package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jyoon/topic-tracker/internal/model"
)

// goalState is the persisted shape of the goal store, one JSON
// document under KeyGoalsSystem.
type goalState struct {
	Goals  []model.Goal  `json:"goals"`
	Checks []model.Check `json:"checks"`
}

// GoalParams are the caller-supplied fields for a new goal.
type GoalParams struct {
	Title       string
	Description string
	TopicID     string
	TargetDate  *time.Time
}

// Goals holds goals and their append-only check-in records. Both
// collections are most-recent-first. Deleting a goal cascades to its
// checks; checks are never deleted on their own.
type Goals struct {
	mu    sync.Mutex
	kv    KV
	log   *zap.Logger
	state goalState
}

// NewGoals loads goal state from kv, starting empty when nothing
// valid is stored.
func NewGoals(kv KV, log *zap.Logger) *Goals {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Goals{kv: kv, log: log}
	kv.Load(KeyGoalsSystem, &g.state)
	return g
}

// Create adds a new active goal at the head of the collection.
func (g *Goals) Create(params GoalParams) model.Goal {
	g.mu.Lock()
	defer g.mu.Unlock()

	goal := model.Goal{
		ID:          uuid.New().String(),
		Title:       params.Title,
		Description: params.Description,
		TopicID:     params.TopicID,
		TargetDate:  params.TargetDate,
		CreatedAt:   time.Now().UTC(),
		Status:      model.GoalStatusActive,
	}
	g.state.Goals = append([]model.Goal{goal}, g.state.Goals...)
	g.persistLocked()
	return goal
}

// Update merges the non-nil fields of upd into the matching goal.
// An unknown id is silently a no-op.
func (g *Goals) Update(id string, upd model.GoalUpdate) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.state.Goals {
		if g.state.Goals[i].ID != id {
			continue
		}
		goal := &g.state.Goals[i]
		if upd.Title != nil {
			goal.Title = *upd.Title
		}
		if upd.Description != nil {
			goal.Description = *upd.Description
		}
		if upd.TopicID != nil {
			goal.TopicID = *upd.TopicID
		}
		if upd.TargetDate != nil {
			goal.TargetDate = upd.TargetDate
		}
		if upd.Status != nil {
			goal.Status = *upd.Status
		}
		g.persistLocked()
		return
	}
}

// Delete removes the goal and every check recorded against it.
// An unknown id is silently a no-op.
func (g *Goals) Delete(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	found := false
	goals := g.state.Goals[:0]
	for _, goal := range g.state.Goals {
		if goal.ID == id {
			found = true
			continue
		}
		goals = append(goals, goal)
	}
	if !found {
		return
	}
	g.state.Goals = goals

	checks := g.state.Checks[:0]
	for _, check := range g.state.Checks {
		if check.GoalID != id {
			checks = append(checks, check)
		}
	}
	g.state.Checks = checks

	g.persistLocked()
}

// AddCheck records a check-in against a goal. The caller supplies the
// authoritative pointsEarned value computed by the ledger's award
// policy; it is stored for display and never recomputed.
func (g *Goals) AddCheck(goalID, content string, rating, pointsEarned int) model.Check {
	g.mu.Lock()
	defer g.mu.Unlock()

	check := model.Check{
		ID:           uuid.New().String(),
		GoalID:       goalID,
		CheckDate:    time.Now().UTC(),
		Content:      content,
		Rating:       rating,
		PointsEarned: pointsEarned,
	}
	g.state.Checks = append([]model.Check{check}, g.state.Checks...)
	g.persistLocked()
	return check
}

// ChecksForGoal returns the checks recorded against goalID, most
// recent first.
func (g *Goals) ChecksForGoal(goalID string) []model.Check {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []model.Check
	for _, check := range g.state.Checks {
		if check.GoalID == goalID {
			out = append(out, check)
		}
	}
	return out
}

// Goal looks a goal up by id.
func (g *Goals) Goal(id string) (model.Goal, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, goal := range g.state.Goals {
		if goal.ID == id {
			return goal, true
		}
	}
	return model.Goal{}, false
}

// GoalForTopic returns the goal linked to the given topic, if any.
// The goal side owns the link, so this query is the only way a topic
// finds its goal.
func (g *Goals) GoalForTopic(topicID string) (model.Goal, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, goal := range g.state.Goals {
		if goal.TopicID == topicID && topicID != "" {
			return goal, true
		}
	}
	return model.Goal{}, false
}

// All returns a copy of the goal list, most recent first.
func (g *Goals) All() []model.Goal {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]model.Goal, len(g.state.Goals))
	copy(out, g.state.Goals)
	return out
}

// CheckCount returns the total number of recorded check-ins.
func (g *Goals) CheckCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.state.Checks)
}

func (g *Goals) persistLocked() {
	if err := g.kv.Save(KeyGoalsSystem, g.state); err != nil {
		g.log.Error("persisting goals", zap.Error(err))
	}
}
