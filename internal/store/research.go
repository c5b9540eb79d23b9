package store

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jyoon/topic-tracker/internal/model"
)

// ResearchLog keeps one research record per goal under
// KeyGoalResearch. Records are created lazily on first save and
// removed when their goal is deleted.
type ResearchLog struct {
	mu    sync.Mutex
	kv    KV
	log   *zap.Logger
	state map[string]model.Research
}

// NewResearchLog loads research state from kv.
func NewResearchLog(kv KV, log *zap.Logger) *ResearchLog {
	if log == nil {
		log = zap.NewNop()
	}
	r := &ResearchLog{kv: kv, log: log, state: map[string]model.Research{}}
	kv.Load(KeyGoalResearch, &r.state)
	if r.state == nil {
		r.state = map[string]model.Research{}
	}
	return r
}

// Get returns the record for goalID, or the empty record when none
// has been saved yet.
func (r *ResearchLog) Get(goalID string) model.Research {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state[goalID]
}

// Save stores the given fields for goalID, appends a snapshot to the
// bounded history, and returns the updated record together with the
// number of newly-filled fields eligible for a point award.
//
// AwardedCount is monotonic: fields that were credited at an earlier
// save stay credited even if they have since been cleared, so refilling
// them earns nothing.
func (r *ResearchLog) Save(goalID string, fields model.ResearchFields) (model.Research, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.state[goalID]
	filled := fields.FilledCount()

	newlyFilled := filled - cur.AwardedCount
	if newlyFilled < 0 {
		newlyFilled = 0
	}

	awarded := cur.AwardedCount
	if filled > awarded {
		awarded = filled
	}

	now := time.Now().UTC()
	history := append(
		[]model.ResearchSnapshot{{Timestamp: now, Fields: fields}},
		cur.History...,
	)
	if len(history) > model.MaxResearchHistory {
		history = history[:model.MaxResearchHistory]
	}

	rec := model.Research{
		Fields:       fields,
		AwardedCount: awarded,
		LastSaved:    &now,
		History:      history,
	}
	r.state[goalID] = rec
	r.persistLocked()
	return rec, newlyFilled
}

// Delete drops the record for goalID. Called when the owning goal is
// deleted; an absent record is a no-op.
func (r *ResearchLog) Delete(goalID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state[goalID]; !ok {
		return
	}
	delete(r.state, goalID)
	r.persistLocked()
}

func (r *ResearchLog) persistLocked() {
	if err := r.kv.Save(KeyGoalResearch, r.state); err != nil {
		r.log.Error("persisting research records", zap.Error(err))
	}
}
