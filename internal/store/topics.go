package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jyoon/topic-tracker/internal/model"
)

// TopicParams are the caller-supplied fields for a new user topic.
type TopicParams struct {
	Name     string
	Icon     string
	Link     string
	Keywords string
}

// TopicUpdate is a partial-field update for a user topic.
type TopicUpdate struct {
	Name     *string
	Icon     *string
	Link     *string
	Keywords *string
}

// Topics persists user-created topics under KeyUserTopics. Catalog
// topics are static configuration and never stored; All merges the
// two, catalog first.
type Topics struct {
	mu    sync.Mutex
	kv    KV
	log   *zap.Logger
	state []model.Topic
}

// NewTopics loads user topics from kv.
func NewTopics(kv KV, log *zap.Logger) *Topics {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Topics{kv: kv, log: log}
	kv.Load(KeyUserTopics, &t.state)
	return t
}

// Create adds a new user topic at the head of the list.
func (t *Topics) Create(params TopicParams) model.Topic {
	t.mu.Lock()
	defer t.mu.Unlock()

	topic := model.Topic{
		ID:        uuid.New().String(),
		Kind:      model.TopicKindUser,
		Name:      params.Name,
		Icon:      params.Icon,
		Link:      params.Link,
		Keywords:  params.Keywords,
		CreatedAt: time.Now().UTC(),
	}
	t.state = append([]model.Topic{topic}, t.state...)
	t.persistLocked()
	return topic
}

// Update merges the non-nil fields of upd into the matching user
// topic. An unknown id is silently a no-op.
func (t *Topics) Update(id string, upd TopicUpdate) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.state {
		if t.state[i].ID != id {
			continue
		}
		topic := &t.state[i]
		if upd.Name != nil {
			topic.Name = *upd.Name
		}
		if upd.Icon != nil {
			topic.Icon = *upd.Icon
		}
		if upd.Link != nil {
			topic.Link = *upd.Link
		}
		if upd.Keywords != nil {
			topic.Keywords = *upd.Keywords
		}
		t.persistLocked()
		return
	}
}

// Delete removes a user topic. An unknown id is silently a no-op.
func (t *Topics) Delete(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.state {
		if t.state[i].ID == id {
			t.state = append(t.state[:i], t.state[i+1:]...)
			t.persistLocked()
			return
		}
	}
}

// UserTopics returns a copy of the user-created topics, most recent
// first.
func (t *Topics) UserTopics() []model.Topic {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.Topic, len(t.state))
	copy(out, t.state)
	return out
}

// All returns the catalog topics followed by the user topics.
func (t *Topics) All() []model.Topic {
	return append(model.CatalogTopics(), t.UserTopics()...)
}

// Topic looks a topic up by id across the catalog and user topics.
func (t *Topics) Topic(id string) (model.Topic, bool) {
	for _, topic := range t.All() {
		if topic.ID == id {
			return topic, true
		}
	}
	return model.Topic{}, false
}

func (t *Topics) persistLocked() {
	if err := t.kv.Save(KeyUserTopics, t.state); err != nil {
		t.log.Error("persisting user topics", zap.Error(err))
	}
}
