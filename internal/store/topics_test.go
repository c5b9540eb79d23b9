package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyoon/topic-tracker/internal/model"
)

func newTestTopics(t *testing.T) *Topics {
	t.Helper()
	return NewTopics(newTestKV(t), nil)
}

func TestCreateUserTopicTagged(t *testing.T) {
	ts := newTestTopics(t)

	topic := ts.Create(TopicParams{Name: "Go Conferences", Icon: "🎤"})
	assert.Equal(t, model.TopicKindUser, topic.Kind)
	assert.True(t, topic.IsUserCreated())
	assert.NotEmpty(t, topic.ID)
}

func TestAllMergesCatalogAndUserTopics(t *testing.T) {
	ts := newTestTopics(t)
	ts.Create(TopicParams{Name: "Mine"})

	all := ts.All()
	catalog := model.CatalogTopics()
	require.Len(t, all, len(catalog)+1)
	assert.Equal(t, model.TopicKindCatalog, all[0].Kind)
	assert.Equal(t, "Mine", all[len(all)-1].Name)
}

func TestCatalogTopicsAreNotUserCreated(t *testing.T) {
	for _, topic := range model.CatalogTopics() {
		assert.False(t, topic.IsUserCreated(), topic.ID)
	}
}

func TestUpdateUserTopicPartial(t *testing.T) {
	ts := newTestTopics(t)
	topic := ts.Create(TopicParams{Name: "Go Meetups", Link: "https://example.com"})

	name := "Go Meetups 2026"
	ts.Update(topic.ID, TopicUpdate{Name: &name})

	got, ok := ts.Topic(topic.ID)
	require.True(t, ok)
	assert.Equal(t, "Go Meetups 2026", got.Name)
	assert.Equal(t, "https://example.com", got.Link)
}

func TestDeleteUnknownTopicIsNoop(t *testing.T) {
	ts := newTestTopics(t)
	ts.Create(TopicParams{Name: "keep"})

	ts.Delete("no-such-id")
	assert.Len(t, ts.UserTopics(), 1)
}

func TestTopicLookupSpansCatalog(t *testing.T) {
	ts := newTestTopics(t)

	got, ok := ts.Topic("coffee")
	require.True(t, ok)
	assert.Equal(t, model.TopicKindCatalog, got.Kind)
}

func TestUserTopicsSurviveReload(t *testing.T) {
	kv := newTestKV(t)

	ts := NewTopics(kv, nil)
	ts.Create(TopicParams{Name: "durable", Keywords: "kv, sqlite"})

	reloaded := NewTopics(kv, nil)
	assert.Equal(t, ts.UserTopics(), reloaded.UserTopics())
}
