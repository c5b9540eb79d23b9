package store

// Storage keys. Each logical store persists as one JSON document under
// a fixed key; these five records are the only durable artifacts.
const (
	KeyPointSystem    = "point_system"
	KeyGoalsSystem    = "goals_system"
	KeyGoalResearch   = "goal_research"
	KeyPurchasedItems = "purchased_items"
	KeyUserTopics     = "user_topics"
)

// AllKeys lists every storage key, in a stable order. Used by backup
// export/import.
func AllKeys() []string {
	return []string{
		KeyPointSystem,
		KeyGoalsSystem,
		KeyGoalResearch,
		KeyPurchasedItems,
		KeyUserTopics,
	}
}

// KV is the persistence boundary: a key-value store of JSON documents.
//
// Load decodes the document under key into dst and reports whether a
// usable value was found. An absent key or a malformed document both
// leave dst untouched and return false; malformed data is logged by the
// implementation but never propagated, so callers always start from
// their empty default.
//
// Save serializes value and writes it synchronously. Callers invoke it
// once per mutation, immediately after updating in-memory state.
type KV interface {
	Load(key string, dst any) bool
	Save(key string, value any) error
}
