package model

import "time"

// Topic kinds. Catalog topics ship with the application and are never
// persisted; user topics are created in-app and stored.
const (
	TopicKindCatalog = "catalog"
	TopicKindUser    = "user"
)

// Topic is a category of interest carrying a search link.
// Kind is the explicit discriminant between the built-in catalog
// entries and user-created topics.
type Topic struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Link      string    `json:"link"`
	Keywords  string    `json:"keywords,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// IsUserCreated reports whether the topic can be edited or deleted.
func (t Topic) IsUserCreated() bool {
	return t.Kind == TopicKindUser
}

// CatalogTopics returns the built-in topic catalog. The slice is
// freshly allocated on each call so callers may append to it.
func CatalogTopics() []Topic {
	return []Topic{
		{ID: "domestic-travel", Kind: TopicKindCatalog, Name: "Domestic Travel", Icon: "🚂", Link: "https://www.google.com/search?q=domestic+travel+ideas"},
		{ID: "international-travel", Kind: TopicKindCatalog, Name: "International Travel", Icon: "✈️", Link: "https://www.google.com/search?q=international+travel+ideas"},
		{ID: "culture", Kind: TopicKindCatalog, Name: "Culture", Icon: "🖼️", Link: "https://www.google.com/search?q=cultural+events+nearby"},
		{ID: "coffee", Kind: TopicKindCatalog, Name: "Coffee", Icon: "☕", Link: "https://www.google.com/search?q=best+coffee+shops"},
		{ID: "gourmet", Kind: TopicKindCatalog, Name: "Gourmet", Icon: "🍽️", Link: "https://www.google.com/search?q=restaurant+recommendations"},
		{ID: "architecture", Kind: TopicKindCatalog, Name: "Architecture", Icon: "🏛️", Link: "https://www.google.com/search?q=architecture+landmarks"},
		{ID: "outdoor", Kind: TopicKindCatalog, Name: "Outdoor", Icon: "⛺", Link: "https://www.google.com/search?q=outdoor+activities"},
		{ID: "workspace", Kind: TopicKindCatalog, Name: "Workspace", Icon: "💼", Link: "https://www.google.com/search?q=coworking+cafes"},
		{ID: "pets", Kind: TopicKindCatalog, Name: "Pets", Icon: "🐾", Link: "https://www.google.com/search?q=pet+friendly+places"},
		{ID: "wellness", Kind: TopicKindCatalog, Name: "Wellness", Icon: "🧘", Link: "https://www.google.com/search?q=wellness+routines"},
	}
}
