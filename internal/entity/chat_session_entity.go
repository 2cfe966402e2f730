package entity

// SessionRecord is the persisted, named representation of a conversation.
// Records live in one MRU-ordered collection capped at the store's retention
// limit; identifiers are stable across merges.
type SessionRecord struct {
	Id       string    `json:"id"`
	Title    string    `json:"title"`
	Preview  string    `json:"preview"`
	Date     string    `json:"date"`
	Tags     []string  `json:"tags"`
	Messages []Message `json:"messages"`
}
