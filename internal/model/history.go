package model

import "time"

// HistoryEntry is one recorded question/answer shown to the user.
// Source is set only when the answer came from a user-supplied URL.
type HistoryEntry struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Source   string    `json:"source,omitempty"`
	AskedAt  time.Time `json:"asked_at"`
}

// SearchResult is one parsed block from a search engine results page.
// Ephemeral, never persisted.
type SearchResult struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}
