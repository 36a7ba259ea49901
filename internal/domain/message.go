package domain

import "time"

// Message is one direct message. Append-only, never mutated or deleted.
// From and To hold normalized identity keys.
type Message struct {
	Id     string    `json:"id"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	Text   string    `json:"text"`
	Images []string  `json:"images"`
	Time   time.Time `json:"time"`
}

// ThreadSummary collapses a conversation with one peer into its latest
// message. Threads are a derived view, not a stored entity.
type ThreadSummary struct {
	Peer string    `json:"peer"`
	Last string    `json:"last"`
	Time time.Time `json:"time"`
}
