// Package models defines the domain types for quicknote.
package models

import "time"

// Note is a single user-authored text record.
//
// ID is zero until the note has been inserted into a store.
type Note struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	ModifiedAt int64  `json:"modified_at"` // epoch milliseconds
}

// Persisted reports whether the note has been assigned an id by a store.
func (n Note) Persisted() bool {
	return n.ID != 0
}

// Touch sets ModifiedAt to t.
func (n *Note) Touch(t time.Time) {
	n.ModifiedAt = t.UnixMilli()
}

// IDs returns the ids of notes in order.
func IDs(notes []Note) []int64 {
	out := make([]int64, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}
