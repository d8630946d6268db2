package models

import (
	"strconv"
	"time"
)

// Post represents a single pickup line shown on its own detail page. Posts are
// authored elsewhere and are read-only here except for their reaction state.
type Post struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	ReactionState
}

// Key returns the post id in the string form used by route params and
// persisted collection names.
func (p Post) Key() string {
	return strconv.FormatInt(p.ID, 10)
}

// Normalize repairs a post loaded from storage.
func (p *Post) Normalize() {
	p.ReactionState.Normalize()
}
