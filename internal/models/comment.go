package models

import "time"

// Comment represents a top-level comment on a post. Comments are listed
// newest-first and carry their replies inline.
type Comment struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Avatar    string    `json:"avatar,omitempty"`
	Replies   []Reply   `json:"replies"`
	ReactionState
}

// Reply is a second-level response under a comment, appended in
// chronological order.
type Reply struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Avatar    string    `json:"avatar,omitempty"`
	ReactionState
}

// Normalize repairs a comment loaded from storage: a missing reply sequence
// becomes empty, never nil, and reaction state is normalized throughout.
func (c *Comment) Normalize() {
	if c.Replies == nil {
		c.Replies = []Reply{}
	}
	c.ReactionState.Normalize()
	for i := range c.Replies {
		c.Replies[i].ReactionState.Normalize()
	}
}
