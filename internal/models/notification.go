package models

import "time"

// NotificationType classifies what triggered a notification.
type NotificationType string

const (
	// NotificationReply is sent to a comment author when someone replies.
	NotificationReply NotificationType = "reply"
	// NotificationReaction is reserved for reaction events.
	NotificationReaction NotificationType = "reaction"
)

// Notification is one entry in a user's notification log. Entries are
// append-only; only the Read flag ever changes after creation.
type Notification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"type"`
	From      string           `json:"from"`
	Content   string           `json:"content"`
	PostID    string           `json:"postId"`
	CommentID int64            `json:"commentId,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	Read      bool             `json:"read"`
}
