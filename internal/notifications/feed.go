// Package notifications maintains the per-user notification log: an
// append-only, newest-first sequence written on reply fan-out and read by the
// badge and list views.
package notifications

import (
	"context"
	"time"

	"lovecorner/internal/kvstore"
	"lovecorner/internal/middleware"
	"lovecorner/internal/models"
)

// Incoming carries the caller-supplied fields of a new notification; id,
// timestamp and the unread flag are assigned on append.
type Incoming struct {
	Type      models.NotificationType
	From      string
	Content   string
	PostID    string
	CommentID int64
}

// Feed provides append/read access to notification logs.
type Feed struct {
	store kvstore.Store
	now   func() time.Time
}

// NewFeed creates a Feed over the given store.
func NewFeed(store kvstore.Store) *Feed {
	return &Feed{store: store, now: time.Now}
}

// Append prepends a new unread notification to userID's log and persists it.
// An absent log is treated as an empty sequence, never an error.
func (f *Feed) Append(ctx context.Context, userID string, in Incoming) (*models.Notification, error) {
	existing, err := f.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	n := models.Notification{
		ID:        models.NewID(),
		Type:      in.Type,
		From:      in.From,
		Content:   in.Content,
		PostID:    in.PostID,
		CommentID: in.CommentID,
		CreatedAt: f.now(),
		Read:      false,
	}

	updated := append([]models.Notification{n}, existing...)
	if err := kvstore.SetJSON(ctx, f.store, kvstore.NotificationsKey(userID), updated); err != nil {
		return nil, err
	}

	middleware.NotificationFanouts.Inc()
	return &n, nil
}

// Load returns userID's notification log, newest first.
func (f *Feed) Load(ctx context.Context, userID string) ([]models.Notification, error) {
	var log []models.Notification
	if _, err := kvstore.GetJSON(ctx, f.store, kvstore.NotificationsKey(userID), &log); err != nil {
		return nil, err
	}
	if log == nil {
		log = []models.Notification{}
	}
	return log, nil
}

// UnreadCount returns how many of userID's notifications are unread. An
// absent log counts as zero.
func (f *Feed) UnreadCount(ctx context.Context, userID string) (int, error) {
	log, err := f.Load(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range log {
		if !n.Read {
			count++
		}
	}
	return count, nil
}
