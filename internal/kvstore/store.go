// Package kvstore provides the flat key/value persistence port backing the
// engagement engine. Values are JSON-encoded sequences stored under
// well-known string keys; backends are interchangeable behind Store.
package kvstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"reflect"

	"lovecorner/internal/middleware"
)

// Store is the persistence port. Get reports found=false for absent keys
// without an error; Set overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Persisted collection keys. These names are the storage contract; renaming
// them orphans existing data.
const (
	// PostsKey holds the ordered sequence of posts.
	PostsKey = "pickupLines"
	// CurrentUserKey holds the demo identity written by the seeder.
	CurrentUserKey = "currentUser"

	commentsKeyPrefix      = "comments_pickup_"
	notificationsKeyPrefix = "notifications_"
)

// CommentsKey returns the key of a post's comment list.
func CommentsKey(postID string) string {
	return commentsKeyPrefix + postID
}

// NotificationsKey returns the key of a user's notification log.
func NotificationsKey(userID string) string {
	return notificationsKeyPrefix + userID
}

// GetJSON loads and decodes the value at key into dst. An absent key leaves
// dst untouched and reports found=false. An unparsable value is treated as
// absent so callers degrade to their empty defaults instead of failing.
// Decoding goes through a scratch value first: encoding/json keeps filling
// dst past a type error, and a half-decoded list must never leak out as if
// it were the stored state.
func GetJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	scratch := reflect.New(reflect.ValueOf(dst).Elem().Type())
	if err := json.Unmarshal(raw, scratch.Interface()); err != nil {
		middleware.Logger.WarnContext(ctx, "discarding malformed stored value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false, nil
	}
	reflect.ValueOf(dst).Elem().Set(scratch.Elem())
	return true, nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}
