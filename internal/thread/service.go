// Package thread manages one post's comment thread: the ordered comment
// list, nested replies, reaction state for every entity on the page, and the
// reply-notification fan-out to comment authors.
package thread

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"lovecorner/internal/kvstore"
	"lovecorner/internal/middleware"
	"lovecorner/internal/models"
	"lovecorner/internal/notifications"
	"lovecorner/internal/observability"
	"lovecorner/internal/reactions"
)

// ReplyNotificationContent is the fixed localized message carried by reply
// notifications.
const ReplyNotificationContent = "đã trả lời bình luận của bạn"

// Service mutates one post's engagement state through the persistence port.
// All operations are synchronous read-modify-write cycles; the caller handles
// one user action to completion at a time.
type Service struct {
	store kvstore.Store
	feed  *notifications.Feed
	now   func() time.Time
}

// NewService creates a Service over the given store and notification feed.
func NewService(store kvstore.Store, feed *notifications.Feed) *Service {
	return &Service{store: store, feed: feed, now: time.Now}
}

// LoadPost returns the post with the given id from the persisted post list,
// normalized, or nil when no such post exists.
func (s *Service) LoadPost(ctx context.Context, postID string) (*models.Post, error) {
	var posts []models.Post
	if _, err := kvstore.GetJSON(ctx, s.store, kvstore.PostsKey, &posts); err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Key() == postID {
			posts[i].Normalize()
			post := posts[i]
			return &post, nil
		}
	}
	return nil, nil
}

// Load returns the post's comments, newest first, normalized per the storage
// invariants: replies never nil, reaction state repaired.
func (s *Service) Load(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if _, err := kvstore.GetJSON(ctx, s.store, kvstore.CommentsKey(postID), &comments); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	for i := range comments {
		comments[i].Normalize()
	}
	return comments, nil
}

// AddComment prepends a new comment by author and persists the whole list.
// Whitespace-only content is a validation no-op and returns (nil, nil); the
// submit control is expected to be disabled for empty drafts.
func (s *Service) AddComment(ctx context.Context, postID string, author models.User, content string) (*models.Comment, error) {
	ctx, span := observability.TraceServiceCall(ctx, "thread", "AddComment")
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	comments, err := s.Load(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        models.NewID(),
		Author:    author.Name(),
		Content:   content,
		CreatedAt: s.now(),
		Avatar:    author.Avatar,
		Replies:   []models.Reply{},
	}

	updated := append([]models.Comment{comment}, comments...)
	if err := kvstore.SetJSON(ctx, s.store, kvstore.CommentsKey(postID), updated); err != nil {
		return nil, err
	}
	return &comment, nil
}

// AddReply appends a reply to the target comment's reply sequence and
// persists the whole comment list. Whitespace-only content and an unresolved
// comment id are both silent no-ops returning (nil, nil).
//
// When the comment's author differs from the replier, a reply notification is
// fanned out to the author's log after the reply is persisted. The two writes
// are sequential, not transactional: the reply survives even if the
// notification write fails.
func (s *Service) AddReply(ctx context.Context, postID string, commentID int64, author models.User, content string) (*models.Reply, error) {
	ctx, span := observability.TraceServiceCall(ctx, "thread", "AddReply")
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	comments, err := s.Load(ctx, postID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range comments {
		if comments[i].ID == commentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	reply := models.Reply{
		ID:        models.NewID(),
		Author:    author.Name(),
		Content:   content,
		CreatedAt: s.now(),
		Avatar:    author.Avatar,
	}
	comments[idx].Replies = append(comments[idx].Replies, reply)

	if err := kvstore.SetJSON(ctx, s.store, kvstore.CommentsKey(postID), comments); err != nil {
		return nil, err
	}

	if target := comments[idx].Author; !author.Is(target) {
		_, err := s.feed.Append(ctx, target, notifications.Incoming{
			Type:      models.NotificationReply,
			From:      author.Name(),
			Content:   ReplyNotificationContent,
			PostID:    postID,
			CommentID: commentID,
		})
		if err != nil {
			observability.RecordErrorInContext(ctx, err)
			middleware.Logger.WarnContext(ctx, "reply notification not delivered",
				slog.String("post_id", postID),
				slog.String("to", target),
				slog.String("error", err.Error()),
			)
		}
	}

	return &reply, nil
}

// React locates the target entity and toggles the viewer's reaction on it,
// persisting the owning list. An unresolved target leaves stored state
// untouched.
func (s *Service) React(ctx context.Context, postID string, target Target, kind models.ReactionKind) error {
	ctx, span := observability.TraceServiceCall(ctx, "thread", "React")
	defer span.End()

	if !kind.Valid() {
		return nil
	}

	if target.kind == TargetPost {
		return s.reactToPost(ctx, postID, kind)
	}

	comments, err := s.Load(ctx, postID)
	if err != nil {
		return err
	}

	var state *models.ReactionState
	switch target.kind {
	case TargetComment:
		for i := range comments {
			if comments[i].ID == target.commentID {
				state = &comments[i].ReactionState
				break
			}
		}
	case TargetReply:
	scan:
		for i := range comments {
			for j := range comments[i].Replies {
				if comments[i].Replies[j].ID == target.replyID {
					state = &comments[i].Replies[j].ReactionState
					break scan
				}
			}
		}
	}
	if state == nil {
		return nil
	}

	reactions.Toggle(state, kind)
	if err := kvstore.SetJSON(ctx, s.store, kvstore.CommentsKey(postID), comments); err != nil {
		return err
	}
	middleware.ReactionToggles.WithLabelValues(string(target.kind), string(kind)).Inc()
	return nil
}

func (s *Service) reactToPost(ctx context.Context, postID string, kind models.ReactionKind) error {
	var posts []models.Post
	if _, err := kvstore.GetJSON(ctx, s.store, kvstore.PostsKey, &posts); err != nil {
		return err
	}

	idx := -1
	for i := range posts {
		if posts[i].Key() == postID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	posts[idx].Normalize()
	reactions.Toggle(&posts[idx].ReactionState, kind)

	if err := kvstore.SetJSON(ctx, s.store, kvstore.PostsKey, posts); err != nil {
		return err
	}
	middleware.ReactionToggles.WithLabelValues(string(TargetPost), string(kind)).Inc()
	return nil
}
