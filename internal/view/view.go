// Package view assembles the page view-model for a single post: the post
// itself, its comment thread, reaction summaries, and the transient UI state
// (drafts, open reply boxes, the reaction picker) that never persists.
package view

import (
	"context"

	"lovecorner/internal/models"
	"lovecorner/internal/reactions"
	"lovecorner/internal/thread"
)

// postedAtLayout matches the vi-VN short date rendering.
const postedAtLayout = "02/01/2006"

// PickerRef identifies which entity's reaction picker is open. At most one
// picker is open across the whole page.
type PickerRef struct {
	Kind thread.TargetKind `json:"kind"`
	ID   int64             `json:"id,omitempty"`
}

// PostView tracks one viewer's session on one post page. It owns the
// transient interaction state and delegates every mutation to the thread
// service; nothing here is written to the store.
type PostView struct {
	svc    *thread.Service
	postID string
	viewer models.User

	picker       *PickerRef
	commentDraft string
	replyDrafts  map[int64]string
	replyOpen    map[int64]bool
}

// NewPostView creates a session for viewer on the given post.
func NewPostView(svc *thread.Service, postID string, viewer models.User) *PostView {
	return &PostView{
		svc:         svc,
		postID:      postID,
		viewer:      viewer,
		replyDrafts: map[int64]string{},
		replyOpen:   map[int64]bool{},
	}
}

// TogglePicker opens the picker for ref, closing any other open picker first.
// Toggling the already-open ref closes it.
func (v *PostView) TogglePicker(ref PickerRef) {
	if v.picker != nil && *v.picker == ref {
		v.picker = nil
		return
	}
	v.picker = &ref
}

// PickerOpen reports whether ref's picker is currently open.
func (v *PostView) PickerOpen(ref PickerRef) bool {
	return v.picker != nil && *v.picker == ref
}

// SetCommentDraft replaces the comment composer text.
func (v *PostView) SetCommentDraft(text string) {
	v.commentDraft = text
}

// ToggleReplyBox shows or hides the reply composer under a comment. Opening
// one does not close others; each comment keeps its own draft.
func (v *PostView) ToggleReplyBox(commentID int64) {
	v.replyOpen[commentID] = !v.replyOpen[commentID]
}

// SetReplyDraft replaces the reply composer text under a comment.
func (v *PostView) SetReplyDraft(commentID int64, text string) {
	v.replyDrafts[commentID] = text
}

// SubmitComment submits the comment draft. The draft is cleared only when a
// comment was actually created; a whitespace-only draft stays in the box.
func (v *PostView) SubmitComment(ctx context.Context) error {
	created, err := v.svc.AddComment(ctx, v.postID, v.viewer, v.commentDraft)
	if err != nil {
		return err
	}
	if created != nil {
		v.commentDraft = ""
	}
	return nil
}

// SubmitReply submits the reply draft under a comment, clearing the draft and
// closing the composer when a reply was created.
func (v *PostView) SubmitReply(ctx context.Context, commentID int64) error {
	created, err := v.svc.AddReply(ctx, v.postID, commentID, v.viewer, v.replyDrafts[commentID])
	if err != nil {
		return err
	}
	if created != nil {
		delete(v.replyDrafts, commentID)
		v.replyOpen[commentID] = false
	}
	return nil
}

// React toggles the viewer's reaction on target and closes the picker.
func (v *PostView) React(ctx context.Context, target thread.Target, kind models.ReactionKind) error {
	v.picker = nil
	return v.svc.React(ctx, v.postID, target, kind)
}

// ReactionBadge is one entry in an entity's top-reactions strip.
type ReactionBadge struct {
	Kind  models.ReactionKind `json:"type"`
	Emoji string              `json:"emoji"`
	Count int                 `json:"count"`
}

// ReactionSummary is the rendered reaction state of one entity. Visible is
// false when no reactions exist, hiding the strip entirely.
type ReactionSummary struct {
	Total   int                 `json:"total"`
	Top     []ReactionBadge     `json:"top"`
	Viewer  models.ReactionKind `json:"viewer,omitempty"`
	Visible bool                `json:"visible"`
}

// ReplyVM is one rendered reply.
type ReplyVM struct {
	ID        int64           `json:"id"`
	Author    string          `json:"author"`
	Avatar    string          `json:"avatar,omitempty"`
	Content   string          `json:"content"`
	PostedAt  string          `json:"postedAt"`
	Reactions ReactionSummary `json:"reactions"`
}

// CommentVM is one rendered comment with its replies and composer state.
type CommentVM struct {
	ID         int64           `json:"id"`
	Author     string          `json:"author"`
	Avatar     string          `json:"avatar,omitempty"`
	Content    string          `json:"content"`
	PostedAt   string          `json:"postedAt"`
	Reactions  ReactionSummary `json:"reactions"`
	Replies    []ReplyVM       `json:"replies"`
	ReplyOpen  bool            `json:"replyOpen"`
	ReplyDraft string          `json:"replyDraft"`
	PickerOpen bool            `json:"pickerOpen"`
}

// PostVM is the rendered post header.
type PostVM struct {
	ID         int64           `json:"id"`
	Content    string          `json:"content"`
	Image      string          `json:"image,omitempty"`
	Category   CategoryInfo    `json:"category"`
	Author     string          `json:"author"`
	PostedAt   string          `json:"postedAt"`
	Reactions  ReactionSummary `json:"reactions"`
	PickerOpen bool            `json:"pickerOpen"`
}

// PageViewModel is the full render of one post page for one viewer.
type PageViewModel struct {
	Post         *PostVM     `json:"post"`
	Comments     []CommentVM `json:"comments"`
	CommentCount int         `json:"commentCount"`
	CommentDraft string      `json:"commentDraft"`
}

// Render loads the current persisted state and folds in the session's
// transient state. A missing post renders as a nil Post with an empty thread.
func (v *PostView) Render(ctx context.Context) (*PageViewModel, error) {
	post, err := v.svc.LoadPost(ctx, v.postID)
	if err != nil {
		return nil, err
	}
	comments, err := v.svc.Load(ctx, v.postID)
	if err != nil {
		return nil, err
	}

	page := &PageViewModel{
		Comments:     make([]CommentVM, 0, len(comments)),
		CommentCount: len(comments),
		CommentDraft: v.commentDraft,
	}

	if post != nil {
		page.Post = &PostVM{
			ID:         post.ID,
			Content:    post.Content,
			Image:      post.Image,
			Category:   Category(post.Category),
			Author:     post.Author,
			PostedAt:   post.CreatedAt.Format(postedAtLayout),
			Reactions:  summarize(post.ReactionState),
			PickerOpen: v.PickerOpen(PickerRef{Kind: thread.TargetPost}),
		}
	}

	for _, c := range comments {
		vm := CommentVM{
			ID:         c.ID,
			Author:     c.Author,
			Avatar:     c.Avatar,
			Content:    c.Content,
			PostedAt:   c.CreatedAt.Format(postedAtLayout),
			Reactions:  summarize(c.ReactionState),
			Replies:    make([]ReplyVM, 0, len(c.Replies)),
			ReplyOpen:  v.replyOpen[c.ID],
			ReplyDraft: v.replyDrafts[c.ID],
			PickerOpen: v.PickerOpen(PickerRef{Kind: thread.TargetComment, ID: c.ID}),
		}
		for _, r := range c.Replies {
			vm.Replies = append(vm.Replies, ReplyVM{
				ID:        r.ID,
				Author:    r.Author,
				Avatar:    r.Avatar,
				Content:   r.Content,
				PostedAt:  r.CreatedAt.Format(postedAtLayout),
				Reactions: summarize(r.ReactionState),
			})
		}
		page.Comments = append(page.Comments, vm)
	}

	return page, nil
}

func summarize(state models.ReactionState) ReactionSummary {
	total := state.Reactions.Total()
	summary := ReactionSummary{
		Total:   total,
		Top:     []ReactionBadge{},
		Viewer:  state.UserReaction,
		Visible: total > 0,
	}
	for _, kc := range reactions.Top(state.Reactions, reactions.TopLimit) {
		summary.Top = append(summary.Top, ReactionBadge{
			Kind:  kc.Kind,
			Emoji: Emoji(kc.Kind),
			Count: kc.Count,
		})
	}
	return summary
}
