package thread

// TargetKind enumerates the reactable entity kinds on a post page.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
	TargetReply   TargetKind = "reply"
)

// Target identifies one reactable entity within a post page as a tagged
// variant: the post itself, a comment by id, or a reply by id. Reply lookup
// scans comments and their reply sequences, so the reply id alone suffices.
type Target struct {
	kind      TargetKind
	commentID int64
	replyID   int64
}

// PostTarget addresses the post itself.
func PostTarget() Target {
	return Target{kind: TargetPost}
}

// CommentTarget addresses a top-level comment.
func CommentTarget(commentID int64) Target {
	return Target{kind: TargetComment, commentID: commentID}
}

// ReplyTarget addresses a reply nested under any comment.
func ReplyTarget(replyID int64) Target {
	return Target{kind: TargetReply, replyID: replyID}
}

// Kind returns the variant tag.
func (t Target) Kind() TargetKind {
	return t.kind
}
