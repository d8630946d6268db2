// Package models contains data structures for the application's domain models.
package models

// ReactionKind is one of the six fixed emoji reaction categories.
type ReactionKind string

const (
	ReactionLike  ReactionKind = "like"
	ReactionLove  ReactionKind = "love"
	ReactionHaha  ReactionKind = "haha"
	ReactionWow   ReactionKind = "wow"
	ReactionSad   ReactionKind = "sad"
	ReactionAngry ReactionKind = "angry"
)

// ReactionKinds lists every kind in declaration order. Top-reaction ties are
// broken by this order, so it must not be reordered.
var ReactionKinds = [6]ReactionKind{
	ReactionLike,
	ReactionLove,
	ReactionHaha,
	ReactionWow,
	ReactionSad,
	ReactionAngry,
}

// Valid reports whether k is one of the six known kinds.
func (k ReactionKind) Valid() bool {
	switch k {
	case ReactionLike, ReactionLove, ReactionHaha, ReactionWow, ReactionSad, ReactionAngry:
		return true
	}
	return false
}

// ReactionSet holds per-kind reaction counters for a single target.
// The JSON keys are part of the storage contract.
type ReactionSet struct {
	Like  int `json:"like"`
	Love  int `json:"love"`
	Haha  int `json:"haha"`
	Wow   int `json:"wow"`
	Sad   int `json:"sad"`
	Angry int `json:"angry"`
}

// Count returns the counter for the given kind, 0 for unknown kinds.
func (s ReactionSet) Count(k ReactionKind) int {
	switch k {
	case ReactionLike:
		return s.Like
	case ReactionLove:
		return s.Love
	case ReactionHaha:
		return s.Haha
	case ReactionWow:
		return s.Wow
	case ReactionSad:
		return s.Sad
	case ReactionAngry:
		return s.Angry
	}
	return 0
}

// Add adjusts the counter for kind by delta, clamping at zero. Counters must
// never go negative even when stored state is out of sync with the viewer's
// recorded choice.
func (s *ReactionSet) Add(k ReactionKind, delta int) {
	n := s.Count(k) + delta
	if n < 0 {
		n = 0
	}
	switch k {
	case ReactionLike:
		s.Like = n
	case ReactionLove:
		s.Love = n
	case ReactionHaha:
		s.Haha = n
	case ReactionWow:
		s.Wow = n
	case ReactionSad:
		s.Sad = n
	case ReactionAngry:
		s.Angry = n
	}
}

// Total returns the sum of all six counters.
func (s ReactionSet) Total() int {
	return s.Like + s.Love + s.Haha + s.Wow + s.Sad + s.Angry
}

// ReactionState is embedded by every reactable entity. UserReaction holds the
// viewing user's current choice; the store keeps a single viewer's choice per
// entity rather than a per-user map, so two identities sharing one store key
// would overwrite each other. That limitation is deliberate.
type ReactionState struct {
	Reactions    ReactionSet  `json:"reactions"`
	UserReaction ReactionKind `json:"userReaction,omitempty"`
}

// Normalize repairs stored reaction state: negative counters are clamped to
// zero and an unrecognized UserReaction is cleared. Entities persisted before
// reactions existed deserialize to the zero value, which is already valid.
func (s *ReactionState) Normalize() {
	for _, k := range ReactionKinds {
		if s.Reactions.Count(k) < 0 {
			s.Reactions.Add(k, 0)
		}
	}
	if s.UserReaction != "" && !s.UserReaction.Valid() {
		s.UserReaction = ""
	}
}
