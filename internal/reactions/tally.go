// Package reactions implements the single-choice reaction tally shared by
// posts, comments and replies: each viewer holds at most one reaction per
// target, and choosing again either switches or withdraws it.
package reactions

import (
	"sort"

	"lovecorner/internal/models"
)

// TopLimit is how many reaction kinds the summary row displays.
const TopLimit = 3

// Toggle applies the viewer's reaction choice to state. A previous choice is
// withdrawn first (counters clamp at zero); picking the same kind again leaves
// the viewer with no reaction, otherwise the new kind is counted and recorded.
// Applying the same kind twice in a row is therefore a round trip back to the
// starting state. Unknown kinds are ignored.
func Toggle(state *models.ReactionState, kind models.ReactionKind) {
	if !kind.Valid() {
		return
	}

	prev := state.UserReaction
	if prev != "" {
		state.Reactions.Add(prev, -1)
	}

	if prev == kind {
		state.UserReaction = ""
		return
	}

	state.Reactions.Add(kind, 1)
	state.UserReaction = kind
}

// Total returns the sum of all six counters. The summary row is hidden when
// this is zero.
func Total(set models.ReactionSet) int {
	return set.Total()
}

// KindCount pairs a reaction kind with its counter for display.
type KindCount struct {
	Kind  models.ReactionKind `json:"type"`
	Count int                 `json:"count"`
}

// Top returns up to limit kinds with non-zero counts, ordered by count
// descending. Ties keep the fixed declaration order of the kinds.
func Top(set models.ReactionSet, limit int) []KindCount {
	var out []KindCount
	for _, k := range models.ReactionKinds {
		if c := set.Count(k); c > 0 {
			out = append(out, KindCount{Kind: k, Count: c})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
