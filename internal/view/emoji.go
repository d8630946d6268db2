package view

import "lovecorner/internal/models"

type reactionMeta struct {
	Emoji string
	Label string
}

var reactionMetas = map[models.ReactionKind]reactionMeta{
	models.ReactionLike:  {Emoji: "👍", Label: "Thích"},
	models.ReactionLove:  {Emoji: "❤️", Label: "Yêu thích"},
	models.ReactionHaha:  {Emoji: "😂", Label: "Haha"},
	models.ReactionWow:   {Emoji: "😮", Label: "Wow"},
	models.ReactionSad:   {Emoji: "😢", Label: "Buồn"},
	models.ReactionAngry: {Emoji: "😡", Label: "Giận dữ"},
}

// Emoji returns the glyph rendered for a reaction kind. Unknown kinds fall
// back to the like glyph.
func Emoji(kind models.ReactionKind) string {
	if m, ok := reactionMetas[kind]; ok {
		return m.Emoji
	}
	return reactionMetas[models.ReactionLike].Emoji
}

// Label returns the localized name shown in the reaction picker.
func Label(kind models.ReactionKind) string {
	if m, ok := reactionMetas[kind]; ok {
		return m.Label
	}
	return reactionMetas[models.ReactionLike].Label
}
