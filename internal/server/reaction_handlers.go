package server

import (
	"lovecorner/internal/models"
	"lovecorner/internal/thread"

	"github.com/gofiber/fiber/v2"
)

// React toggles the viewer's reaction on the post, a comment, or a reply
// (protected). A target id that resolves to nothing is a silent no-op; the
// response is 204 either way so the page re-renders from a fresh read.
func (s *Server) React(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if _, ok := s.viewer(c); !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewLoginRequiredError())
	}

	var req struct {
		Target    string `json:"target"`
		CommentID int64  `json:"commentId"`
		ReplyID   int64  `json:"replyId"`
		Kind      string `json:"kind"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	kind := models.ReactionKind(req.Kind)
	if !kind.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown reaction kind "+req.Kind))
	}

	var target thread.Target
	switch thread.TargetKind(req.Target) {
	case thread.TargetPost:
		target = thread.PostTarget()
	case thread.TargetComment:
		if req.CommentID <= 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("commentId is required for comment targets"))
		}
		target = thread.CommentTarget(req.CommentID)
	case thread.TargetReply:
		if req.ReplyID <= 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("replyId is required for reply targets"))
		}
		target = thread.ReplyTarget(req.ReplyID)
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown reaction target "+req.Target))
	}

	if err := s.thread.React(ctx, c.Params("id"), target, kind); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.SendStatus(fiber.StatusNoContent)
}
