package server

import (
	"lovecorner/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetComments returns all comments for a pickup line, newest first (public).
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID := c.Params("id")

	comments, err := s.thread.Load(ctx, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(comments)
}

// CreateComment adds a comment to a pickup line (protected). A
// whitespace-only body is silently dropped and answered 204, mirroring the
// disabled submit control on the page.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := s.viewer(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewLoginRequiredError())
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	created, err := s.thread.AddComment(ctx, c.Params("id"), user, req.Content)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if created == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// CreateReply adds a reply under a comment (protected). An unresolved
// comment id and a whitespace-only body are both silent no-ops answered 204.
func (s *Server) CreateReply(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := s.viewer(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewLoginRequiredError())
	}

	commentID, ok := s.parseID(c, "commentId")
	if !ok {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	created, err := s.thread.AddReply(ctx, c.Params("id"), commentID, user, req.Content)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if created == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}
