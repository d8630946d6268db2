package server

import (
	"lovecorner/internal/models"
	"lovecorner/internal/view"

	"github.com/gofiber/fiber/v2"
)

// GetPickupLine returns the full page view-model for one pickup line:
// the post header, localized category badge, reaction summaries, and the
// comment thread (public).
func (s *Server) GetPickupLine(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID := c.Params("id")

	// Anonymous visitors can read; the identity only affects picker and
	// draft ownership, which start empty for a fresh render anyway.
	user, _ := s.optionalUser(c)

	page, err := view.NewPostView(s.thread, postID, user).Render(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if page.Post == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("pickup line", postID))
	}

	return c.JSON(page)
}
