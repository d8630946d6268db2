package server

import (
	"lovecorner/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications returns the viewer's notification log, newest first
// (protected). The log is keyed by display name falling back to username,
// the same identity comments are authored under.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := s.viewer(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewLoginRequiredError())
	}

	log, err := s.feed.Load(ctx, user.Name())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(log)
}

// GetUnreadCount returns the viewer's unread notification count (protected).
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := s.viewer(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewLoginRequiredError())
	}

	count, err := s.feed.UnreadCount(ctx, user.Name())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"count": count})
}
