package server

import (
	"strconv"

	"lovecorner/internal/middleware"
	"lovecorner/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID parses a numeric route parameter. On failure it answers 400 and
// returns ok=false; the caller just returns nil.
func (s *Server) parseID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+name+" parameter"))
		return 0, false
	}
	return id, true
}

// viewer returns the authenticated identity stored by the auth middleware.
func (s *Server) viewer(c *fiber.Ctx) (models.User, bool) {
	return middleware.CurrentUser(c)
}
