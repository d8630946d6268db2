package middleware

import (
	"strings"

	"lovecorner/internal/config"
	"lovecorner/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// UserFromBearer verifies a "Bearer <token>" Authorization header value and
// returns the identity it carries. The identity provider is external; only
// the token's HMAC signature and its "sub" claim are checked here. Display
// name and avatar are optional enrichments from the identity provider.
func UserFromBearer(authHeader string) (models.User, bool) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return models.User{}, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return models.User{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.User{}, false
	}

	// "sub" carries the username (RFC 7519 subject).
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return models.User{}, false
	}

	user := models.User{Username: username}
	if name, ok := claims["name"].(string); ok {
		user.DisplayName = name
	}
	if avatar, ok := claims["avatar"].(string); ok {
		user.Avatar = avatar
	}
	return user, true
}

// AuthRequired enforces an authenticated identity on mutating routes and
// exposes it as a models.User. A missing or invalid identity answers 401
// with a login redirect for the navigation collaborator.
func AuthRequired(c *fiber.Ctx) error {
	user, ok := UserFromBearer(c.Get("Authorization"))
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewLoginRequiredError())
	}

	c.Locals("currentUser", user)
	c.Locals("username", user.Username)

	return c.Next()
}

// CurrentUser returns the authenticated identity stored by AuthRequired.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals("currentUser").(models.User)
	return user, ok
}
