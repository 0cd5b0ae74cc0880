package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// TokenSource returns the stored API token, "" when logged out.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// RequireToken rejects requests with 401 while no API token is stored.
// Paths listed in public are let through.
func RequireToken(tokens TokenSource, public ...string) fiber.Handler {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(c *fiber.Ctx) error {
		if open[c.Path()] {
			return c.Next()
		}
		token, err := tokens.Token(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
		}
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "login required")
		}
		return c.Next()
	}
}
