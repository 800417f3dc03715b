package middleware

import (
	"errors"
	"strings"

	"go-store-console/internal/service"
	"go-store-console/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalConsole   = "console"
	LocalSessionID = "session_id"
	LocalUsername  = "username"
)

// RequireSession validates the console token and puts the session's console in context.
// The token comes from the Authorization header, or the token query param for websocket upgrades.
func RequireSession(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}

		console, claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Session expired or logged out", "redirect": service.LoginPath})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals(LocalConsole, console)
		c.Locals(LocalSessionID, claims.SessionID)
		c.Locals(LocalUsername, claims.Username)

		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if token := c.Query("token"); token != "" {
			return token, nil
		}
		return "", errors.New("Missing authorization token")
	}

	// "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("Invalid authorization format. Use: Bearer <token>")
	}
	if parts[1] == "" {
		return "", jwt.ErrMissingToken
	}
	return parts[1], nil
}

// Console returns the console set by RequireSession
func Console(c *fiber.Ctx) (service.ConsoleService, bool) {
	console, ok := c.Locals(LocalConsole).(service.ConsoleService)
	return console, ok
}
