package handler

import (
	"errors"

	"go-store-console/internal/apperr"
	"go-store-console/internal/middleware"
	"go-store-console/internal/model"
	"go-store-console/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login opens a console session
// POST /console/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req model.Credentials
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	response, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		switch {
		case apperr.Is(err, apperr.KindServer):
			// the store API turned the credentials down
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrTokenFailed):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return respondError(c, err)
	}

	return c.JSON(response)
}

// Logout closes the console session. The answer always points at the login page.
// POST /console/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sessionID, _ := c.Locals(middleware.LocalSessionID).(uuid.UUID)
	if err := h.authService.Logout(c.UserContext(), sessionID); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error(), "redirect": service.LoginPath})
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully", "redirect": service.LoginPath})
}
