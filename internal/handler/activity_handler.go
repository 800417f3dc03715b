package handler

import (
	"strconv"

	"go-store-console/internal/middleware"
	"go-store-console/internal/model"
	"go-store-console/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ActivityHandler struct {
	service service.ActivityService
}

func NewActivityHandler(s service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: s}
}

// GetActivity returns the console journal with a per-action summary
// Query params: limit (default 50), days (default 7), scope=session|all (default session)
func (h *ActivityHandler) GetActivity(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	var entries []model.ActivityEntry
	if c.Query("scope", "session") == "all" {
		entries, err = h.service.Recent(limit)
	} else {
		sessionID, _ := c.Locals(middleware.LocalSessionID).(uuid.UUID)
		entries, err = h.service.ForSession(sessionID, limit)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch activity"})
	}

	summary, err := h.service.Summary(days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch activity summary"})
	}

	if entries == nil {
		entries = []model.ActivityEntry{}
	}
	return c.JSON(fiber.Map{
		"period":  days,
		"entries": entries,
		"summary": summary,
	})
}
