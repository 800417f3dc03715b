package handler

import (
	"go-store-console/internal/middleware"
	"go-store-console/internal/service"
	"go-store-console/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// RequireUpgrade rejects plain HTTP requests on the websocket route
func RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.SendStatus(fiber.StatusUpgradeRequired)
}

// ViewStream attaches a screen to the caller's console and replays the current views into it
// GET /console/ws?token=
func ViewStream(hub *ws.Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		console, ok := c.Locals(middleware.LocalConsole).(service.ConsoleService)
		if !ok {
			c.Close()
			return
		}

		sessionID := console.SessionID()
		hub.Attach(sessionID, c)
		defer hub.Detach(sessionID, c)

		console.Refresh()

		for {
			// the browser only sends keep-alives
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
