package handler

import (
	"go-store-console/internal/middleware"
	"go-store-console/internal/service"
	"go-store-console/internal/ws"

	"github.com/gofiber/fiber/v2"
)

// Register mounts the console API under /console. hub may be nil, then no view stream is served.
func Register(app *fiber.App, authService service.AuthService, activityService service.ActivityService, hub *ws.Hub) {
	authHandler := NewAuthHandler(authService)
	consoleHandler := NewConsoleHandler()
	activityHandler := NewActivityHandler(activityService)

	api := app.Group("/console")

	// ============ PUBLIC ROUTES ============
	api.Post("/login", authHandler.Login)

	// ============ SESSION ROUTES ============
	protected := api.Group("", middleware.RequireSession(authService))
	protected.Post("/logout", authHandler.Logout)

	protected.Post("/sections/:section", consoleHandler.SwitchSection)
	protected.Get("/state/billing", consoleHandler.GetBilling)

	// Product editor
	protected.Get("/products/:id/edit", consoleHandler.EditProduct)
	protected.Post("/products/new", consoleHandler.NewProduct)
	protected.Post("/products/cancel", consoleHandler.CancelProductForm)
	protected.Post("/products", consoleHandler.SaveProduct)
	protected.Delete("/products/:id", consoleHandler.DeleteProduct)

	protected.Post("/customers", consoleHandler.SaveCustomer)

	// Billing
	protected.Post("/cart/items", consoleHandler.AddCartItem)
	protected.Put("/cart/items/:id", consoleHandler.UpdateCartItem)
	protected.Delete("/cart/items/:id", consoleHandler.RemoveCartItem)
	protected.Put("/billing/form", consoleHandler.SetBillingForm)
	protected.Post("/billing/reset", consoleHandler.ResetBilling)
	protected.Post("/sales/process", consoleHandler.ProcessSale)

	protected.Get("/activity", activityHandler.GetActivity)

	if hub != nil {
		protected.Get("/ws", RequireUpgrade, ViewStream(hub))
	}
}
