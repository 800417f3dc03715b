package handler

import (
	"strconv"

	"go-store-console/internal/apperr"
	"go-store-console/internal/middleware"
	"go-store-console/internal/model"
	"go-store-console/internal/router"
	"go-store-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ConsoleHandler drives the console of the calling session. Every route runs behind RequireSession.
type ConsoleHandler struct{}

func NewConsoleHandler() *ConsoleHandler {
	return &ConsoleHandler{}
}

type CartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  apperr.KindOf(err).String(),
	})
}

func console(c *fiber.Ctx) (service.ConsoleService, error) {
	s, ok := middleware.Console(c)
	if !ok {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return s, nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Invalid ID format")
	}
	return id, nil
}

// SwitchSection POST /console/sections/:section
func (h *ConsoleHandler) SwitchSection(c *fiber.Ctx) error {
	s, err := console(c)
	if s == nil {
		return err
	}
	section, err := router.ParseSection(c.Params("section"))
	if err != nil {
		return respondError(c, err)
	}
	if err := s.SwitchSection(c.UserContext(), section); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"section": section})
}

// GetBilling GET /console/state/billing
func (h *ConsoleHandler) GetBilling(c *fiber.Ctx) error {
	s, err := console(c)
	if s == nil {
		return err
	}
	return c.JSON(s.BillingState())
}

// EditProduct GET /console/products/:id/edit
func (h *ConsoleHandler) EditProduct(c *fiber.Ctx) error {
	s, err := console(c)
	if s == nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	form, err := s.EditProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(form)
}

// NewProduct POST /console/products/new
func (h *ConsoleHandler) NewProduct(c *fiber.Ctx) error {
	s, err := console(c)
	if s == nil {
		return err
	}
	return c.JSON(s.NewProduct())
}

// CancelProductForm POST /console/products/cancel
func (h *ConsoleHandler) CancelProductForm(c *fiber.Ctx) error {
	s, err := console(c)
	if s == nil {
		return err
	}
	s.CancelProductForm()
	return c.SendStatus(fiber.StatusNoContent)
}

// SaveProduct POST /console/products
func (h *ConsoleHandler) SaveProduct(c *fiber.Ctx) error {
	s, err := console(c)
	if s == nil {
		return err
	}
	var input model.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := s.SaveProduct(c.UserContext(), input); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeleteProduct DELETE /console/products/:id
func (h *ConsoleHandler) DeleteProduct(c *fiber.Ctx) error {
	s, err := console(c)
	if s == nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := s.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// SaveCustomer POST /console/customers
func (h *ConsoleHandler) SaveCustomer(c *fiber.Ctx) error {
	s, err := console(c)
	if s == nil {
		return err
	}
	var input model.CustomerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := s.SaveCustomer(c.UserContext(), input); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// AddCartItem POST /console/cart/items
func (h *ConsoleHandler) AddCartItem(c *fiber.Ctx) error {
	s, err := console(c)
	if s == nil {
		return err
	}
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := s.AddToCart(req.ProductID, req.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s.BillingState())
}

// UpdateCartItem PUT /console/cart/items/:id
func (h *ConsoleHandler) UpdateCartItem(c *fiber.Ctx) error {
	s, err := console(c)
	if s == nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req CartQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := s.UpdateCartQuantity(id, req.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(s.BillingState())
}

// RemoveCartItem DELETE /console/cart/items/:id
func (h *ConsoleHandler) RemoveCartItem(c *fiber.Ctx) error {
	s, err := console(c)
	if s == nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	s.RemoveFromCart(id)
	return c.JSON(s.BillingState())
}

// SetBillingForm PUT /console/billing/form
func (h *ConsoleHandler) SetBillingForm(c *fiber.Ctx) error {
	s, err := console(c)
	if s == nil {
		return err
	}
	var form model.BillingForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := s.SetBillingForm(form); err != nil {
		return respondError(c, err)
	}
	return c.JSON(s.BillingState())
}

// ResetBilling POST /console/billing/reset
func (h *ConsoleHandler) ResetBilling(c *fiber.Ctx) error {
	s, err := console(c)
	if s == nil {
		return err
	}
	s.ResetBilling()
	return c.JSON(s.BillingState())
}

// ProcessSale POST /console/sales/process
func (h *ConsoleHandler) ProcessSale(c *fiber.Ctx) error {
	s, err := console(c)
	if s == nil {
		return err
	}
	result, err := s.ProcessSale(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
