package gateway

import (
	"context"
	"fmt"

	"go-store-console/internal/apperr"
	"go-store-console/internal/model"

	"github.com/gofiber/fiber/v2"
)

func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.APIResult, error) {
	return c.write(ctx, fiber.MethodPost, "/api/login", creds)
}

// Logout ends the upstream session. The local cookies are dropped whatever the outcome.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, fiber.MethodPost, "/api/logout", nil, nil)

	c.mu.Lock()
	c.cookies = make(map[string]string)
	c.mu.Unlock()

	return err
}

func (c *Client) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	var d model.Dashboard
	if err := c.do(ctx, fiber.MethodGet, "/api/dashboard", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, fiber.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, input model.ProductInput) (*model.APIResult, error) {
	return c.write(ctx, fiber.MethodPost, "/api/products", input)
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, input model.ProductInput) (*model.APIResult, error) {
	return c.write(ctx, fiber.MethodPut, fmt.Sprintf("/api/products/%d", id), input)
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) (*model.APIResult, error) {
	return c.write(ctx, fiber.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil)
}

func (c *Client) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := c.do(ctx, fiber.MethodGet, "/api/customers", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) CreateCustomer(ctx context.Context, input model.CustomerInput) (*model.APIResult, error) {
	return c.write(ctx, fiber.MethodPost, "/api/customers", input)
}

func (c *Client) ListSales(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	if err := c.do(ctx, fiber.MethodGet, "/api/sales", nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// ProcessSale submits the cart. A success:false answer becomes a Server error carrying the API's message.
func (c *Client) ProcessSale(ctx context.Context, req model.SaleRequest) (*model.SaleResult, error) {
	var result model.SaleResult
	if err := c.do(ctx, fiber.MethodPost, "/api/sales/process", req, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, apperr.Server(orDefault(result.Message, "Sale was not processed"))
	}
	return &result, nil
}
