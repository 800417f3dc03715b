package cart_test

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"go-store-console/internal/apperr"
	"go-store-console/internal/cart"
	"go-store-console/internal/model"

	"github.com/cucumber/godog"
)

type catalog map[int64]model.Product

func (c catalog) FindProduct(id int64) (model.Product, bool) {
	p, ok := c[id]
	return p, ok
}

type billingTestContext struct {
	catalog  catalog
	engine   *cart.Engine
	discount float64
	err      error
}

func (c *billingTestContext) reset() {
	c.catalog = catalog{}
	c.engine = cart.New()
	c.discount = 0
	c.err = nil
}

func (c *billingTestContext) theCatalog(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // skip header
		}
		id, err := strconv.ParseInt(row.Cells[0].Value, 10, 64)
		if err != nil {
			return err
		}
		price, err := strconv.ParseFloat(row.Cells[2].Value, 64)
		if err != nil {
			return err
		}
		stock, err := strconv.Atoi(row.Cells[3].Value)
		if err != nil {
			return err
		}
		c.catalog[id] = model.Product{ID: id, Name: row.Cells[1].Value, Price: price, StockQuantity: stock}
	}
	return nil
}

func (c *billingTestContext) iAddOfProduct(quantity int, productID int64) error {
	c.err = c.engine.AddItem(c.catalog, productID, quantity)
	return nil
}

func (c *billingTestContext) iRemoveProduct(productID int64) error {
	c.engine.RemoveItem(productID)
	return nil
}

func (c *billingTestContext) theDiscountIsPercent(percent float64) error {
	c.discount = percent
	return nil
}

func (c *billingTestContext) expectMoney(name string, got float64, want string) error {
	w, err := strconv.ParseFloat(want, 64)
	if err != nil {
		return err
	}
	if math.Abs(got-w) > 1e-9 {
		return fmt.Errorf("expected %s %s, got %v", name, want, got)
	}
	return nil
}

func (c *billingTestContext) theSubtotalIs(want string) error {
	return c.expectMoney("subtotal", c.engine.ComputeTotals(c.discount).Subtotal, want)
}

func (c *billingTestContext) theDiscountAmountIs(want string) error {
	return c.expectMoney("discount", c.engine.ComputeTotals(c.discount).DiscountAmount, want)
}

func (c *billingTestContext) theTaxAmountIs(want string) error {
	return c.expectMoney("tax", c.engine.ComputeTotals(c.discount).TaxAmount, want)
}

func (c *billingTestContext) theTotalIs(want string) error {
	return c.expectMoney("total", c.engine.ComputeTotals(c.discount).Total, want)
}

func (c *billingTestContext) theCartHasLines(n int) error {
	if c.engine.Len() != n {
		return fmt.Errorf("expected %d lines, got %d", n, c.engine.Len())
	}
	return nil
}

func (c *billingTestContext) productHasQuantity(productID int64, want int) error {
	if got := c.engine.Quantity(productID); got != want {
		return fmt.Errorf("expected quantity %d for product %d, got %d", want, productID, got)
	}
	return nil
}

func (c *billingTestContext) theAddFailsWith(kind string) error {
	if c.err == nil {
		return fmt.Errorf("expected %s error, add succeeded", kind)
	}
	if got := apperr.KindOf(c.err).String(); got != kind {
		return fmt.Errorf("expected %s error, got %s (%v)", kind, got, c.err)
	}
	return nil
}

func (c *billingTestContext) theErrorMessageContains(fragment string) error {
	if c.err == nil || !strings.Contains(c.err.Error(), fragment) {
		return fmt.Errorf("expected error containing %q, got %v", fragment, c.err)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &billingTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the catalog:$`, tc.theCatalog)

	ctx.Step(`^I add (\d+) of product (\d+)$`, tc.iAddOfProduct)
	ctx.Step(`^I remove product (\d+)$`, tc.iRemoveProduct)
	ctx.Step(`^the discount is (\d+(?:\.\d+)?) percent$`, tc.theDiscountIsPercent)

	ctx.Step(`^the subtotal is (\d+\.\d+)$`, tc.theSubtotalIs)
	ctx.Step(`^the discount amount is (\d+\.\d+)$`, tc.theDiscountAmountIs)
	ctx.Step(`^the tax amount is (\d+\.\d+)$`, tc.theTaxAmountIs)
	ctx.Step(`^the total is (\d+\.\d+)$`, tc.theTotalIs)
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^product (\d+) has quantity (\d+)$`, tc.productHasQuantity)
	ctx.Step(`^the add fails with "([^"]*)"$`, tc.theAddFailsWith)
	ctx.Step(`^the error message contains "([^"]*)"$`, tc.theErrorMessageContains)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/billing.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
