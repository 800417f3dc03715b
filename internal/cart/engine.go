// Package cart owns the billing cart: line mutation bounded by the cached stock, and totals.
package cart

import (
	"fmt"

	"go-store-console/internal/apperr"
	"go-store-console/internal/model"
)

const (
	ErrMsgSelectProduct  = "Please select a product and enter quantity"
	ErrMsgNotAvailable   = "Selected product is not available"
	ErrMsgItemNotInCart  = "Item not in cart"
	ErrMsgQuantityNeeded = "Quantity must be positive"
)

// Catalog is the product snapshot the engine checks stock against.
type Catalog interface {
	FindProduct(id int64) (model.Product, bool)
}

// Engine is not safe for concurrent use; the console serializes access to it.
type Engine struct {
	items []model.CartItem
}

func New() *Engine {
	return &Engine{}
}

// AddItem adds quantity units of productID, merging into an existing line.
// A rejected add leaves the cart unchanged.
func (e *Engine) AddItem(catalog Catalog, productID int64, quantity int) error {
	if productID <= 0 || quantity <= 0 {
		return apperr.Validation(ErrMsgSelectProduct)
	}

	product, ok := catalog.FindProduct(productID)
	if !ok || product.StockQuantity <= 0 {
		return apperr.NotFound(ErrMsgNotAvailable)
	}

	if idx := e.indexOf(productID); idx >= 0 {
		newQty := e.items[idx].Quantity + quantity
		if newQty > product.StockQuantity {
			return apperr.StockExceeded(product.StockQuantity,
				fmt.Sprintf("Cannot add more. Total would exceed available stock (%d)", product.StockQuantity))
		}
		e.items[idx].Quantity = newQty
		return nil
	}

	if quantity > product.StockQuantity {
		return apperr.StockExceeded(product.StockQuantity,
			fmt.Sprintf("Only %d items available in stock", product.StockQuantity))
	}

	e.items = append(e.items, model.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
	})
	return nil
}

// UpdateQuantity replaces the quantity of an existing line. Name and price keep their add-time values.
func (e *Engine) UpdateQuantity(catalog Catalog, productID int64, quantity int) error {
	if quantity <= 0 {
		return apperr.Validation(ErrMsgQuantityNeeded)
	}

	idx := e.indexOf(productID)
	if idx < 0 {
		return apperr.NotFound(ErrMsgItemNotInCart)
	}

	product, ok := catalog.FindProduct(productID)
	if !ok {
		return apperr.NotFound(ErrMsgNotAvailable)
	}
	if quantity > product.StockQuantity {
		return apperr.StockExceeded(product.StockQuantity,
			fmt.Sprintf("Only %d items available in stock", product.StockQuantity))
	}

	e.items[idx].Quantity = quantity
	return nil
}

// RemoveItem drops the line for productID. Removing an absent product is a no-op.
func (e *Engine) RemoveItem(productID int64) {
	idx := e.indexOf(productID)
	if idx < 0 {
		return
	}
	e.items = append(e.items[:idx], e.items[idx+1:]...)
}

func (e *Engine) Clear() {
	e.items = nil
}

// Items returns a copy of the lines in insertion order
func (e *Engine) Items() []model.CartItem {
	out := make([]model.CartItem, len(e.items))
	copy(out, e.items)
	return out
}

func (e *Engine) Len() int {
	return len(e.items)
}

func (e *Engine) IsEmpty() bool {
	return len(e.items) == 0
}

// Quantity returns the quantity currently in the cart for productID
func (e *Engine) Quantity(productID int64) int {
	if idx := e.indexOf(productID); idx >= 0 {
		return e.items[idx].Quantity
	}
	return 0
}

func (e *Engine) ComputeTotals(discountPercent float64) Totals {
	return ComputeTotals(e.items, discountPercent)
}

func (e *Engine) indexOf(productID int64) int {
	for i := range e.items {
		if e.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
