package model

// DefaultImageURL is sent for products saved without an image.
const DefaultImageURL = "/static/images/default-product.jpg"

// LowStockThreshold marks products the dashboard and product table flag as low.
const LowStockThreshold = 10

// Product is the store API's catalog entry. StockQuantity is a snapshot and may be stale.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	CostPrice     float64 `json:"cost_price"`
	StockQuantity int     `json:"stock_quantity"`
	Supplier      string  `json:"supplier"`
	Barcode       string  `json:"barcode"`
	ImageURL      string  `json:"image_url"`
}

// ProductInput is the body of POST /api/products and PUT /api/products/{id}
type ProductInput struct {
	Name          string  `json:"name" validate:"required,notblank,max=255"`
	Category      string  `json:"category" validate:"required,notblank,max=255"`
	Price         float64 `json:"price" validate:"gte=0"`
	CostPrice     float64 `json:"cost_price" validate:"gte=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	Supplier      string  `json:"supplier" validate:"max=255"`
	Barcode       string  `json:"barcode" validate:"max=100"`
	ImageURL      string  `json:"image_url" validate:"max=255"`
}

// ToInput returns the editor form pre-filled with p
func (p Product) ToInput() ProductInput {
	return ProductInput{
		Name:          p.Name,
		Category:      p.Category,
		Price:         p.Price,
		CostPrice:     p.CostPrice,
		StockQuantity: p.StockQuantity,
		Supplier:      p.Supplier,
		Barcode:       p.Barcode,
		ImageURL:      p.ImageURL,
	}
}
