package model

// CartItem is one billing line. Name and Price are copied from the catalog when the line is created.
type CartItem struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Name      string  `json:"name"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
}

// LineTotal is quantity × price at full precision
func (i CartItem) LineTotal() float64 {
	return float64(i.Quantity) * i.Price
}
