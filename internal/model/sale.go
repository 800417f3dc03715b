package model

// Payment method sent when the operator leaves the default
const DefaultPaymentMethod = "Cash"

// WalkInCustomer is what the store API reports for sales without a customer
const WalkInCustomer = "Walk-in Customer"

// Sale is a read-only row of GET /api/sales
type Sale struct {
	ID             int64   `json:"id"`
	CustomerName   string  `json:"customer_name"`
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	TotalAmount    float64 `json:"total_amount"`
	PaymentMethod  string  `json:"payment_method"`
	SaleDate       string  `json:"sale_date"`
}

// SaleRequest is the body of POST /api/sales/process.
// A nil CustomerID is a walk-in sale.
type SaleRequest struct {
	Items           []CartItem `json:"items" validate:"required,min=1,dive"`
	CustomerID      *int64     `json:"customer_id"`
	PaymentMethod   string     `json:"payment_method" validate:"required,notblank,max=50"`
	DiscountPercent float64    `json:"discount_percent" validate:"gte=0"`
}

type SaleResult struct {
	Success        bool    `json:"success"`
	Message        string  `json:"message"`
	SaleID         int64   `json:"sale_id"`
	TotalAmount    float64 `json:"total_amount"`
	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
}
