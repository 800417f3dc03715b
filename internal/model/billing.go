package model

// BillingForm is the operator's billing input next to the cart.
// A nil CustomerID is a walk-in sale.
type BillingForm struct {
	CustomerID      *int64  `json:"customer_id"`
	PaymentMethod   string  `json:"payment_method" validate:"required,notblank,max=50"`
	DiscountPercent float64 `json:"discount_percent"`
}

// DefaultBillingForm is the state after startup and after every successful sale
func DefaultBillingForm() BillingForm {
	return BillingForm{PaymentMethod: DefaultPaymentMethod}
}
