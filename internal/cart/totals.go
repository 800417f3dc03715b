package cart

import (
	"math"

	"go-store-console/internal/model"
)

// TaxRate is applied to the amount left after the discount.
const TaxRate = 0.08

// Totals are unrounded; rounding to cents happens only when a view formats them.
type Totals struct {
	Subtotal        float64 `json:"subtotal"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountAmount  float64 `json:"discount_amount"`
	TaxableAmount   float64 `json:"taxable_amount"`
	TaxAmount       float64 `json:"tax_amount"`
	Total           float64 `json:"total"`
}

// SanitizeDiscount treats negative and non-finite percentages as no discount.
func SanitizeDiscount(percent float64) float64 {
	if math.IsNaN(percent) || math.IsInf(percent, 0) || percent < 0 {
		return 0
	}
	return percent
}

func ComputeTotals(items []model.CartItem, discountPercent float64) Totals {
	discountPercent = SanitizeDiscount(discountPercent)

	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}

	discountAmount := subtotal * (discountPercent / 100)
	taxable := subtotal - discountAmount
	tax := taxable * TaxRate

	return Totals{
		Subtotal:        subtotal,
		DiscountPercent: discountPercent,
		DiscountAmount:  discountAmount,
		TaxableAmount:   taxable,
		TaxAmount:       tax,
		Total:           taxable + tax,
	}
}
