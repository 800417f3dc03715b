package view

import (
	"fmt"
	"strings"
	"time"

	"go-store-console/internal/cart"
	"go-store-console/internal/model"
)

// ProductOption carries what the cart needs to know about a sellable product without a refetch.
type ProductOption struct {
	ID    int64   `json:"id"`
	Label string  `json:"label"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type ProductSelector struct {
	Placeholder string          `json:"placeholder"`
	Options     []ProductOption `json:"options"`
}

// BuildProductSelector offers only products with stock left.
func BuildProductSelector(products []model.Product) ProductSelector {
	options := make([]ProductOption, 0, len(products))
	for _, p := range products {
		if p.StockQuantity <= 0 {
			continue
		}
		options = append(options, ProductOption{
			ID:    p.ID,
			Label: fmt.Sprintf("%s - %s (Stock: %d)", p.Name, Money(p.Price), p.StockQuantity),
			Name:  p.Name,
			Price: p.Price,
			Stock: p.StockQuantity,
		})
	}
	return ProductSelector{Placeholder: "Select Product", Options: options}
}

type CartLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
	Detail    string `json:"detail"`
}

type CartView struct {
	Empty     bool       `json:"empty"`
	EmptyText string     `json:"empty_text,omitempty"`
	Lines     []CartLine `json:"lines"`
}

func BuildCartView(items []model.CartItem) CartView {
	if len(items) == 0 {
		return CartView{Empty: true, EmptyText: "No items in cart", Lines: []CartLine{}}
	}
	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, CartLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: Money(item.Price),
			LineTotal: Money(item.LineTotal()),
			Detail:    fmt.Sprintf("%d × %s = %s", item.Quantity, Money(item.Price), Money(item.LineTotal())),
		})
	}
	return CartView{Lines: lines}
}

// TotalsView is the totals panel beside the cart; it always shows all four figures.
type TotalsView struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func BuildTotalsView(t cart.Totals) TotalsView {
	return TotalsView{
		Subtotal: Money(t.Subtotal),
		Discount: Money(t.DiscountAmount),
		Tax:      Money(t.TaxAmount),
		Total:    Money(t.Total),
	}
}

type ReceiptLine struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

type Receipt struct {
	Date      string        `json:"date"`
	Empty     bool          `json:"empty"`
	EmptyText string        `json:"empty_text,omitempty"`
	Lines     []ReceiptLine `json:"lines"`
	Subtotal  ReceiptLine   `json:"subtotal"`
	// Discount is nil when the discount amount is zero.
	Discount *ReceiptLine `json:"discount,omitempty"`
	Tax      ReceiptLine  `json:"tax"`
	Total    ReceiptLine  `json:"total"`
}

func BuildReceipt(items []model.CartItem, discountPercent float64, now time.Time) Receipt {
	r := Receipt{Date: now.Format("1/2/2006, 3:04:05 PM")}
	if len(items) == 0 {
		r.Empty = true
		r.EmptyText = "No items selected"
		r.Lines = []ReceiptLine{}
		return r
	}

	totals := cart.ComputeTotals(items, discountPercent)

	r.Lines = make([]ReceiptLine, 0, len(items))
	for _, item := range items {
		r.Lines = append(r.Lines, ReceiptLine{
			Label:  fmt.Sprintf("%s x%d", item.Name, item.Quantity),
			Amount: Money(item.LineTotal()),
		})
	}
	r.Subtotal = ReceiptLine{Label: "Subtotal:", Amount: Money(totals.Subtotal)}
	if totals.DiscountAmount != 0 {
		r.Discount = &ReceiptLine{
			Label:  fmt.Sprintf("Discount (%s%%):", Percent(totals.DiscountPercent)),
			Amount: "-" + Money(totals.DiscountAmount),
		}
	}
	r.Tax = ReceiptLine{Label: fmt.Sprintf("Tax (%s%%):", Percent(cart.TaxRate*100)), Amount: Money(totals.TaxAmount)}
	r.Total = ReceiptLine{Label: "TOTAL:", Amount: Money(totals.Total)}
	return r
}

const receiptWidth = 40

// Text lays the receipt out for a fixed-width printer.
func (r Receipt) Text() string {
	var b strings.Builder
	b.WriteString(r.Date)
	b.WriteByte('\n')
	if r.Empty {
		b.WriteString(r.EmptyText)
		b.WriteByte('\n')
		return b.String()
	}

	for _, l := range r.Lines {
		writeReceiptLine(&b, l)
	}
	b.WriteString(strings.Repeat("-", receiptWidth))
	b.WriteByte('\n')
	writeReceiptLine(&b, r.Subtotal)
	if r.Discount != nil {
		writeReceiptLine(&b, *r.Discount)
	}
	writeReceiptLine(&b, r.Tax)
	b.WriteString(strings.Repeat("-", receiptWidth))
	b.WriteByte('\n')
	writeReceiptLine(&b, r.Total)
	return b.String()
}

func writeReceiptLine(b *strings.Builder, l ReceiptLine) {
	pad := receiptWidth - len([]rune(l.Label)) - len([]rune(l.Amount))
	if pad < 1 {
		pad = 1
	}
	b.WriteString(l.Label)
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(l.Amount)
	b.WriteByte('\n')
}

// BillingView is everything the billing section shows.
type BillingView struct {
	Products  ProductSelector   `json:"products"`
	Customers CustomerSelector  `json:"customers"`
	Form      model.BillingForm `json:"form"`
	Cart      CartView          `json:"cart"`
	Totals    TotalsView        `json:"totals"`
	Receipt   Receipt           `json:"receipt"`
}

func BuildBilling(products []model.Product, customers []model.Customer, items []model.CartItem, form model.BillingForm, now time.Time) BillingView {
	return BillingView{
		Products:  BuildProductSelector(products),
		Customers: BuildCustomerSelector(customers),
		Form:      form,
		Cart:      BuildCartView(items),
		Totals:    BuildTotalsView(cart.ComputeTotals(items, form.DiscountPercent)),
		Receipt:   BuildReceipt(items, form.DiscountPercent, now),
	}
}
