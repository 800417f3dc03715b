package view

import (
	"math"

	"go-store-console/internal/model"

	"github.com/shopspring/decimal"
)

type ProductRow struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Barcode  string `json:"barcode"`
	ImageURL string `json:"image_url"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Cost     string `json:"cost"`
	// Margin is nil when it cannot be computed (zero cost price); MarginLabel then says NaN or Infinity.
	Margin      *float64 `json:"margin,omitempty"`
	MarginLabel string   `json:"margin_label"`
	Stock       int      `json:"stock"`
	LowStock    bool     `json:"low_stock"`
	Supplier    string   `json:"supplier"`
}

type ProductTable struct {
	Rows []ProductRow `json:"rows"`
}

// ProductForm is the add/edit product editor. EditingID is nil when adding.
type ProductForm struct {
	Visible   bool               `json:"visible"`
	Title     string             `json:"title"`
	EditingID *int64             `json:"editing_id,omitempty"`
	Input     model.ProductInput `json:"input"`
}

// MarginPercent is (price − cost)/cost × 100 rounded to one decimal.
// A zero cost yields NaN or ±Inf and ok=false.
func MarginPercent(price, cost float64) (margin float64, ok bool) {
	m := (price - cost) / cost * 100
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return m, false
	}
	rounded, _ := decimal.NewFromFloat(m).Round(1).Float64()
	return rounded, true
}

func BuildProductRow(p model.Product) ProductRow {
	row := ProductRow{
		ID:       p.ID,
		Name:     p.Name,
		Barcode:  orDefault(p.Barcode, "No barcode"),
		ImageURL: p.ImageURL,
		Category: p.Category,
		Price:    Money(p.Price),
		Cost:     Money(p.CostPrice),
		Stock:    p.StockQuantity,
		LowStock: p.StockQuantity < model.LowStockThreshold,
		Supplier: orDefault(p.Supplier, "N/A"),
	}

	margin, ok := MarginPercent(p.Price, p.CostPrice)
	if ok {
		row.Margin = &margin
		row.MarginLabel = Fixed(margin, 1)
	} else {
		row.MarginLabel = nonFinite(margin)
	}
	return row
}

func BuildProductTable(products []model.Product) ProductTable {
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, BuildProductRow(p))
	}
	return ProductTable{Rows: rows}
}

func NewProductForm() ProductForm {
	return ProductForm{
		Visible: true,
		Title:   "Add Product",
		Input:   model.ProductInput{ImageURL: model.DefaultImageURL},
	}
}

func EditProductForm(p model.Product) ProductForm {
	id := p.ID
	return ProductForm{
		Visible:   true,
		Title:     "Edit Product",
		EditingID: &id,
		Input:     p.ToInput(),
	}
}

func HiddenProductForm() ProductForm {
	return ProductForm{Title: "Add Product"}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
