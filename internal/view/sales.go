package view

import (
	"fmt"

	"go-store-console/internal/model"
)

type SalesRow struct {
	ID            string `json:"id"`
	Customer      string `json:"customer"`
	Subtotal      string `json:"subtotal"`
	Discount      string `json:"discount"`
	Tax           string `json:"tax"`
	Total         string `json:"total"`
	PaymentMethod string `json:"payment_method"`
	Date          string `json:"date"`
}

type SalesTable struct {
	Rows []SalesRow `json:"rows"`
}

func BuildSalesTable(sales []model.Sale) SalesTable {
	rows := make([]SalesRow, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, SalesRow{
			ID:            fmt.Sprintf("#%d", s.ID),
			Customer:      orDefault(s.CustomerName, model.WalkInCustomer),
			Subtotal:      Money(s.Subtotal),
			Discount:      Money(s.DiscountAmount),
			Tax:           Money(s.TaxAmount),
			Total:         Money(s.TotalAmount),
			PaymentMethod: s.PaymentMethod,
			Date:          DateTime(s.SaleDate),
		})
	}
	return SalesTable{Rows: rows}
}
