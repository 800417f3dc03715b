package view

import (
	"fmt"

	"go-store-console/internal/model"
)

type CustomerRow struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CustomerTable struct {
	Rows []CustomerRow `json:"rows"`
}

func BuildCustomerTable(customers []model.Customer) CustomerTable {
	rows := make([]CustomerRow, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, CustomerRow{
			ID:      c.ID,
			Name:    c.Name,
			Email:   orDefault(c.Email, "N/A"),
			Phone:   orDefault(c.Phone, "N/A"),
			Address: orDefault(c.Address, "N/A"),
		})
	}
	return CustomerTable{Rows: rows}
}

type CustomerOption struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

type CustomerSelector struct {
	Placeholder string           `json:"placeholder"`
	Options     []CustomerOption `json:"options"`
}

// BuildCustomerSelector lists every customer after the walk-in placeholder.
func BuildCustomerSelector(customers []model.Customer) CustomerSelector {
	options := make([]CustomerOption, 0, len(customers))
	for _, c := range customers {
		contact := c.Phone
		if contact == "" {
			contact = c.Email
		}
		if contact == "" {
			contact = "No contact"
		}
		options = append(options, CustomerOption{ID: c.ID, Label: fmt.Sprintf("%s (%s)", c.Name, contact)})
	}
	return CustomerSelector{Placeholder: model.WalkInCustomer, Options: options}
}
