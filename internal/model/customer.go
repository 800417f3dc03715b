package model

type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CustomerInput is the body of POST /api/customers
type CustomerInput struct {
	Name    string `json:"name" validate:"required,notblank,max=255"`
	Email   string `json:"email" validate:"omitempty,email,max=255"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address"`
}
