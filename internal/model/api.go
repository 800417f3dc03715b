package model

// APIResult is the {success, message} envelope of the store API's write endpoints
type APIResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// APIError is the body the store API sends with 4xx/5xx statuses
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Credentials are forwarded to POST /api/login
type Credentials struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}
