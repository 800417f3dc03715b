package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindStockExceeded
	KindNetwork
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindStockExceeded:
		return "STOCK_EXCEEDED"
	case KindNetwork:
		return "NETWORK"
	case KindServer:
		return "SERVER"
	default:
		return "UNKNOWN"
	}
}

// Error is the failure type shared by the cart engine, the gateway and the console.
// Message is always safe to show to the operator.
type Error struct {
	Kind    Kind
	Message string
	// Available is the stock count reported by StockExceeded errors.
	Available int
	Err       error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func StockExceeded(available int, message string) *Error {
	return &Error{Kind: KindStockExceeded, Message: message, Available: available}
}

func Network(message string, err error) *Error {
	return &Error{Kind: KindNetwork, Message: message, Err: err}
}

func Server(message string) *Error {
	return &Error{Kind: KindServer, Message: message}
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the status the console shell answers with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindStockExceeded:
		return http.StatusConflict
	case KindNetwork, KindServer:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
