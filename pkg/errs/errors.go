package errs

import (
	"errors"
	"net/http"
)

var (
	ErrInternalServer      = errors.New("Internal server error")
	ErrClient              = errors.New("Bad request")
	ErrNotFound            = errors.New("Payment order not found")
	ErrInvalidPack         = errors.New("Invalid pack id provided")
	ErrPackAlreadyActive   = errors.New("Subscription pack already activated")
	ErrIncompletePayment   = errors.New("An incomplete payment already exists")
	ErrAmountMismatch      = errors.New("Amount does not match the pack price")
	ErrOrderNotCancellable = errors.New("Order can no longer be cancelled")
	ErrPaymentGateway      = errors.New("Payment gateway request failed")
	ErrDatabase            = errors.New("Database operation failed")
	ErrDuplicateOrder      = errors.New("Payment order already exists")
)

var errorMap = map[error]int{
	ErrInternalServer:      http.StatusInternalServerError,
	ErrClient:              http.StatusBadRequest,
	ErrNotFound:            http.StatusNotFound,
	ErrInvalidPack:         http.StatusBadRequest,
	ErrPackAlreadyActive:   http.StatusConflict,
	ErrIncompletePayment:   http.StatusConflict,
	ErrAmountMismatch:      http.StatusBadRequest,
	ErrOrderNotCancellable: http.StatusConflict,
	ErrPaymentGateway:      http.StatusBadGateway,
	ErrDatabase:            http.StatusInternalServerError,
	ErrDuplicateOrder:      http.StatusConflict,
}

func GetErrorStatusCode(err error) int {
	for e, code := range errorMap {
		if errors.Is(err, e) {
			return code
		}
	}
	return http.StatusInternalServerError
}
