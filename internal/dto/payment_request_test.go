package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateOrderRequestValidate(t *testing.T) {
	valid := CreateOrderRequest{
		UserID:       "u1",
		PackID:       "p1",
		CurrencyCode: "USD",
		Amount:       500,
	}
	assert.Empty(t, valid.Validate())

	empty := CreateOrderRequest{}
	assert.Len(t, empty.Validate(), 4)

	negative := valid
	negative.Amount = -1
	assert.Len(t, negative.Validate(), 1)
}

func TestCaptureOrderRequestValidate(t *testing.T) {
	assert.Empty(t, CaptureOrderRequest{PaymentID: "ord-1"}.Validate())
	assert.Len(t, CaptureOrderRequest{}.Validate(), 1)
}

func TestCancelPaymentRequestValidate(t *testing.T) {
	assert.Empty(t, CancelPaymentRequest{UserID: "u1", PaymentID: "ord-1"}.Validate())
	assert.Len(t, CancelPaymentRequest{}.Validate(), 2)
}

func TestCreateOrderRequestStringMasksUserID(t *testing.T) {
	request := CreateOrderRequest{
		UserID:       "user-12345",
		PackID:       "p1",
		CurrencyCode: "USD",
		Amount:       500,
	}

	assert.NotContains(t, request.String(), "user-12345")
	assert.Contains(t, request.String(), "pack_id=p1")
}
