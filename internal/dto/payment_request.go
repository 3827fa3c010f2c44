package dto

import (
	"fmt"

	"github.com/akgarg0472/urlshortener-payment-service/pkg/utils"
)

type CreateOrderRequest struct {
	UserID       string `json:"user_id"`
	PackID       string `json:"pack_id"`
	CurrencyCode string `json:"currency_code"`
	Amount       int64  `json:"amount"`
	Description  string `json:"description"`
}

func (r CreateOrderRequest) Validate() []string {
	var errors []string
	if r.UserID == "" {
		errors = append(errors, "Please provide valid user_id")
	}
	if r.PackID == "" {
		errors = append(errors, "Please provide a valid pack_id")
	}
	if r.CurrencyCode == "" {
		errors = append(errors, "Please provide valid currency_code")
	}
	if r.Amount < 1 {
		errors = append(errors, "Please provide valid amount")
	}
	return errors
}

func (r CreateOrderRequest) String() string {
	return fmt.Sprintf("{user_id=%s pack_id=%s currency=%s amount=%d}",
		utils.MaskString(r.UserID), r.PackID, r.CurrencyCode, r.Amount)
}

type CaptureOrderRequest struct {
	PaymentID string `json:"payment_id"`
	PayerID   string `json:"payer_id"`
}

func (r CaptureOrderRequest) Validate() []string {
	if r.PaymentID == "" {
		return []string{"Please provide valid payment_id"}
	}
	return nil
}

type CancelPaymentRequest struct {
	UserID    string `json:"user_id"`
	PaymentID string `json:"payment_id"`
}

func (r CancelPaymentRequest) Validate() []string {
	var errors []string
	if r.UserID == "" {
		errors = append(errors, "user_id can't be null or empty")
	}
	if r.PaymentID == "" {
		errors = append(errors, "payment_id can't be null or empty")
	}
	return errors
}

func (r CancelPaymentRequest) String() string {
	return fmt.Sprintf("{user_id=%s payment_id=%s}", utils.MaskString(r.UserID), utils.MaskString(r.PaymentID))
}
