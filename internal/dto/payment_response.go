package dto

import "github.com/akgarg0472/urlshortener-payment-service/internal/domain"

type CreateOrderResponse struct {
	OrderID     string `json:"order_id"`
	ApprovalURL string `json:"approval_url"`
}

type CaptureOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type PaymentDetailResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	PackID         string `json:"pack_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	PaymentStatus  string `json:"payment_status"`
	PaymentGateway string `json:"payment_gateway"`
	CreatedAt      int64  `json:"created_at"`
	CompletedAt    *int64 `json:"completed_at,omitempty"`
}

func ToPaymentDetailResponse(order domain.PaymentOrder) PaymentDetailResponse {
	return PaymentDetailResponse{
		ID:             order.ID,
		UserID:         order.UserID,
		PackID:         order.PackID,
		Amount:         order.Amount,
		Currency:       order.Currency,
		PaymentStatus:  string(order.PaymentStatus),
		PaymentGateway: order.PaymentGateway,
		CreatedAt:      order.CreatedAt,
		CompletedAt:    order.CompletedAt,
	}
}

type PaymentHistoryResponse struct {
	Payments []PaymentDetailResponse `json:"payments"`
}
