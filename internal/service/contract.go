package service

import (
	"context"

	"github.com/akgarg0472/urlshortener-payment-service/internal/dto"
)

type PaymentService interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	CaptureOrder(ctx context.Context, req dto.CaptureOrderRequest) (*dto.CaptureOrderResponse, error)
	CancelOrder(ctx context.Context, req dto.CancelPaymentRequest) error
	GetOrder(ctx context.Context, userID, orderID string) (*dto.PaymentDetailResponse, error)
	GetPaymentHistory(ctx context.Context, userID string) (*dto.PaymentHistoryResponse, error)
	ProcessWebhook(ctx context.Context, payload map[string]interface{}) error
}
