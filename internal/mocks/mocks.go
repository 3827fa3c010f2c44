package mocks

import (
	"context"

	"github.com/akgarg0472/urlshortener-payment-service/internal/domain"
	"github.com/akgarg0472/urlshortener-payment-service/internal/event"
	"github.com/akgarg0472/urlshortener-payment-service/internal/paymentgateway"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, order domain.PaymentOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order domain.PaymentOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatusIfCurrent(ctx context.Context, id string, expected, next domain.PaymentStatus) (bool, error) {
	args := m.Called(ctx, id, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (*domain.PaymentOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentOrder), args.Error(1)
}

func (m *MockOrderRepository) FindByUserAndStatusIn(ctx context.Context, userID string, statuses []domain.PaymentStatus) ([]domain.PaymentOrder, error) {
	args := m.Called(ctx, userID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentOrder), args.Error(1)
}

func (m *MockOrderRepository) FindAllByUser(ctx context.Context, userID string) ([]domain.PaymentOrder, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentOrder), args.Error(1)
}

type MockGatewayAdapter struct {
	mock.Mock
	GatewayName string
}

func (m *MockGatewayAdapter) Name() string {
	if m.GatewayName != "" {
		return m.GatewayName
	}
	return "paypal"
}

func (m *MockGatewayAdapter) CreateOrder(ctx context.Context, input paymentgateway.CreateOrderInput) (*paymentgateway.CreateOrderResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentgateway.CreateOrderResult), args.Error(1)
}

func (m *MockGatewayAdapter) CaptureOrder(ctx context.Context, orderID string) (*paymentgateway.CaptureResult, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentgateway.CaptureResult), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ev event.PaymentEvent) error {
	args := m.Called(ev)
	return args.Error(0)
}
