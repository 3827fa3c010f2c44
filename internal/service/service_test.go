package service

import (
	"context"
	"testing"
	"time"

	"github.com/akgarg0472/urlshortener-payment-service/internal/domain"
	"github.com/akgarg0472/urlshortener-payment-service/internal/dto"
	"github.com/akgarg0472/urlshortener-payment-service/internal/event"
	"github.com/akgarg0472/urlshortener-payment-service/internal/mocks"
	"github.com/akgarg0472/urlshortener-payment-service/internal/paymentgateway"
	"github.com/akgarg0472/urlshortener-payment-service/internal/repository"
	"github.com/akgarg0472/urlshortener-payment-service/internal/subscription"
	"github.com/akgarg0472/urlshortener-payment-service/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repo    *repository.InMemoryOrderRepository
	cache   *subscription.InMemoryCache
	adapter *mocks.MockGatewayAdapter
	pub     *mocks.MockPublisher
	svc     PaymentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := repository.CreateInMemoryOrderRepository()
	cache := subscription.CreateInMemoryCache()
	adapter := &mocks.MockGatewayAdapter{}
	pub := &mocks.MockPublisher{}

	factory := paymentgateway.CreateFactory(adapter)
	svc := CreatePaymentService(repo, factory, pub, cache, adapter.Name())

	return &fixture{
		repo:    repo,
		cache:   cache,
		adapter: adapter,
		pub:     pub,
		svc:     svc,
	}
}

func (f *fixture) seedPack(t *testing.T, id string, price int64, defaultPack bool) {
	t.Helper()
	err := f.cache.AddOrUpdatePack(context.Background(), domain.SubscriptionPack{
		ID:          id,
		Price:       price,
		DefaultPack: defaultPack,
	})
	require.NoError(t, err)
}

func (f *fixture) seedSubscription(t *testing.T, userID, packID string, expiresAt int64) {
	t.Helper()
	err := f.cache.AddOrUpdateActiveSubscription(context.Background(), domain.Subscription{
		UserID:    userID,
		PackID:    packID,
		ExpiresAt: expiresAt,
	})
	require.NoError(t, err)
}

func (f *fixture) seedOrder(t *testing.T, order domain.PaymentOrder) {
	t.Helper()
	require.NoError(t, f.repo.Save(context.Background(), order))
}

func createRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		UserID:       "u1",
		PackID:       "p1",
		CurrencyCode: "USD",
		Amount:       500,
		Description:  "premium pack",
	}
}

func inOneHour() int64 {
	return time.Now().Add(time.Hour).UnixMilli()
}

func TestCreateOrder(t *testing.T) {
	tests := []struct {
		name          string
		request       dto.CreateOrderRequest
		setup         func(t *testing.T, f *fixture)
		expectedErr   error
		expectGateway bool
	}{
		{
			name:    "successful order creation",
			request: createRequest(),
			setup: func(t *testing.T, f *fixture) {
				f.seedPack(t, "p1", 500, false)
				f.adapter.On("CreateOrder", mock.Anything, paymentgateway.CreateOrderInput{
					Amount:      500,
					Currency:    "USD",
					Description: "premium pack",
				}).Return(&paymentgateway.CreateOrderResult{
					OrderID:     "ord-1",
					ApprovalURL: "https://gateway.example/approve/ord-1",
				}, nil)
			},
			expectGateway: true,
		},
		{
			name:        "unknown pack is rejected",
			request:     createRequest(),
			setup:       func(t *testing.T, f *fixture) {},
			expectedErr: errs.ErrInvalidPack,
		},
		{
			name:    "same active pack is rejected",
			request: createRequest(),
			setup: func(t *testing.T, f *fixture) {
				f.seedPack(t, "p1", 500, false)
				f.seedSubscription(t, "u1", "p1", inOneHour())
			},
			expectedErr: errs.ErrPackAlreadyActive,
		},
		{
			name:    "other active paid pack is rejected",
			request: createRequest(),
			setup: func(t *testing.T, f *fixture) {
				f.seedPack(t, "p1", 500, false)
				f.seedPack(t, "p2", 300, false)
				f.seedSubscription(t, "u1", "p2", inOneHour())
			},
			expectedErr: errs.ErrPackAlreadyActive,
		},
		{
			name:    "active default pack does not block upgrade",
			request: createRequest(),
			setup: func(t *testing.T, f *fixture) {
				f.seedPack(t, "p1", 500, false)
				f.seedPack(t, "free", 0, true)
				f.seedSubscription(t, "u1", "free", inOneHour())
				f.adapter.On("CreateOrder", mock.Anything, mock.Anything).Return(&paymentgateway.CreateOrderResult{
					OrderID:     "ord-1",
					ApprovalURL: "https://gateway.example/approve/ord-1",
				}, nil)
			},
			expectGateway: true,
		},
		{
			name:    "expired subscription does not block purchase",
			request: createRequest(),
			setup: func(t *testing.T, f *fixture) {
				f.seedPack(t, "p1", 500, false)
				f.seedSubscription(t, "u1", "p1", time.Now().Add(-time.Hour).UnixMilli())
				f.adapter.On("CreateOrder", mock.Anything, mock.Anything).Return(&paymentgateway.CreateOrderResult{
					OrderID:     "ord-1",
					ApprovalURL: "https://gateway.example/approve/ord-1",
				}, nil)
			},
			expectGateway: true,
		},
		{
			name:    "incomplete payment is rejected",
			request: createRequest(),
			setup: func(t *testing.T, f *fixture) {
				f.seedPack(t, "p1", 500, false)
				f.seedOrder(t, domain.PaymentOrder{
					ID:            "ord-0",
					UserID:        "u1",
					PackID:        "p2",
					PaymentStatus: domain.PaymentStatusProcessing,
				})
			},
			expectedErr: errs.ErrIncompletePayment,
		},
		{
			name: "amount mismatch is rejected before gateway call",
			request: dto.CreateOrderRequest{
				UserID:       "u1",
				PackID:       "p1",
				CurrencyCode: "USD",
				Amount:       499,
			},
			setup: func(t *testing.T, f *fixture) {
				f.seedPack(t, "p1", 500, false)
			},
			expectedErr: errs.ErrAmountMismatch,
		},
		{
			name:    "gateway failure surfaces as gateway error",
			request: createRequest(),
			setup: func(t *testing.T, f *fixture) {
				f.seedPack(t, "p1", 500, false)
				f.adapter.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, errs.ErrPaymentGateway)
			},
			expectedErr:   errs.ErrPaymentGateway,
			expectGateway: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(t, f)

			resp, err := f.svc.CreateOrder(context.Background(), tt.request)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, resp)

				orders, listErr := f.repo.FindAllByUser(context.Background(), tt.request.UserID)
				require.NoError(t, listErr)
				for _, order := range orders {
					assert.NotEqual(t, tt.request.Amount, order.Amount, "rejected request must not persist an order")
				}
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, "ord-1", resp.OrderID)
				assert.NotEmpty(t, resp.ApprovalURL)

				order, findErr := f.repo.FindByID(context.Background(), resp.OrderID)
				require.NoError(t, findErr)
				require.NotNil(t, order)
				assert.Equal(t, domain.PaymentStatusCreated, order.PaymentStatus)
				assert.Nil(t, order.CompletedAt)
			}

			if !tt.expectGateway {
				f.adapter.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
			}
			f.pub.AssertNotCalled(t, "Publish", mock.Anything)
		})
	}
}

func TestCreateOrderPersistenceFailure(t *testing.T) {
	repo := &mocks.MockOrderRepository{}
	cache := subscription.CreateInMemoryCache()
	adapter := &mocks.MockGatewayAdapter{}
	pub := &mocks.MockPublisher{}
	svc := CreatePaymentService(repo, paymentgateway.CreateFactory(adapter), pub, cache, adapter.Name())

	require.NoError(t, cache.AddOrUpdatePack(context.Background(), domain.SubscriptionPack{ID: "p1", Price: 500}))
	repo.On("FindByUserAndStatusIn", mock.Anything, "u1", mock.Anything).Return([]domain.PaymentOrder{}, nil)
	adapter.On("CreateOrder", mock.Anything, mock.Anything).Return(&paymentgateway.CreateOrderResult{
		OrderID:     "ord-1",
		ApprovalURL: "https://gateway.example/approve/ord-1",
	}, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(errs.ErrDatabase)

	_, err := svc.CreateOrder(context.Background(), createRequest())

	require.ErrorIs(t, err, errs.ErrInternalServer)
	repo.AssertCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCaptureOrder(t *testing.T) {
	createdOrder := func() domain.PaymentOrder {
		return domain.PaymentOrder{
			ID:             "ord-1",
			UserID:         "u1",
			PackID:         "p1",
			Amount:         500,
			Currency:       "USD",
			PaymentStatus:  domain.PaymentStatusCreated,
			PaymentGateway: "paypal",
			CreatedAt:      time.Now().UnixMilli(),
		}
	}

	t.Run("unknown order returns not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CaptureOrder(context.Background(), dto.CaptureOrderRequest{PaymentID: "missing"})

		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("successful capture completes and publishes once", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrder(t, createdOrder())
		f.adapter.On("CaptureOrder", mock.Anything, "ord-1").Return(&paymentgateway.CaptureResult{Status: paymentgateway.CaptureStatusCompleted}, nil)
		f.pub.On("Publish", event.PaymentEvent{
			PaymentID:      "ord-1",
			UserID:         "u1",
			PackID:         "p1",
			Amount:         500,
			Currency:       "USD",
			PaymentGateway: "paypal",
		}).Return(nil)

		resp, err := f.svc.CaptureOrder(context.Background(), dto.CaptureOrderRequest{PaymentID: "ord-1", PayerID: "payer-1"})

		require.NoError(t, err)
		assert.Equal(t, string(domain.PaymentStatusCompleted), resp.Status)

		order, _ := f.repo.FindByID(context.Background(), "ord-1")
		require.NotNil(t, order)
		assert.Equal(t, domain.PaymentStatusCompleted, order.PaymentStatus)
		require.NotNil(t, order.CompletedAt)

		f.pub.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("duplicate capture is a no-op without republishing", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrder(t, createdOrder())
		f.adapter.On("CaptureOrder", mock.Anything, "ord-1").Return(&paymentgateway.CaptureResult{Status: paymentgateway.CaptureStatusCompleted}, nil)
		f.pub.On("Publish", mock.Anything).Return(nil)

		_, err := f.svc.CaptureOrder(context.Background(), dto.CaptureOrderRequest{PaymentID: "ord-1"})
		require.NoError(t, err)

		resp, err := f.svc.CaptureOrder(context.Background(), dto.CaptureOrderRequest{PaymentID: "ord-1"})
		require.NoError(t, err)
		assert.Equal(t, string(domain.PaymentStatusCompleted), resp.Status)

		f.adapter.AssertNumberOfCalls(t, "CaptureOrder", 1)
		f.pub.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("gateway reporting non-complete marks order failed", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrder(t, createdOrder())
		f.adapter.On("CaptureOrder", mock.Anything, "ord-1").Return(&paymentgateway.CaptureResult{Status: "DECLINED"}, nil)

		resp, err := f.svc.CaptureOrder(context.Background(), dto.CaptureOrderRequest{PaymentID: "ord-1"})

		require.NoError(t, err)
		assert.Equal(t, string(domain.PaymentStatusFailed), resp.Status)

		order, _ := f.repo.FindByID(context.Background(), "ord-1")
		require.NotNil(t, order)
		assert.Equal(t, domain.PaymentStatusFailed, order.PaymentStatus)
		assert.Nil(t, order.CompletedAt)

		f.pub.AssertNotCalled(t, "Publish", mock.Anything)
	})

	t.Run("gateway error leaves order in processing", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrder(t, createdOrder())
		f.adapter.On("CaptureOrder", mock.Anything, "ord-1").Return(nil, errs.ErrPaymentGateway)

		_, err := f.svc.CaptureOrder(context.Background(), dto.CaptureOrderRequest{PaymentID: "ord-1"})

		require.ErrorIs(t, err, errs.ErrPaymentGateway)

		order, _ := f.repo.FindByID(context.Background(), "ord-1")
		require.NotNil(t, order)
		assert.Equal(t, domain.PaymentStatusProcessing, order.PaymentStatus)

		f.pub.AssertNotCalled(t, "Publish", mock.Anything)
	})

	t.Run("capture of failed order is a no-op", func(t *testing.T) {
		f := newFixture(t)
		order := createdOrder()
		order.PaymentStatus = domain.PaymentStatusFailed
		f.seedOrder(t, order)

		resp, err := f.svc.CaptureOrder(context.Background(), dto.CaptureOrderRequest{PaymentID: "ord-1"})

		require.NoError(t, err)
		assert.Equal(t, string(domain.PaymentStatusFailed), resp.Status)
		f.adapter.AssertNotCalled(t, "CaptureOrder", mock.Anything, mock.Anything)
	})
}

func TestCancelOrder(t *testing.T) {
	seed := func(f *fixture, t *testing.T, status domain.PaymentStatus) {
		f.seedOrder(t, domain.PaymentOrder{
			ID:            "ord-1",
			UserID:        "u1",
			PackID:        "p1",
			PaymentStatus: status,
		})
	}

	t.Run("created order can be cancelled", func(t *testing.T) {
		f := newFixture(t)
		seed(f, t, domain.PaymentStatusCreated)

		err := f.svc.CancelOrder(context.Background(), dto.CancelPaymentRequest{UserID: "u1", PaymentID: "ord-1"})

		require.NoError(t, err)
		order, _ := f.repo.FindByID(context.Background(), "ord-1")
		assert.Equal(t, domain.PaymentStatusCancelled, order.PaymentStatus)
	})

	t.Run("processing order cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)
		seed(f, t, domain.PaymentStatusProcessing)

		err := f.svc.CancelOrder(context.Background(), dto.CancelPaymentRequest{UserID: "u1", PaymentID: "ord-1"})

		require.ErrorIs(t, err, errs.ErrOrderNotCancellable)
	})

	t.Run("completed order cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)
		seed(f, t, domain.PaymentStatusCompleted)

		err := f.svc.CancelOrder(context.Background(), dto.CancelPaymentRequest{UserID: "u1", PaymentID: "ord-1"})

		require.ErrorIs(t, err, errs.ErrOrderNotCancellable)
	})

	t.Run("other users cannot cancel the order", func(t *testing.T) {
		f := newFixture(t)
		seed(f, t, domain.PaymentStatusCreated)

		err := f.svc.CancelOrder(context.Background(), dto.CancelPaymentRequest{UserID: "u2", PaymentID: "ord-1"})

		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestGetOrderAndHistory(t *testing.T) {
	f := newFixture(t)
	f.seedOrder(t, domain.PaymentOrder{
		ID:            "ord-1",
		UserID:        "u1",
		PackID:        "p1",
		Amount:        500,
		Currency:      "USD",
		PaymentStatus: domain.PaymentStatusCompleted,
		CreatedAt:     10,
	})
	f.seedOrder(t, domain.PaymentOrder{
		ID:            "ord-2",
		UserID:        "u1",
		PackID:        "p2",
		Amount:        300,
		Currency:      "USD",
		PaymentStatus: domain.PaymentStatusFailed,
		CreatedAt:     20,
	})

	order, err := f.svc.GetOrder(context.Background(), "u1", "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", order.ID)

	_, err = f.svc.GetOrder(context.Background(), "u2", "ord-1")
	require.ErrorIs(t, err, errs.ErrNotFound)

	history, err := f.svc.GetPaymentHistory(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, history.Payments, 2)
	assert.Equal(t, "ord-1", history.Payments[0].ID)
	assert.Equal(t, "ord-2", history.Payments[1].ID)
}
