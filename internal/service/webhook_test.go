package service

import (
	"context"
	"testing"

	"github.com/akgarg0472/urlshortener-payment-service/internal/domain"
	"github.com/akgarg0472/urlshortener-payment-service/internal/paymentgateway"
	"github.com/akgarg0472/urlshortener-payment-service/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func approvedPayload(orderID string) map[string]interface{} {
	return map[string]interface{}{
		"event_type": "CHECKOUT.ORDER.APPROVED",
		"resource": map[string]interface{}{
			"id": orderID,
			"payer": map[string]interface{}{
				"payer_id": "payer-1",
			},
		},
	}
}

func captureCompletedPayload(orderID string) map[string]interface{} {
	return map[string]interface{}{
		"event_type": "PAYMENT.CAPTURE.COMPLETED",
		"resource": map[string]interface{}{
			"supplementary_data": map[string]interface{}{
				"related_ids": map[string]interface{}{
					"order_id": orderID,
				},
			},
		},
	}
}

func TestParseWebhookPayload(t *testing.T) {
	tests := []struct {
		name            string
		payload         map[string]interface{}
		expectedKind    webhookEventKind
		expectedOrderID string
		expectedPayerID string
		expectErr       bool
	}{
		{
			name:            "order approved with payer",
			payload:         approvedPayload("ord-1"),
			expectedKind:    webhookKindOrderApproved,
			expectedOrderID: "ord-1",
			expectedPayerID: "payer-1",
		},
		{
			name: "order approved without payer falls back to sentinel",
			payload: map[string]interface{}{
				"event_type": "CHECKOUT.ORDER.APPROVED",
				"resource": map[string]interface{}{
					"id": "ord-1",
				},
			},
			expectedKind:    webhookKindOrderApproved,
			expectedOrderID: "ord-1",
			expectedPayerID: "null",
		},
		{
			name:            "capture completed with nested order id",
			payload:         captureCompletedPayload("ord-2"),
			expectedKind:    webhookKindCaptureCompleted,
			expectedOrderID: "ord-2",
		},
		{
			name: "unknown event type is not an error",
			payload: map[string]interface{}{
				"event_type": "PAYMENT.CAPTURE.DENIED",
			},
			expectedKind: webhookKindUnknown,
		},
		{
			name: "missing event type is treated as unknown",
			payload: map[string]interface{}{
				"resource": map[string]interface{}{"id": "ord-1"},
			},
			expectedKind: webhookKindUnknown,
		},
		{
			name: "approved without resource is malformed",
			payload: map[string]interface{}{
				"event_type": "CHECKOUT.ORDER.APPROVED",
			},
			expectErr: true,
		},
		{
			name: "approved with non-string order id is malformed",
			payload: map[string]interface{}{
				"event_type": "CHECKOUT.ORDER.APPROVED",
				"resource": map[string]interface{}{
					"id": 42,
				},
			},
			expectErr: true,
		},
		{
			name: "capture completed without related ids is malformed",
			payload: map[string]interface{}{
				"event_type": "PAYMENT.CAPTURE.COMPLETED",
				"resource": map[string]interface{}{
					"supplementary_data": map[string]interface{}{},
				},
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseWebhookPayload(tt.payload)

			if tt.expectErr {
				require.ErrorIs(t, err, errs.ErrClient)
				assert.Nil(t, parsed)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, parsed)
			assert.Equal(t, tt.expectedKind, parsed.Kind)
			assert.Equal(t, tt.expectedOrderID, parsed.OrderID)
			assert.Equal(t, tt.expectedPayerID, parsed.PayerID)
		})
	}
}

func TestProcessWebhook(t *testing.T) {
	seed := func(f *fixture, t *testing.T, status domain.PaymentStatus) {
		f.seedOrder(t, domain.PaymentOrder{
			ID:             "ord-1",
			UserID:         "u1",
			PackID:         "p1",
			Amount:         500,
			Currency:       "USD",
			PaymentStatus:  status,
			PaymentGateway: "paypal",
		})
	}

	t.Run("order approved triggers capture and completes", func(t *testing.T) {
		f := newFixture(t)
		seed(f, t, domain.PaymentStatusCreated)
		f.adapter.On("CaptureOrder", mock.Anything, "ord-1").Return(&paymentgateway.CaptureResult{Status: paymentgateway.CaptureStatusCompleted}, nil)
		f.pub.On("Publish", mock.Anything).Return(nil)

		err := f.svc.ProcessWebhook(context.Background(), approvedPayload("ord-1"))

		require.NoError(t, err)
		order, _ := f.repo.FindByID(context.Background(), "ord-1")
		assert.Equal(t, domain.PaymentStatusCompleted, order.PaymentStatus)
		f.pub.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("capture completed drives order to completed without gateway call", func(t *testing.T) {
		f := newFixture(t)
		seed(f, t, domain.PaymentStatusCreated)
		f.pub.On("Publish", mock.Anything).Return(nil)

		err := f.svc.ProcessWebhook(context.Background(), captureCompletedPayload("ord-1"))

		require.NoError(t, err)
		order, _ := f.repo.FindByID(context.Background(), "ord-1")
		assert.Equal(t, domain.PaymentStatusCompleted, order.PaymentStatus)
		require.NotNil(t, order.CompletedAt)
		f.adapter.AssertNotCalled(t, "CaptureOrder", mock.Anything, mock.Anything)
		f.pub.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("capture completed after capture path is a no-op", func(t *testing.T) {
		f := newFixture(t)
		seed(f, t, domain.PaymentStatusCreated)
		f.adapter.On("CaptureOrder", mock.Anything, "ord-1").Return(&paymentgateway.CaptureResult{Status: paymentgateway.CaptureStatusCompleted}, nil)
		f.pub.On("Publish", mock.Anything).Return(nil)

		require.NoError(t, f.svc.ProcessWebhook(context.Background(), approvedPayload("ord-1")))
		require.NoError(t, f.svc.ProcessWebhook(context.Background(), captureCompletedPayload("ord-1")))

		order, _ := f.repo.FindByID(context.Background(), "ord-1")
		assert.Equal(t, domain.PaymentStatusCompleted, order.PaymentStatus)
		f.pub.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("capture completed for processing order is deferred to the owner", func(t *testing.T) {
		f := newFixture(t)
		seed(f, t, domain.PaymentStatusProcessing)

		err := f.svc.ProcessWebhook(context.Background(), captureCompletedPayload("ord-1"))

		require.NoError(t, err)
		order, _ := f.repo.FindByID(context.Background(), "ord-1")
		assert.Equal(t, domain.PaymentStatusProcessing, order.PaymentStatus)
		f.pub.AssertNotCalled(t, "Publish", mock.Anything)
	})

	t.Run("capture completed for unknown order errors", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.ProcessWebhook(context.Background(), captureCompletedPayload("missing"))

		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("unknown event is acknowledged without side effects", func(t *testing.T) {
		f := newFixture(t)
		seed(f, t, domain.PaymentStatusCreated)

		err := f.svc.ProcessWebhook(context.Background(), map[string]interface{}{"event_type": "PAYMENT.CAPTURE.DENIED"})

		require.NoError(t, err)
		order, _ := f.repo.FindByID(context.Background(), "ord-1")
		assert.Equal(t, domain.PaymentStatusCreated, order.PaymentStatus)
	})

	t.Run("malformed payload is rejected", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.ProcessWebhook(context.Background(), map[string]interface{}{"event_type": "CHECKOUT.ORDER.APPROVED"})

		require.ErrorIs(t, err, errs.ErrClient)
	})
}
