package service

import (
	"context"
	"fmt"

	"github.com/akgarg0472/urlshortener-payment-service/internal/domain"
	"github.com/akgarg0472/urlshortener-payment-service/internal/dto"
	"github.com/akgarg0472/urlshortener-payment-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

const (
	webhookEventOrderApproved   = "CHECKOUT.ORDER.APPROVED"
	webhookEventCaptureComplete = "PAYMENT.CAPTURE.COMPLETED"

	// The gateway may omit the payer on approval notifications.
	unknownPayerID = "null"
)

type webhookEventKind int

const (
	webhookKindUnknown webhookEventKind = iota
	webhookKindOrderApproved
	webhookKindCaptureCompleted
)

// webhookEvent is the typed result of parsing an untyped notification
// payload, keeping the unsafe nested-map extraction out of the reconciliation
// logic.
type webhookEvent struct {
	Kind    webhookEventKind
	OrderID string
	PayerID string
}

// parseWebhookPayload extracts the event kind and order id from a gateway
// notification. Unknown event types yield webhookKindUnknown without error;
// payloads missing the expected nested keys yield errs.ErrClient.
func parseWebhookPayload(payload map[string]interface{}) (*webhookEvent, error) {
	eventType, _ := payload["event_type"].(string)

	switch eventType {
	case webhookEventOrderApproved:
		resource, ok := payload["resource"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: failed to extract order id from webhook body", errs.ErrClient)
		}

		orderID, ok := resource["id"].(string)
		if !ok || orderID == "" {
			return nil, fmt.Errorf("%w: failed to extract order id from webhook body", errs.ErrClient)
		}

		payerID := unknownPayerID
		if payer, ok := resource["payer"].(map[string]interface{}); ok {
			if id, ok := payer["payer_id"].(string); ok && id != "" {
				payerID = id
			}
		}

		return &webhookEvent{
			Kind:    webhookKindOrderApproved,
			OrderID: orderID,
			PayerID: payerID,
		}, nil

	case webhookEventCaptureComplete:
		resource, ok := payload["resource"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: failed to extract order id from webhook body", errs.ErrClient)
		}

		supplementaryData, ok := resource["supplementary_data"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: failed to extract order id from webhook body", errs.ErrClient)
		}

		relatedIDs, ok := supplementaryData["related_ids"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: failed to extract order id from webhook body", errs.ErrClient)
		}

		orderID, ok := relatedIDs["order_id"].(string)
		if !ok || orderID == "" {
			return nil, fmt.Errorf("%w: failed to extract order id from webhook body", errs.ErrClient)
		}

		return &webhookEvent{
			Kind:    webhookKindCaptureCompleted,
			OrderID: orderID,
		}, nil

	default:
		return &webhookEvent{Kind: webhookKindUnknown}, nil
	}
}

// ProcessWebhook routes a gateway notification to the matching reconciliation
// path. Unknown event types are ignored so the endpoint can acknowledge them.
func (s *PaymentServiceImpl) ProcessWebhook(ctx context.Context, payload map[string]interface{}) error {
	parsed, err := parseWebhookPayload(payload)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("malformed webhook payload")
		return err
	}

	switch parsed.Kind {
	case webhookKindOrderApproved:
		log.Ctx(ctx).Info().Str("order_id", parsed.OrderID).Msg("processing order approved webhook")
		_, err := s.CaptureOrder(ctx, dto.CaptureOrderRequest{
			PaymentID: parsed.OrderID,
			PayerID:   parsed.PayerID,
		})
		return err

	case webhookKindCaptureCompleted:
		log.Ctx(ctx).Info().Str("order_id", parsed.OrderID).Msg("processing payment capture completed webhook")
		return s.completeFromWebhook(ctx, parsed.OrderID)

	default:
		log.Ctx(ctx).Info().Interface("event_type", payload["event_type"]).Msg("not processing webhook request for event")
		return nil
	}
}

// completeFromWebhook handles the notification the gateway sends after it has
// already captured the payment itself: no capture call is needed, the order
// only has to be driven to COMPLETED exactly once.
func (s *PaymentServiceImpl) completeFromWebhook(ctx context.Context, orderID string) error {
	order, err := s.repository.FindByID(ctx, orderID)
	if err != nil {
		return errs.ErrInternalServer
	}
	if order == nil {
		log.Ctx(ctx).Warn().Str("order_id", orderID).Msg("no payment details found for webhook")
		return errs.ErrNotFound
	}

	if order.PaymentStatus.Terminal() {
		log.Ctx(ctx).Info().Str("order_id", orderID).Str("status", string(order.PaymentStatus)).Msg("order already terminal, ignoring webhook")
		return nil
	}

	claimed, err := s.repository.UpdateStatusIfCurrent(ctx, orderID, domain.PaymentStatusCreated, domain.PaymentStatusProcessing)
	if err != nil {
		return errs.ErrInternalServer
	}
	if !claimed {
		// Either a concurrent capture owns the order in PROCESSING and will
		// finish it, or it reached a terminal state since the read above.
		log.Ctx(ctx).Info().Str("order_id", orderID).Msg("order claimed by a concurrent invocation, ignoring webhook")
		return nil
	}

	order.PaymentStatus = domain.PaymentStatusProcessing
	return s.completePayment(ctx, *order)
}
