package service

import (
	"context"
	"fmt"
	"time"

	"github.com/akgarg0472/urlshortener-payment-service/internal/domain"
	"github.com/akgarg0472/urlshortener-payment-service/internal/dto"
	"github.com/akgarg0472/urlshortener-payment-service/internal/event"
	"github.com/akgarg0472/urlshortener-payment-service/internal/paymentgateway"
	"github.com/akgarg0472/urlshortener-payment-service/internal/repository"
	"github.com/akgarg0472/urlshortener-payment-service/internal/subscription"
	"github.com/akgarg0472/urlshortener-payment-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

type PaymentServiceImpl struct {
	repository     repository.OrderRepository
	gatewayFactory *paymentgateway.Factory
	publisher      event.Publisher
	entitlement    *EntitlementChecker
	defaultGateway string
}

func CreatePaymentService(
	repository repository.OrderRepository,
	gatewayFactory *paymentgateway.Factory,
	publisher event.Publisher,
	cache subscription.Cache,
	defaultGateway string,
) PaymentService {
	return &PaymentServiceImpl{
		repository:     repository,
		gatewayFactory: gatewayFactory,
		publisher:      publisher,
		entitlement:    CreateEntitlementChecker(cache, repository),
		defaultGateway: defaultGateway,
	}
}

// CreateOrder runs the entitlement rules, creates the remote order at the
// gateway and persists it in CREATED state. The gateway is never called for a
// rejected request. A repository failure after the remote order exists leaves
// that order dangling at the gateway; it is logged for manual reconciliation.
func (s *PaymentServiceImpl) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	log.Ctx(ctx).Info().Str("request", req.String()).Msg("create order request")

	if err := s.entitlement.CanCreateOrder(ctx, req.UserID, req.PackID, req.Amount); err != nil {
		return nil, err
	}

	adapter, err := s.gatewayFactory.Get(s.defaultGateway)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to resolve payment gateway")
		return nil, errs.ErrInternalServer
	}

	result, err := adapter.CreateOrder(ctx, paymentgateway.CreateOrderInput{
		Amount:      req.Amount,
		Currency:    req.CurrencyCode,
		Description: req.Description,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("gateway create order failed")
		return nil, fmt.Errorf("%w: failed to create order", errs.ErrPaymentGateway)
	}

	nowMillis := time.Now().UnixMilli()
	order := domain.PaymentOrder{
		ID:             result.OrderID,
		UserID:         req.UserID,
		PackID:         req.PackID,
		Amount:         req.Amount,
		Currency:       req.CurrencyCode,
		PaymentStatus:  domain.PaymentStatusCreated,
		PaymentGateway: adapter.Name(),
		CreatedAt:      nowMillis,
		UpdatedAt:      nowMillis,
	}

	if err := s.repository.Save(ctx, order); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("order_id", order.ID).Msg("failed to persist order created at gateway, remote order is dangling")
		return nil, errs.ErrInternalServer
	}

	log.Ctx(ctx).Info().Str("order_id", order.ID).Msg("payment order created")

	return &dto.CreateOrderResponse{
		OrderID:     order.ID,
		ApprovalURL: result.ApprovalURL,
	}, nil
}

// CaptureOrder reconciles an order to completion. It is safe to invoke any
// number of times for the same order: only the caller that wins the
// CREATED->PROCESSING claim talks to the gateway, every other invocation is a
// no-op reporting the current status.
func (s *PaymentServiceImpl) CaptureOrder(ctx context.Context, req dto.CaptureOrderRequest) (*dto.CaptureOrderResponse, error) {
	log.Ctx(ctx).Info().Str("order_id", req.PaymentID).Msg("capture order request")

	order, err := s.repository.FindByID(ctx, req.PaymentID)
	if err != nil {
		return nil, errs.ErrInternalServer
	}
	if order == nil {
		log.Ctx(ctx).Warn().Str("order_id", req.PaymentID).Msg("no payment details found")
		return nil, errs.ErrNotFound
	}

	if order.PaymentStatus != domain.PaymentStatusCreated {
		return s.noopCaptureResponse(ctx, order), nil
	}

	claimed, err := s.repository.UpdateStatusIfCurrent(ctx, order.ID, domain.PaymentStatusCreated, domain.PaymentStatusProcessing)
	if err != nil {
		return nil, errs.ErrInternalServer
	}
	if !claimed {
		// Lost the claim to a concurrent capture or webhook delivery.
		current, err := s.repository.FindByID(ctx, order.ID)
		if err != nil || current == nil {
			return nil, errs.ErrInternalServer
		}
		return s.noopCaptureResponse(ctx, current), nil
	}

	adapter, err := s.gatewayFactory.Get(order.PaymentGateway)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("order_id", order.ID).Msg("failed to resolve payment gateway, order left in PROCESSING")
		return nil, errs.ErrInternalServer
	}

	capture, err := adapter.CaptureOrder(ctx, order.ID)
	if err != nil {
		// The order intentionally stays in PROCESSING: rolling back to CREATED
		// would let a duplicate delivery re-capture concurrently.
		log.Ctx(ctx).Error().Err(err).Str("order_id", order.ID).Msg("gateway capture failed, order left in PROCESSING")
		return nil, fmt.Errorf("%w: capture failed", errs.ErrPaymentGateway)
	}

	order.PaymentStatus = domain.PaymentStatusProcessing

	if !capture.Completed() {
		log.Ctx(ctx).Warn().Str("order_id", order.ID).Str("status", capture.Status).Msg("gateway reported capture not completed")
		order.PaymentStatus = domain.PaymentStatusFailed
		if err := s.repository.Update(ctx, *order); err != nil {
			return nil, errs.ErrInternalServer
		}
		return &dto.CaptureOrderResponse{
			OrderID: order.ID,
			Status:  string(domain.PaymentStatusFailed),
			Message: "Payment could not be completed",
		}, nil
	}

	if err := s.completePayment(ctx, *order); err != nil {
		return nil, err
	}

	return &dto.CaptureOrderResponse{
		OrderID: order.ID,
		Status:  string(domain.PaymentStatusCompleted),
		Message: "Payment completed successfully. It may take some time for changes to reflect in your account",
	}, nil
}

func (s *PaymentServiceImpl) noopCaptureResponse(ctx context.Context, order *domain.PaymentOrder) *dto.CaptureOrderResponse {
	log.Ctx(ctx).Info().Str("order_id", order.ID).Str("status", string(order.PaymentStatus)).Msg("ignoring capture request for non-CREATED order")
	return &dto.CaptureOrderResponse{
		OrderID: order.ID,
		Status:  string(order.PaymentStatus),
		Message: fmt.Sprintf("Payment status is %s", order.PaymentStatus),
	}
}

// completePayment marks the order COMPLETED and publishes the completion
// event. The caller must own the order via a successful claim. The event is
// published only after the COMPLETED state is persisted.
func (s *PaymentServiceImpl) completePayment(ctx context.Context, order domain.PaymentOrder) error {
	nowMillis := time.Now().UnixMilli()
	order.PaymentStatus = domain.PaymentStatusCompleted
	order.CompletedAt = &nowMillis

	if err := s.repository.Update(ctx, order); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("order_id", order.ID).Msg("failed to persist completed order")
		return errs.ErrInternalServer
	}

	log.Ctx(ctx).Info().Str("order_id", order.ID).Msg("payment completed")

	if err := s.publisher.Publish(event.PaymentEvent{
		PaymentID:      order.ID,
		UserID:         order.UserID,
		PackID:         order.PackID,
		Amount:         order.Amount,
		Currency:       order.Currency,
		PaymentGateway: order.PaymentGateway,
	}); err != nil {
		// Delivery is at-least-once and fire-and-forget for the caller; a
		// publish failure is logged for the reconciliation job, not surfaced.
		log.Ctx(ctx).Error().Err(err).Str("order_id", order.ID).Msg("failed to publish payment event")
	}

	return nil
}

// CancelOrder cancels an order that is still in CREATED state.
func (s *PaymentServiceImpl) CancelOrder(ctx context.Context, req dto.CancelPaymentRequest) error {
	log.Ctx(ctx).Info().Str("request", req.String()).Msg("cancel order request")

	order, err := s.repository.FindByID(ctx, req.PaymentID)
	if err != nil {
		return errs.ErrInternalServer
	}
	if order == nil || order.UserID != req.UserID {
		return errs.ErrNotFound
	}

	if order.PaymentStatus != domain.PaymentStatusCreated {
		return errs.ErrOrderNotCancellable
	}

	cancelled, err := s.repository.UpdateStatusIfCurrent(ctx, order.ID, domain.PaymentStatusCreated, domain.PaymentStatusCancelled)
	if err != nil {
		return errs.ErrInternalServer
	}
	if !cancelled {
		return errs.ErrOrderNotCancellable
	}

	log.Ctx(ctx).Info().Str("order_id", order.ID).Msg("payment order cancelled")
	return nil
}

func (s *PaymentServiceImpl) GetOrder(ctx context.Context, userID, orderID string) (*dto.PaymentDetailResponse, error) {
	order, err := s.repository.FindByID(ctx, orderID)
	if err != nil {
		return nil, errs.ErrInternalServer
	}
	if order == nil || order.UserID != userID {
		return nil, errs.ErrNotFound
	}

	response := dto.ToPaymentDetailResponse(*order)
	return &response, nil
}

func (s *PaymentServiceImpl) GetPaymentHistory(ctx context.Context, userID string) (*dto.PaymentHistoryResponse, error) {
	orders, err := s.repository.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, errs.ErrInternalServer
	}

	payments := make([]dto.PaymentDetailResponse, 0, len(orders))
	for _, order := range orders {
		payments = append(payments, dto.ToPaymentDetailResponse(order))
	}

	return &dto.PaymentHistoryResponse{Payments: payments}, nil
}
