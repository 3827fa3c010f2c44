package service

import (
	"context"
	"time"

	"github.com/akgarg0472/urlshortener-payment-service/internal/domain"
	"github.com/akgarg0472/urlshortener-payment-service/internal/repository"
	"github.com/akgarg0472/urlshortener-payment-service/internal/subscription"
	"github.com/akgarg0472/urlshortener-payment-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

// EntitlementChecker decides whether a user may purchase a pack right now.
// Rules run in order and the first failing rule wins. The checker only reads;
// it never mutates any state.
type EntitlementChecker struct {
	cache      subscription.Cache
	repository repository.OrderRepository
}

func CreateEntitlementChecker(cache subscription.Cache, repository repository.OrderRepository) *EntitlementChecker {
	return &EntitlementChecker{
		cache:      cache,
		repository: repository,
	}
}

// CanCreateOrder returns nil when the purchase is allowed, or one of the
// entitlement sentinel errors from pkg/errs describing the rejection.
func (c *EntitlementChecker) CanCreateOrder(ctx context.Context, userID, packID string, amount int64) error {
	pack, err := c.cache.GetPack(ctx, packID)
	if err != nil {
		return errs.ErrInternalServer
	}
	if pack == nil {
		log.Ctx(ctx).Warn().Str("pack_id", packID).Msg("no subscription plan configured for pack")
		return errs.ErrInvalidPack
	}

	nowMillis := time.Now().UnixMilli()

	activeSubscription, err := c.cache.GetActiveSubscription(ctx, userID)
	if err != nil {
		return errs.ErrInternalServer
	}

	if activeSubscription != nil && activeSubscription.Active(nowMillis) {
		if activeSubscription.PackID == packID {
			log.Ctx(ctx).Warn().Str("pack_id", packID).Msg("pack already activated")
			return errs.ErrPackAlreadyActive
		}

		// A different active pack only blocks the purchase when it is a paid,
		// non-default one. Free/default packs never block upgrades.
		activePack, err := c.cache.GetPack(ctx, activeSubscription.PackID)
		if err != nil {
			return errs.ErrInternalServer
		}
		if activePack != nil && !activePack.DefaultPack && activePack.Price > 0 {
			log.Ctx(ctx).Warn().Str("pack_id", activeSubscription.PackID).Msg("paid subscription pack already activated")
			return errs.ErrPackAlreadyActive
		}
	}

	inFlight, err := c.repository.FindByUserAndStatusIn(ctx, userID, []domain.PaymentStatus{
		domain.PaymentStatusCreated,
		domain.PaymentStatusProcessing,
	})
	if err != nil {
		return errs.ErrInternalServer
	}
	if len(inFlight) > 0 {
		log.Ctx(ctx).Warn().Str("order_id", inFlight[0].ID).Msg("incomplete payment exists for user")
		return errs.ErrIncompletePayment
	}

	if amount != pack.Price {
		log.Ctx(ctx).Warn().Int64("amount", amount).Int64("price", pack.Price).Msg("requested amount does not match pack price")
		return errs.ErrAmountMismatch
	}

	return nil
}
