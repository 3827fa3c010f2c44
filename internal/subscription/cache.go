package subscription

import (
	"context"

	"github.com/akgarg0472/urlshortener-payment-service/internal/domain"
)

// Cache exposes the subscription state owned by the subscription service.
// The payment core only reads through it; writes happen when the cache is
// refreshed from upstream.
type Cache interface {
	AddOrUpdateActiveSubscription(ctx context.Context, subscription domain.Subscription) error

	AddOrUpdatePack(ctx context.Context, pack domain.SubscriptionPack) error

	// GetActiveSubscription returns nil when the user has no subscription.
	GetActiveSubscription(ctx context.Context, userID string) (*domain.Subscription, error)

	// GetPack returns nil when no pack is configured with that id.
	GetPack(ctx context.Context, packID string) (*domain.SubscriptionPack, error)
}
