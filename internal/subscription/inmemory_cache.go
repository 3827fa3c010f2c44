package subscription

import (
	"context"
	"sync"

	"github.com/akgarg0472/urlshortener-payment-service/internal/domain"
)

// InMemoryCache backs the dev profile and tests.
type InMemoryCache struct {
	mu            sync.RWMutex
	subscriptions map[string]domain.Subscription
	packs         map[string]domain.SubscriptionPack
}

func CreateInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		subscriptions: make(map[string]domain.Subscription),
		packs:         make(map[string]domain.SubscriptionPack),
	}
}

func (c *InMemoryCache) AddOrUpdateActiveSubscription(_ context.Context, subscription domain.Subscription) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subscriptions[subscription.UserID] = subscription
	return nil
}

func (c *InMemoryCache) AddOrUpdatePack(_ context.Context, pack domain.SubscriptionPack) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.packs[pack.ID] = pack
	return nil
}

func (c *InMemoryCache) GetActiveSubscription(_ context.Context, userID string) (*domain.Subscription, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	subscription, exists := c.subscriptions[userID]
	if !exists {
		return nil, nil
	}

	return &subscription, nil
}

func (c *InMemoryCache) GetPack(_ context.Context, packID string) (*domain.SubscriptionPack, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pack, exists := c.packs[packID]
	if !exists {
		return nil, nil
	}

	return &pack, nil
}
