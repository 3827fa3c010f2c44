package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/akgarg0472/urlshortener-payment-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	subscriptionKeyPrefix = "subscription:"
	packKeyPrefix         = "subscription:pack:"

	subscriptionTTL = 30 * time.Minute
)

// RedisCache is the production cache implementation, shared with the
// subscription service through a common Redis instance.
type RedisCache struct {
	client *redis.Client
}

func CreateRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

func (c *RedisCache) AddOrUpdateActiveSubscription(ctx context.Context, subscription domain.Subscription) error {
	payload, err := json.Marshal(subscription)
	if err != nil {
		return fmt.Errorf("failed to marshal subscription: %w", err)
	}

	err = c.client.Set(ctx, subscriptionKeyPrefix+subscription.UserID, payload, subscriptionTTL).Err()
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrUpdateActiveSubscription").Msg("")
		return err
	}

	return nil
}

func (c *RedisCache) AddOrUpdatePack(ctx context.Context, pack domain.SubscriptionPack) error {
	payload, err := json.Marshal(pack)
	if err != nil {
		return fmt.Errorf("failed to marshal subscription pack: %w", err)
	}

	err = c.client.Set(ctx, packKeyPrefix+pack.ID, payload, 0).Err()
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrUpdatePack").Msg("")
		return err
	}

	return nil
}

func (c *RedisCache) GetActiveSubscription(ctx context.Context, userID string) (*domain.Subscription, error) {
	payload, err := c.client.Get(ctx, subscriptionKeyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		log.Error().Err(err).Str("component", "GetActiveSubscription").Msg("")
		return nil, err
	}

	var subscription domain.Subscription
	if err := json.Unmarshal(payload, &subscription); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subscription: %w", err)
	}

	return &subscription, nil
}

func (c *RedisCache) GetPack(ctx context.Context, packID string) (*domain.SubscriptionPack, error) {
	payload, err := c.client.Get(ctx, packKeyPrefix+packID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		log.Error().Err(err).Str("component", "GetPack").Msg("")
		return nil, err
	}

	var pack domain.SubscriptionPack
	if err := json.Unmarshal(payload, &pack); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subscription pack: %w", err)
	}

	return &pack, nil
}
