package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/akgarg0472/urlshortener-payment-service/internal/domain"
	"github.com/akgarg0472/urlshortener-payment-service/pkg/httpclient"
	"github.com/rs/zerolog/log"
)

// PackLoader pulls pack definitions from the subscription service and pushes
// them into the cache. Scheduled from main so the entitlement checker always
// sees current prices.
type PackLoader struct {
	cache                   Cache
	subscriptionServiceHost string
}

func CreatePackLoader(cache Cache, subscriptionServiceHost string) *PackLoader {
	return &PackLoader{
		cache:                   cache,
		subscriptionServiceHost: subscriptionServiceHost,
	}
}

type packListResponse struct {
	Packs []domain.SubscriptionPack `json:"packs"`
}

func (l *PackLoader) RefreshPacks() {
	ctx := context.Background()

	statusCode, body, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/api/v1/subscriptions/packs", l.subscriptionServiceHost),
		Method: http.MethodGet,
	})
	if err != nil {
		log.Error().Err(err).Str("component", "RefreshPacks").Msg("")
		return
	}

	if statusCode != http.StatusOK {
		log.Error().Int("status", statusCode).Str("component", "RefreshPacks").Msg("subscription service returned non-OK status")
		return
	}

	var response packListResponse
	if err := json.Unmarshal(body, &response); err != nil {
		log.Error().Err(err).Str("component", "RefreshPacks").Msg("")
		return
	}

	for _, pack := range response.Packs {
		if err := l.cache.AddOrUpdatePack(ctx, pack); err != nil {
			log.Error().Err(err).Str("component", "RefreshPacks").Str("pack_id", pack.ID).Msg("")
		}
	}

	log.Info().Int("packs", len(response.Packs)).Str("component", "RefreshPacks").Msg("subscription packs refreshed")
}
