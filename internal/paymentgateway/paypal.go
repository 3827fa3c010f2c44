package paymentgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/akgarg0472/urlshortener-payment-service/pkg/errs"
	"github.com/akgarg0472/urlshortener-payment-service/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

const paypalGatewayName = "paypal"

type PaypalConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	ReturnURL    string
	CancelURL    string
}

// PaypalAdapter talks to the PayPal v2 checkout API. All outbound calls go
// through a shared circuit breaker so a degraded gateway fails fast instead of
// holding request workers.
type PaypalAdapter struct {
	config  PaypalConfig
	breaker *gobreaker.CircuitBreaker[[]byte]

	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func CreatePaypalAdapter(config PaypalConfig, breaker *gobreaker.CircuitBreaker[[]byte]) *PaypalAdapter {
	return &PaypalAdapter{
		config:  config,
		breaker: breaker,
	}
}

func (a *PaypalAdapter) Name() string {
	return paypalGatewayName
}

type paypalOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

func (a *PaypalAdapter) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]string{
					"currency_code": input.Currency,
					"value":         formatAmount(input.Amount),
				},
				"description": input.Description,
			},
		},
		"application_context": map[string]string{
			"return_url":  a.config.ReturnURL,
			"cancel_url":  a.config.CancelURL,
			"user_action": "PAY_NOW",
		},
	}

	body, err := a.post(ctx, "/v2/checkout/orders", payload, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	var order paypalOrderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("%w: failed to decode create order response: %v", errs.ErrPaymentGateway, err)
	}

	approvalURL := ""
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approvalURL = link.Href
			break
		}
	}

	if order.ID == "" || approvalURL == "" {
		log.Error().Str("component", "CreateOrder").Msg("paypal order created but no approval link found")
		return nil, fmt.Errorf("%w: order created without approval link", errs.ErrPaymentGateway)
	}

	return &CreateOrderResult{
		OrderID:     order.ID,
		ApprovalURL: approvalURL,
	}, nil
}

func (a *PaypalAdapter) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	body, err := a.post(ctx, fmt.Sprintf("/v2/checkout/orders/%s/capture", orderID), map[string]interface{}{}, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	var order paypalOrderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("%w: failed to decode capture response: %v", errs.ErrPaymentGateway, err)
	}

	return &CaptureResult{Status: order.Status}, nil
}

func (a *PaypalAdapter) post(ctx context.Context, path string, payload interface{}, wantStatus int) ([]byte, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	return a.breaker.Execute(func() ([]byte, error) {
		statusCode, body, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
			URL:    a.config.BaseURL + path,
			Method: http.MethodPost,
			Body:   jsonBody,
			Headers: map[string]string{
				"Content-Type":  "application/json",
				"Authorization": "Bearer " + token,
				"Prefer":        "return=representation",
			},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrPaymentGateway, err)
		}

		if statusCode != wantStatus {
			log.Error().Int("status", statusCode).Str("component", "post").Msg("paypal returned unexpected status")
			return nil, fmt.Errorf("%w: paypal returned status %d", errs.ErrPaymentGateway, statusCode)
		}

		return body, nil
	})
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (a *PaypalAdapter) token(ctx context.Context) (string, error) {
	a.tokenMu.Lock()
	defer a.tokenMu.Unlock()

	if a.accessToken != "" && time.Now().Before(a.tokenExpiry) {
		return a.accessToken, nil
	}

	statusCode, body, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
		URL:       a.config.BaseURL + "/v1/oauth2/token",
		Method:    http.MethodPost,
		BasicAuth: [2]string{a.config.ClientID, a.config.ClientSecret},
		Form:      url.Values{"grant_type": {"client_credentials"}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: token request failed: %v", errs.ErrPaymentGateway, err)
	}

	if statusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token request returned status %d", errs.ErrPaymentGateway, statusCode)
	}

	var token paypalTokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("%w: failed to decode token response: %v", errs.ErrPaymentGateway, err)
	}

	a.accessToken = token.AccessToken
	a.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn-60) * time.Second)

	return a.accessToken, nil
}

func formatAmount(minorUnits int64) string {
	return fmt.Sprintf("%d.%02d", minorUnits/100, minorUnits%100)
}
