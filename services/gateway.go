package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"payment-module/errors"
	"payment-module/logger"

	"github.com/razorpay/razorpay-go"
)

// GatewayTimeout bounds every dispatch so a slow gateway cannot hold a
// request goroutine indefinitely.
const GatewayTimeout = 10 * time.Second

// CollectPayload is the payload signed by the token issuer and forwarded to
// the gateway.
type CollectPayload struct {
	CollectID   string  `json:"collect_id"`
	OrderAmount float64 `json:"order_amount"`
}

// DispatchResult is the gateway's answer to a collect request. RedirectURL
// is nil when the gateway did not return one, which is a valid outcome.
type DispatchResult struct {
	RedirectURL *string
}

// Dispatcher hands a signed collect request to an external payment gateway.
// Implementations do not retry; retry policy belongs to the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload CollectPayload, signedToken string) (*DispatchResult, error)
}

// HTTPGateway dispatches collect requests to the configured gateway endpoint
// over HTTP.
type HTTPGateway struct {
	url    string
	pgKey  string
	client *http.Client
}

// NewHTTPGateway creates a gateway client for the given endpoint.
func NewHTTPGateway(url, pgKey string) *HTTPGateway {
	return &HTTPGateway{
		url:   url,
		pgKey: pgKey,
		client: &http.Client{
			Timeout: GatewayTimeout,
		},
	}
}

type collectRequest struct {
	CollectPayload
	Token string `json:"token"`
}

type collectResponse struct {
	RedirectURL *string `json:"redirect_url"`
}

// Dispatch POSTs the signed payload to the gateway. Transport failures and
// non-2xx answers surface as an Unavailable error; a 2xx answer without a
// redirect_url yields a nil RedirectURL.
func (g *HTTPGateway) Dispatch(ctx context.Context, payload CollectPayload, signedToken string) (*DispatchResult, error) {
	body, err := json.Marshal(collectRequest{CollectPayload: payload, Token: signedToken})
	if err != nil {
		return nil, fmt.Errorf("error encoding gateway payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error building gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("pg_key", g.pgKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.E(errors.Unavailable, "payment gateway unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("Gateway returned status %d for collect_id=%s", resp.StatusCode, payload.CollectID)
		return nil, errors.E(errors.Unavailable,
			fmt.Sprintf("payment gateway returned status %d", resp.StatusCode))
	}

	// The gateway does not contractually echo anything back; a missing or
	// unparseable body just means no redirect URL.
	var gwResp collectResponse
	if err := json.NewDecoder(resp.Body).Decode(&gwResp); err != nil {
		return &DispatchResult{}, nil
	}

	return &DispatchResult{RedirectURL: gwResp.RedirectURL}, nil
}

// RazorpayGateway dispatches collect requests by creating a Razorpay order.
// Razorpay drives checkout client-side, so no redirect URL is returned.
type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway creates a dispatcher for the Razorpay API.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

// Dispatch creates a Razorpay order for the collect request. Amounts are
// converted to paise, Razorpay's minor unit.
func (g *RazorpayGateway) Dispatch(ctx context.Context, payload CollectPayload, signedToken string) (*DispatchResult, error) {
	data := map[string]interface{}{
		"amount":   int(payload.OrderAmount * 100),
		"currency": "INR",
		"receipt":  fmt.Sprintf("rcpt_%s", payload.CollectID),
		"notes": map[string]interface{}{
			"collect_id": payload.CollectID,
			"token":      signedToken,
		},
	}

	resp, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, errors.E(errors.Unavailable, "error creating razorpay order", err)
	}

	if id, ok := resp["id"].(string); ok {
		logger.Info("Razorpay order created: %s for collect_id=%s", id, payload.CollectID)
	}

	return &DispatchResult{}, nil
}
