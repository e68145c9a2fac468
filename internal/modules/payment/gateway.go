package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// HTTPGateway talks to the Razorpay-compatible REST API. Credentials come
// from the environment, mirroring how the rest of the gateway adapter is
// configured.
type HTTPGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewHTTPGateway() *HTTPGateway {
	return &HTTPGateway{
		keyID:     os.Getenv("RAZORPAY_KEY_ID"),
		keySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		baseURL:   envOrDefault("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func (g *HTTPGateway) KeyID() string { return g.keyID }

// CreateOrder opens a gateway order for the amount, returned in the
// gateway's smallest currency unit.
func (g *HTTPGateway) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (string, error) {
	body := map[string]interface{}{
		"amount":   amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"currency": currency,
		"receipt":  receipt,
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := g.post(ctx, "/orders", body, &out); err != nil {
		return "", fmt.Errorf("gateway order create: %w", err)
	}
	return out.ID, nil
}

func (g *HTTPGateway) CreateRefund(ctx context.Context, gatewayPaymentID string, amount decimal.Decimal, reason string) (string, error) {
	body := map[string]interface{}{
		"amount": amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"notes":  map[string]string{"reason": reason},
	}
	var out struct {
		ID string `json:"id"`
	}
	path := fmt.Sprintf("/payments/%s/refund", gatewayPaymentID)
	if err := g.post(ctx, path, body, &out); err != nil {
		return "", fmt.Errorf("gateway refund: %w", err)
	}
	return out.ID, nil
}

func (g *HTTPGateway) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
