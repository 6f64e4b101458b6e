package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CheckoutRequest asks the provider for a hosted checkout session.
type CheckoutRequest struct {
	ReferenceID   string         `json:"reference_id"`
	Amount        int            `json:"amount"`
	Currency      string         `json:"currency"`
	CustomerEmail string         `json:"customer_email"`
	CallbackURL   string         `json:"callback_url"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

type Client struct {
	endpoint string
	apiKey   string
	httpc    *http.Client
}

func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpc:    &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateCheckoutSession returns the hosted checkout URL for the request.
func (c *Client) CreateCheckoutSession(ctx context.Context, in CheckoutRequest) (string, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	// Basic Auth: username = secret key, password empty
	req.SetBasicAuth(c.apiKey, "")

	res, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("create checkout session failed: %s (%d)", string(raw), res.StatusCode)
	}

	var out checkoutResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("parse checkout response: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("checkout response missing url")
	}
	return out.URL, nil
}
