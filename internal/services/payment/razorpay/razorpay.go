// Package razorpay implements the payment-provider client used to create
// orders and verify payment confirmation signatures.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type Config struct {
	// KeyID is the public api key id.
	KeyID string `json:"keyId" mapstructure:"key_id"`

	// KeySecret is the private api key, also used as the HMAC key
	// for signature verification.
	KeySecret string `json:"keySecret" mapstructure:"key_secret"`

	// BaseURL is the base url of the Razorpay backend.
	BaseURL string `json:"baseUrl" mapstructure:"base_url"`

	// Timeout bounds every outgoing provider request.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

type Client struct {
	keyID     string
	keySecret string
	baseURL   string

	// hc is the http client.
	hc *http.Client
}

// OrderRequest is the order creation payload. Amount is in the currency's
// minor unit (paise for INR).
type OrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Order is the provider's order object, returned verbatim to callers.
type Order struct {
	ID         string         `json:"id"`
	Entity     string         `json:"entity"`
	Amount     int64          `json:"amount"`
	AmountPaid int64          `json:"amount_paid"`
	AmountDue  int64          `json:"amount_due"`
	Currency   string         `json:"currency"`
	Receipt    string         `json:"receipt"`
	Status     string         `json:"status"`
	Attempts   int            `json:"attempts"`
	Notes      map[string]any `json:"notes,omitempty"`
	CreatedAt  int64          `json:"created_at"`
}

// New creates a new Razorpay client.
func New(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}

	return &Client{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   baseURL,

		// set http client with timeout.
		hc: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateOrder makes the order creation call against the Razorpay backend.
func (c *Client) CreateOrder(ctx context.Context, orderReq *OrderRequest) (*Order, error) {
	body, err := json.Marshal(orderReq)
	if err != nil {
		return nil, fmt.Errorf("createOrder: json.Marshal: %w", err)
	}

	_baseURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("createOrder: url.Parse: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", _baseURL.String(), "/v1/orders"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("createOrder: http.NewReq: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("createOrder: http.Do: %w", err)
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)

	if resp.StatusCode != http.StatusOK {
		var reply struct {
			Error struct {
				Code        string `json:"code"`
				Description string `json:"description"`
			} `json:"error"`
		}
		if err := dec.Decode(&reply); err != nil {
			return nil, fmt.Errorf("createOrder: http.StatusCode: %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("createOrder: reply.Status: %d, reply.Code: %v, reply.Description: %v",
			resp.StatusCode, reply.Error.Code, reply.Error.Description)
	}

	var order Order
	if err := dec.Decode(&order); err != nil {
		return nil, fmt.Errorf("createOrder: json.Decode: %w", err)
	}

	return &order, nil
}

// VerifySignature recomputes the confirmation signature over
// "orderID|paymentID" with the key secret and compares it against the
// supplied one in constant time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	expected := Hmac256([]byte(orderID+"|"+paymentID), []byte(c.keySecret))
	return hmac.Equal([]byte(signature), []byte(expected))
}

// Hmac256 is a function to generate HMAC256 hash.
func Hmac256(body, key []byte) string {
	hash := hmac.New(sha256.New, key)
	hash.Write(body)
	return hex.EncodeToString(hash.Sum(nil))
}
