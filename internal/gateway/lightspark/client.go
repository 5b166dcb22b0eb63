package lightspark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lnpoker/lnpoker/internal/gateway"
)

// Config holds connection settings for the Lightspark API
type Config struct {
	BaseURL          string
	APITokenClientID string
	APITokenSecret   string
	RequestTimeout   time.Duration
}

// DefaultConfig returns default client configuration
func DefaultConfig() Config {
	return Config{
		RequestTimeout: 15 * time.Second,
	}
}

// Client is an HTTP client for the Lightspark invoice API
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a new Lightspark client
func New(cfg Config) *Client {
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

// NewWithHTTPClient creates a client with a custom http.Client (for testing)
func NewWithHTTPClient(cfg Config, httpClient *http.Client) *Client {
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Ensure Client implements the gateway interface
var _ gateway.Gateway = (*Client)(nil)

type createInvoiceRequest struct {
	AmountMsats int64  `json:"amount_msats"`
	Memo        string `json:"memo"`
}

type createInvoiceResponse struct {
	Data struct {
		ID                    string `json:"id"`
		EncodedPaymentRequest string `json:"encoded_payment_request"`
	} `json:"data"`
}

// CreateInvoice mints an invoice via the REST API
func (c *Client) CreateInvoice(ctx context.Context, amountMsats int64, memo string) (*gateway.Invoice, error) {
	if amountMsats <= 0 {
		return nil, gateway.ErrInvalidAmount
	}

	body, err := json.Marshal(createInvoiceRequest{
		AmountMsats: amountMsats,
		Memo:        memo,
	})
	if err != nil {
		return nil, err
	}

	url := c.cfg.BaseURL + "/invoices"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.APITokenClientID, c.cfg.APITokenSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, gateway.ErrInvalidAmount
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d", gateway.ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return nil, fmt.Errorf("%w: unexpected status %d", gateway.ErrUnavailable, resp.StatusCode)
	}

	var parsed createInvoiceResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed response", gateway.ErrUnavailable)
	}
	if parsed.Data.EncodedPaymentRequest == "" {
		return nil, fmt.Errorf("%w: empty payment request", gateway.ErrUnavailable)
	}

	return &gateway.Invoice{
		ID:                    parsed.Data.ID,
		EncodedPaymentRequest: parsed.Data.EncodedPaymentRequest,
	}, nil
}
