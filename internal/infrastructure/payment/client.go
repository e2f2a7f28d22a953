// Package payment implements the payment provider gateway over its REST API.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"habita/internal/application/billing/gateway"
	"habita/internal/shared/logger"
)

const (
	preferencesPath = "/checkout/preferences"
	paymentsPath    = "/v1/payments/"

	// Maximum response body size accepted from the provider (256KB)
	maxResponseSize = 256 << 10
)

// Client talks to the payment provider REST API with a bearer access token.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      logger.Interface
}

// NewClient creates a provider client. timeout bounds every request; the
// webhook handler relies on it so a slow provider cannot hold the request
// open indefinitely.
func NewClient(baseURL, accessToken string, timeout time.Duration, log logger.Interface) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		accessToken: accessToken,
		logger:      log,
	}
}

var _ gateway.PaymentGateway = (*Client)(nil)

type preferenceRequestBody struct {
	Items             []preferenceItem  `json:"items"`
	ExternalReference string            `json:"external_reference"`
	NotificationURL   string            `json:"notification_url"`
	BackURLs          preferenceBackURL `json:"back_urls"`
	AutoReturn        string            `json:"auto_return"`
}

type preferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

type preferenceBackURL struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type preferenceResponseBody struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type paymentResponseBody struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	ExternalReference string      `json:"external_reference"`
	TransactionAmount float64     `json:"transaction_amount"`
	CurrencyID        string      `json:"currency_id"`
}

// CreatePreference creates a hosted checkout preference at the provider.
// Requests carry an X-Idempotency-Key so network retries cannot create
// duplicate preferences.
func (c *Client) CreatePreference(ctx context.Context, req gateway.PreferenceRequest) (*gateway.Preference, error) {
	body := preferenceRequestBody{
		Items: []preferenceItem{{
			Title:      req.Title,
			Quantity:   1,
			UnitPrice:  float64(req.AmountCents) / 100,
			CurrencyID: req.Currency,
		}},
		ExternalReference: req.ExternalReference,
		NotificationURL:   req.NotificationURL,
		BackURLs: preferenceBackURL{
			Success: req.SuccessURL,
			Failure: req.FailureURL,
			Pending: req.PendingURL,
		},
		AutoReturn: "approved",
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preference request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+preferencesPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build preference request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("preference request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read preference response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warnw("provider rejected preference request",
			"status", resp.StatusCode,
			"body", string(data),
		)
		return nil, fmt.Errorf("provider returned status %d creating preference", resp.StatusCode)
	}

	var parsed preferenceResponseBody
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode preference response: %w", err)
	}
	if parsed.ID == "" || parsed.InitPoint == "" {
		return nil, fmt.Errorf("provider preference response missing id or init point")
	}

	return &gateway.Preference{
		ID:          parsed.ID,
		CheckoutURL: parsed.InitPoint,
	}, nil
}

// GetPayment fetches the authoritative payment state from the provider.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*gateway.Payment, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("payment ID is required")
	}

	endpoint := c.baseURL + paymentsPath + url.PathEscape(paymentID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build payment request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment lookup failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read payment response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider returned status %d for payment %s", resp.StatusCode, paymentID)
	}

	var parsed paymentResponseBody
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}

	return &gateway.Payment{
		ID:                parsed.ID.String(),
		Status:            parsed.Status,
		ExternalReference: parsed.ExternalReference,
		TransactionAmount: parsed.TransactionAmount,
		CurrencyID:        parsed.CurrencyID,
	}, nil
}
