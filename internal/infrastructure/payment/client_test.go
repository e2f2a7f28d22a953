package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habita/internal/application/billing/gateway"
	"habita/internal/shared/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", 2*time.Second, logger.NewLogger())
}

func TestCreatePreference(t *testing.T) {
	var gotAuth, gotIdemKey string
	var gotBody map[string]interface{}

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/checkout/preferences", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotIdemKey = r.Header.Get("X-Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"pref_1","init_point":"https://pay.example/p/1"}`))
	}))

	pref, err := c.CreatePreference(context.Background(), gateway.PreferenceRequest{
		Title:             "Premium plan",
		AmountCents:       1000_00,
		Currency:          "USD",
		ExternalReference: "usr_a-tier_1000-1",
		NotificationURL:   "https://habita.example/api/payments/webhook",
		SuccessURL:        "https://habita.example/billing/success",
		FailureURL:        "https://habita.example/billing/failure",
	})

	require.NoError(t, err)
	assert.Equal(t, "pref_1", pref.ID)
	assert.Equal(t, "https://pay.example/p/1", pref.CheckoutURL)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotIdemKey)
	assert.Equal(t, "usr_a-tier_1000-1", gotBody["external_reference"])

	items, ok := gotBody["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.InDelta(t, 1000.0, item["unit_price"], 0.001)
}

func TestCreatePreference_ProviderError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid items"}`))
	}))

	_, err := c.CreatePreference(context.Background(), gateway.PreferenceRequest{Title: "x", Currency: "USD"})
	assert.Error(t, err)
}

func TestGetPayment(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/payments/123", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":123,"status":"approved","external_reference":"usr_a-tier_300-1","transaction_amount":300.0,"currency_id":"USD"}`))
	}))

	p, err := c.GetPayment(context.Background(), "123")

	require.NoError(t, err)
	assert.Equal(t, "123", p.ID)
	assert.True(t, p.Approved())
	assert.Equal(t, "usr_a-tier_300-1", p.ExternalReference)
}

func TestGetPayment_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetPayment(context.Background(), "missing")
	assert.Error(t, err)
}

func TestGetPayment_EmptyID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := c.GetPayment(context.Background(), "")
	assert.Error(t, err)
}
