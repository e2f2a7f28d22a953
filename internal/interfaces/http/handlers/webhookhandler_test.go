package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habita/internal/application/billing/gateway"
	"habita/internal/application/billing/usecases"
	"habita/internal/infrastructure/email"
	"habita/internal/shared/logger"
)

type recordingGateway struct {
	gotPaymentID string
	getErr       error
}

func (g *recordingGateway) CreatePreference(_ context.Context, _ gateway.PreferenceRequest) (*gateway.Preference, error) {
	return nil, errors.New("not implemented")
}

func (g *recordingGateway) GetPayment(_ context.Context, paymentID string) (*gateway.Payment, error) {
	g.gotPaymentID = paymentID
	if g.getErr != nil {
		return nil, g.getErr
	}
	return nil, errors.New("no payment configured")
}

func newWebhookTestHandler(gw *recordingGateway) *WebhookHandler {
	log := logger.NewLogger()
	uc := usecases.NewHandlePaymentWebhookUseCase(
		gw, nil, nil, nil, nil, nil, email.NoopNotifier{}, 30, "USD", log)
	return NewWebhookHandler(uc, log)
}

func postWebhook(t *testing.T, h *WebhookHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.HandlePaymentNotification(c)
	return w
}

func TestHandlePaymentNotification_NumericPaymentID(t *testing.T) {
	gw := &recordingGateway{getErr: errors.New("provider unreachable")}
	h := newWebhookTestHandler(gw)

	// The provider sends data.id as a bare JSON number.
	w := postWebhook(t, h, `{"type":"payment","data":{"id":12345}}`)

	assert.Equal(t, "12345", gw.gotPaymentID)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandlePaymentNotification_StringPaymentID(t *testing.T) {
	gw := &recordingGateway{getErr: errors.New("provider unreachable")}
	h := newWebhookTestHandler(gw)

	w := postWebhook(t, h, `{"type":"payment","data":{"id":"67890"}}`)

	assert.Equal(t, "67890", gw.gotPaymentID)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandlePaymentNotification_FailureBodyCarriesError(t *testing.T) {
	gw := &recordingGateway{getErr: errors.New("provider unreachable")}
	h := newWebhookTestHandler(gw)

	w := postWebhook(t, h, `{"type":"payment","data":{"id":12345}}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestHandlePaymentNotification_UnparseableBodyIsAcknowledged(t *testing.T) {
	gw := &recordingGateway{}
	h := newWebhookTestHandler(gw)

	w := postWebhook(t, h, `{not json`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Empty(t, gw.gotPaymentID)
}

func TestHandlePaymentNotification_NonPaymentEventIsAcknowledged(t *testing.T) {
	gw := &recordingGateway{}
	h := newWebhookTestHandler(gw)

	w := postWebhook(t, h, `{"type":"merchant_order","data":{"id":555}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, gw.gotPaymentID)
}
