package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"habita/internal/infrastructure/config"
	"habita/internal/interfaces/http/handlers"
	"habita/internal/interfaces/http/middleware"
	"habita/internal/shared/logger"
)

const testOrigin = "https://app.habita.example"

func newPreflightRouter() *gin.Engine {
	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Server.AllowedOrigins = []string{testOrigin}

	log := logger.NewLogger()
	return NewRouter(Dependencies{
		Config:         cfg,
		AuthMiddleware: middleware.NewAuthMiddleware(nil, nil, log),
		WebhookHandler: &handlers.WebhookHandler{},
		AuthHandler:    &handlers.AuthHandler{},
		PlanHandler:    &handlers.PlanHandler{},
		BillingHandler: &handlers.BillingHandler{},
		ListingHandler: &handlers.ListingHandler{},
		AdminHandler:   &handlers.AdminHandler{},
		Logger:         log,
	})
}

func preflight(r *gin.Engine, path, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, path, nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_WebhookPreflightIsPermissive(t *testing.T) {
	r := newPreflightRouter()

	w := preflight(r, "/api/payments/webhook", "https://notifications.provider.example")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	allowHeaders := w.Header().Get("Access-Control-Allow-Headers")
	for _, name := range []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"} {
		assert.Contains(t, allowHeaders, name)
	}
}

func TestRouter_APIPreflightAnswersForAllowedOrigin(t *testing.T) {
	r := newPreflightRouter()

	w := preflight(r, "/api/billing/checkout", testOrigin)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_APIPreflightRejectsUnknownOrigin(t *testing.T) {
	r := newPreflightRouter()

	w := preflight(r, "/api/billing/checkout", "https://evil.example")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
