package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"habita/internal/application/billing/usecases"
	"habita/internal/shared/logger"
)

// webhookNotification is the provider's notification body. Only the event
// type and payment ID hint are read; everything else is refetched from the
// provider API. The provider sends the id as a bare number or a string
// depending on the event source, so it binds as json.Number.
type webhookNotification struct {
	Type string `json:"type"`
	Data struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

// WebhookHandler receives payment provider notifications. The contract is
// strict: 200 tells the provider to stop redelivering, 500 asks for a retry.
type WebhookHandler struct {
	handleWebhookUC *usecases.HandlePaymentWebhookUseCase
	logger          logger.Interface
}

func NewWebhookHandler(handleWebhookUC *usecases.HandlePaymentWebhookUseCase, logger logger.Interface) *WebhookHandler {
	return &WebhookHandler{
		handleWebhookUC: handleWebhookUC,
		logger:          logger,
	}
}

func (h *WebhookHandler) HandlePaymentNotification(c *gin.Context) {
	var notification webhookNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		// An unparseable body can never be reconciled, so retries are
		// pointless. Acknowledge and keep the log line.
		h.logger.Warnw("unparseable webhook body", "error", err)
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	err := h.handleWebhookUC.Execute(c.Request.Context(), usecases.HandlePaymentWebhookCommand{
		EventType: notification.Type,
		PaymentID: notification.Data.ID.String(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process payment notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
