package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/service"
)

// WebhookHandler relays payloads to the allow-listed case-management webhook.
type WebhookHandler struct {
	webhookService service.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(webhookService service.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// Forward handles POST /api/v1/webhooks/forward
// @Summary Forward a payload to the case-management webhook
// @Description Validates the target against the allow-list and POSTs the payload. The upstream status is reported in the body; a non-2xx upstream still answers 200.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param body body RelayRequestExample true "Target URL and payload"
// @Success 200 {object} domain.RelayResponse "Upstream was reached"
// @Failure 400 {object} domain.RelayResponse "URL rejected"
// @Failure 500 {object} domain.RelayResponse "Upstream unreachable"
// @Router /webhooks/forward [post]
func (h *WebhookHandler) Forward(c *gin.Context) {
	var req domain.RelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.RelayResponse{OK: false, Message: "Invalid request body"})
		return
	}

	resp, err := h.webhookService.Forward(c.Request.Context(), req)
	if err != nil {
		status, _, msg := MapDomainError(err)
		var rejection *service.RejectionError
		if errors.As(err, &rejection) {
			msg = rejection.Message
		}
		c.JSON(status, domain.RelayResponse{OK: false, Message: msg})
		return
	}
	c.JSON(http.StatusOK, resp)
}
