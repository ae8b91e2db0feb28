package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"volunteerhub/internal/config"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/handler"
	"volunteerhub/internal/service"
	"volunteerhub/mocks"
)

func postRelay(h *handler.WebhookHandler, body string) (*httptest.ResponseRecorder, domain.RelayResponse) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/webhooks/forward", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Forward(c)

	var resp domain.RelayResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestWebhookHandler_Forward_UpstreamNon2xxStillOK(t *testing.T) {
	svc := new(mocks.MockWebhookService)
	h := handler.NewWebhookHandler(svc)
	svc.On("Forward", mock.Anything, mock.MatchedBy(func(r domain.RelayRequest) bool {
		return r.WebhookURL == "https://plumber.gov.sg/webhooks/abc" && string(r.Payload) == `{"eventName":"Cleanup"}`
	})).Return(&domain.RelayResponse{OK: false, Status: 500, StatusText: "Internal Server Error", Body: "boom"}, nil)

	w, resp := postRelay(h, `{"webhookUrl":"https://plumber.gov.sg/webhooks/abc","payload":{"eventName":"Cleanup"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.OK)
	assert.Equal(t, 500, resp.Status)
	assert.Equal(t, "boom", resp.Body)
	svc.AssertExpectations(t)
}

func TestWebhookHandler_Forward_NetworkFailure(t *testing.T) {
	svc := new(mocks.MockWebhookService)
	h := handler.NewWebhookHandler(svc)
	svc.On("Forward", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: dial tcp: connection refused", domain.ErrWebhookUpstream))

	w, resp := postRelay(h, `{"webhookUrl":"https://plumber.gov.sg/webhooks/abc","payload":{}}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.Message)
}

func TestWebhookHandler_Forward_BadJSON(t *testing.T) {
	svc := new(mocks.MockWebhookService)
	h := handler.NewWebhookHandler(svc)

	w, resp := postRelay(h, `{"webhookUrl":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.OK)
	svc.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything)
}

// The real service guarantees no outbound call happens for rejected URLs.
func TestWebhookHandler_Forward_RejectedURLs(t *testing.T) {
	svc := service.NewWebhookService(&config.RelayConfig{
		AllowedHost: "plumber.gov.sg", PathPrefix: "/webhooks/", TimeoutSecs: 1, MaxBodyChars: 2000,
	}, nil)
	h := handler.NewWebhookHandler(svc)

	tests := []struct {
		url string
		msg string
	}{
		{"http://plumber.gov.sg/webhooks/x", "Only https://plumber.gov.sg/webhooks/... is allowed"},
		{"https://evil.example.com/webhooks/x", "Only https://plumber.gov.sg/webhooks/... is allowed"},
		{"", "Missing webhookUrl"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			body, err := json.Marshal(map[string]any{"webhookUrl": tt.url, "payload": map[string]string{}})
			require.NoError(t, err)

			w, resp := postRelay(h, string(body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, resp.OK)
			assert.Equal(t, tt.msg, resp.Message)
		})
	}
}
