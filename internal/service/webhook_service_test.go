package service_test

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteerhub/internal/config"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/service"
)

var relayCfg = &config.RelayConfig{
	AllowedHost:  "plumber.gov.sg",
	PathPrefix:   "/webhooks/",
	TimeoutSecs:  5,
	MaxBodyChars: 2000,
}

// pinnedClient sends every request to server, whatever host the URL names.
func pinnedClient(server *httptest.Server) *http.Client {
	addr := server.Listener.Addr().String()
	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
				return (&net.Dialer{}).DialContext(ctx, network, addr)
			},
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // test server
		},
	}
}

func TestWebhookValidate(t *testing.T) {
	svc := service.NewWebhookService(relayCfg, nil)
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"allowed", "https://plumber.gov.sg/webhooks/abc123", ""},
		{"allowed mixed case host", "https://Plumber.gov.sg/webhooks/abc123", ""},
		{"missing", "", "Missing webhookUrl"},
		{"garbage", "not a url", "Invalid webhook URL"},
		{"wrong scheme", "http://plumber.gov.sg/webhooks/x", "Only https://plumber.gov.sg/webhooks/... is allowed"},
		{"wrong host", "https://evil.example.com/webhooks/x", "Only https://plumber.gov.sg/webhooks/... is allowed"},
		{"suffix host", "https://plumber.gov.sg.evil.com/webhooks/x", "Only https://plumber.gov.sg/webhooks/... is allowed"},
		{"wrong path", "https://plumber.gov.sg/api/x", "Only https://plumber.gov.sg/webhooks/... is allowed"},
		{"allowed trailing slash", "https://plumber.gov.sg/webhooks/abc/", ""},
		{"dot segments", "https://plumber.gov.sg/webhooks/../admin/delete", "Only https://plumber.gov.sg/webhooks/... is allowed"},
		{"encoded dot segments", "https://plumber.gov.sg/webhooks/%2e%2e/admin", "Only https://plumber.gov.sg/webhooks/... is allowed"},
		{"encoded dot segments upper", "https://plumber.gov.sg/webhooks/%2E%2E/admin", "Only https://plumber.gov.sg/webhooks/... is allowed"},
		{"single dot segment", "https://plumber.gov.sg/webhooks/./abc", "Only https://plumber.gov.sg/webhooks/... is allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.url)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.True(t, errors.Is(err, domain.ErrWebhookRejected))
			assert.Equal(t, domain.KindWebhookRejected, domain.KindOf(err))
		})
	}
}

func TestForward_RejectedMakesNoCall(t *testing.T) {
	var calls int32
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()
	svc := service.NewWebhookServiceWithClient(relayCfg, pinnedClient(server), nil)

	for _, u := range []string{
		"http://plumber.gov.sg/webhooks/x",
		"https://evil.example.com/webhooks/x",
		"https://plumber.gov.sg/webhooks/../admin/delete",
		"https://plumber.gov.sg/webhooks/%2e%2e/admin",
	} {
		resp, err := svc.Forward(context.Background(), domain.RelayRequest{WebhookURL: u, Payload: json.RawMessage(`{}`)})
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, domain.ErrWebhookRejected))
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestForward_Success(t *testing.T) {
	payload := `{"eventName":"Cleanup","data":[{"name":"Sara","designation":"","identifier":"567A","highlight":"Helped move chairs","originalIndex":0}],"timestamp":"2026-10-17T08:00:00.000Z","triggered_from":"https://app.example"}`
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/webhooks/abc", r.URL.Path)
		assert.Equal(t, "plumber.gov.sg", r.Host)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, payload, string(body))
		_, _ = w.Write([]byte(`{"received":true}`))
	}))
	defer server.Close()
	svc := service.NewWebhookServiceWithClient(relayCfg, pinnedClient(server), nil)

	resp, err := svc.Forward(context.Background(), domain.RelayRequest{
		WebhookURL: "https://plumber.gov.sg/webhooks/abc",
		Payload:    json.RawMessage(payload),
	})

	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "OK", resp.StatusText)
	assert.Equal(t, `{"received":true}`, resp.Body)
}

func TestForward_UpstreamErrorTruncatedButNotFailed(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(strings.Repeat("x", 5000)))
	}))
	defer server.Close()
	svc := service.NewWebhookServiceWithClient(relayCfg, pinnedClient(server), nil)

	resp, err := svc.Forward(context.Background(), domain.RelayRequest{
		WebhookURL: "https://plumber.gov.sg/webhooks/abc",
		Payload:    json.RawMessage(`{}`),
	})

	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "Internal Server Error", resp.StatusText)
	assert.Len(t, resp.Body, 2000)
}

func TestForward_TruncatesByCharacter(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("é", 2100)))
	}))
	defer server.Close()
	svc := service.NewWebhookServiceWithClient(relayCfg, pinnedClient(server), nil)

	resp, err := svc.Forward(context.Background(), domain.RelayRequest{WebhookURL: "https://plumber.gov.sg/webhooks/abc"})

	require.NoError(t, err)
	assert.Equal(t, 2000, len([]rune(resp.Body)))
}

func TestForward_NullPayloadSendsEmptyObject(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "{}", string(body))
	}))
	defer server.Close()
	svc := service.NewWebhookServiceWithClient(relayCfg, pinnedClient(server), nil)

	for _, p := range []json.RawMessage{nil, json.RawMessage("null")} {
		resp, err := svc.Forward(context.Background(), domain.RelayRequest{WebhookURL: "https://plumber.gov.sg/webhooks/abc", Payload: p})
		require.NoError(t, err)
		assert.True(t, resp.OK)
	}
}

func TestForward_NetworkFailure(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := pinnedClient(server)
	server.Close()
	svc := service.NewWebhookServiceWithClient(relayCfg, client, nil)

	resp, err := svc.Forward(context.Background(), domain.RelayRequest{WebhookURL: "https://plumber.gov.sg/webhooks/abc", Payload: json.RawMessage(`{}`)})

	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, domain.ErrWebhookUpstream))
	assert.Equal(t, domain.KindWebhookUpstreamFailure, domain.KindOf(err))
}
