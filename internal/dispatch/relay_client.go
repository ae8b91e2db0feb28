// Package dispatch sends roster rows to the webhook relay, one request per row.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"volunteerhub/internal/domain"
)

// Forwarder delivers one payload to the webhook behind the relay.
type Forwarder interface {
	Forward(ctx context.Context, webhookURL string, payload domain.WebhookPayload) (*domain.RelayResponse, error)
}

// RejectedError is a relay refusal of the webhook URL.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

func (e *RejectedError) Is(target error) bool {
	return target == domain.ErrWebhookRejected
}

// RelayClient calls the relay endpoint over HTTP.
type RelayClient struct {
	relayURL string
	client   *http.Client
}

// NewRelayClient creates a RelayClient with the given timeout.
func NewRelayClient(relayURL string, timeout time.Duration) *RelayClient {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return NewRelayClientWithHTTP(relayURL, &http.Client{Timeout: timeout})
}

// NewRelayClientWithHTTP creates a RelayClient using the given HTTP client (for testing).
func NewRelayClientWithHTTP(relayURL string, client *http.Client) *RelayClient {
	return &RelayClient{relayURL: relayURL, client: client}
}

// Forward posts {webhookUrl, payload} to the relay. A 2xx relay answer is
// returned as-is even when the target itself failed; callers read OK.
func (c *RelayClient) Forward(ctx context.Context, webhookURL string, payload domain.WebhookPayload) (*domain.RelayResponse, error) {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}
	bodyBytes, err := json.Marshal(domain.RelayRequest{WebhookURL: webhookURL, Payload: rawPayload})
	if err != nil {
		return nil, fmt.Errorf("marshaling relay request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.relayURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling relay: %v", domain.ErrWebhookUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading relay response: %v", domain.ErrWebhookUpstream, err)
	}

	var out domain.RelayResponse
	decodeErr := json.Unmarshal(respBody, &out)

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		msg := out.Message
		if msg == "" {
			msg = "webhook URL rejected by relay"
		}
		return nil, &RejectedError{Message: msg}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg := out.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: relay returned %d: %s", domain.ErrWebhookUpstream, resp.StatusCode, msg)
	case decodeErr != nil:
		return nil, fmt.Errorf("%w: malformed relay response: %v", domain.ErrWebhookUpstream, decodeErr)
	}
	return &out, nil
}
