package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"volunteerhub/internal/config"
	"volunteerhub/internal/extraction"
	"volunteerhub/internal/port"
)

const (
	apiURL       = "https://ai.gateway.lovable.dev/v1/chat/completions"
	defaultModel = "google/gemini-2.5-flash"
	providerName = "gateway"
)

// Model implements port.LanguageModel against an OpenAI-compatible
// chat-completions gateway.
type Model struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewModel creates a gateway-backed model from a provider config.
// cfg.Endpoint overrides the default gateway URL.
func NewModel(cfg *config.ProviderConfig) *Model {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	return newModel(cfg, endpoint)
}

// NewModelWithEndpoint creates a model pointing at a custom API endpoint (for testing).
func NewModelWithEndpoint(cfg *config.ProviderConfig, endpoint string) *Model {
	return newModel(cfg, endpoint)
}

func newModel(cfg *config.ProviderConfig, endpoint string) *Model {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Model{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (m *Model) Complete(ctx context.Context, input port.CompletionInput) (*port.CompletionOutput, error) {
	reqBody := map[string]interface{}{
		"model": m.model,
		"messages": []map[string]interface{}{
			{"role": "system", "content": input.SystemPrompt},
			{"role": "user", "content": userContent(input)},
		},
		"response_format": map[string]interface{}{
			"type": "json_object",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, &extraction.UnavailableError{Provider: providerName, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &extraction.UnavailableError{Provider: providerName, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, extraction.ClassifyStatus(providerName, resp.StatusCode, respBody, resp.Header.Get("Retry-After"))
	}

	return parseResponse(respBody, m.model)
}

// userContent is plain text for notes, or a text block plus an image_url block.
func userContent(input port.CompletionInput) interface{} {
	if input.ImageDataURL == "" {
		return input.UserText
	}
	return []map[string]interface{}{
		{"type": "text", "text": input.UserText},
		{
			"type":      "image_url",
			"image_url": map[string]interface{}{"url": input.ImageDataURL},
		},
	}
}

// apiResponse models the chat-completions response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte, model string) (*port.CompletionOutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &extraction.OutputError{Cause: fmt.Errorf("unmarshaling response: %w", err), Raw: string(body)}
	}

	if len(resp.Choices) == 0 {
		return nil, &extraction.OutputError{Cause: errors.New("empty response from API: no choices"), Raw: string(body)}
	}

	if resp.Choices[0].FinishReason == "length" {
		return nil, &extraction.OutputError{Cause: errors.New("output truncated (finish_reason: length)"), Raw: string(body)}
	}

	return &port.CompletionOutput{
		Text:      resp.Choices[0].Message.Content,
		ModelUsed: model,
	}, nil
}
