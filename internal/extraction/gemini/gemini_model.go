package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"volunteerhub/internal/config"
	"volunteerhub/internal/extraction"
	"volunteerhub/internal/port"
)

const providerName = "gemini"

// Model implements port.LanguageModel using the Gemini SDK.
type Model struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewModel creates a Gemini-backed model. The SDK client is created eagerly so
// a bad key or endpoint fails at startup.
func NewModel(ctx context.Context, cfg *config.ProviderConfig) (*Model, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.5-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Model{client: client, model: model, timeout: timeout}, nil
}

func (m *Model) Complete(ctx context.Context, input port.CompletionInput) (*port.CompletionOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	gm := m.client.GenerativeModel(m.model)
	gm.SetTemperature(0.1)
	gm.ResponseMIMEType = "application/json"
	gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(input.SystemPrompt)}}

	var parts []genai.Part
	if input.ImageDataURL != "" {
		mediaType, data, err := extraction.DecodeDataURL(input.ImageDataURL)
		if err != nil {
			return nil, err
		}
		parts = append(parts, genai.Blob{MIMEType: mediaType, Data: data})
	}
	parts = append(parts, genai.Text(input.UserText))

	resp, err := gm.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, classifyError(err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, &extraction.OutputError{Cause: err}
	}
	return &port.CompletionOutput{Text: text, ModelUsed: m.model}, nil
}

// Close releases resources held by the SDK client.
func (m *Model) Close() error {
	if m.client != nil {
		return m.client.Close()
	}
	return nil
}

// classifyError maps SDK errors onto the typed upstream errors.
func classifyError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return extraction.NewRateLimitError(providerName, err, 0)
		case http.StatusPaymentRequired:
			return &extraction.PaymentRequiredError{Provider: providerName, Err: err}
		default:
			return &extraction.StatusError{Provider: providerName, StatusCode: apiErr.Code, Body: apiErr.Message}
		}
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.ResourceExhausted:
			return extraction.NewRateLimitError(providerName, err, 0)
		case codes.Unavailable, codes.DeadlineExceeded:
			return &extraction.UnavailableError{Provider: providerName, Err: err}
		case codes.InvalidArgument:
			return &extraction.StatusError{Provider: providerName, StatusCode: http.StatusBadRequest, Body: st.Message()}
		case codes.PermissionDenied, codes.Unauthenticated:
			return &extraction.StatusError{Provider: providerName, StatusCode: http.StatusForbidden, Body: st.Message()}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &extraction.UnavailableError{Provider: providerName, Err: err}
	}
	return &extraction.UnavailableError{Provider: providerName, Err: fmt.Errorf("failed to generate content: %w", err)}
}

// extractTextFromResponse joins the text parts of the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
