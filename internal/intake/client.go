// Package intake is the client side of the extraction endpoint: it validates
// user input, prepares notes or files, and maps endpoint failures to typed errors.
package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"volunteerhub/internal/config"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/extraction"
	"volunteerhub/internal/ingest"
)

const endpointName = "extraction endpoint"

// ValidationError names the user input that blocked a request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == domain.ErrMissingFields
}

// UnprocessableError is a 400 from the endpoint: the content could not be used.
type UnprocessableError struct {
	Message string
}

func (e *UnprocessableError) Error() string {
	return e.Message
}

func (e *UnprocessableError) Is(target error) bool {
	return target == domain.ErrUnprocessable
}

// Input is what the user supplied: an event name plus notes or a file
// reference (local path or s3://bucket/key).
type Input struct {
	EventName string
	Notes     string
	File      string
}

// Client calls the extraction endpoint.
type Client struct {
	extractURL string
	client     *http.Client
	ingestor   *ingest.Ingestor
}

// NewClient creates a Client from intake config.
func NewClient(cfg *config.IntakeConfig, ingestor *ingest.Ingestor) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 180 * time.Second
	}
	return NewClientWithHTTP(cfg.ExtractURL, &http.Client{Timeout: timeout}, ingestor)
}

// NewClientWithHTTP creates a Client using the given HTTP client (for testing).
func NewClientWithHTTP(extractURL string, client *http.Client, ingestor *ingest.Ingestor) *Client {
	return &Client{extractURL: extractURL, client: client, ingestor: ingestor}
}

// BuildRequest validates in and prepares the request body. It makes no call to
// the extraction endpoint; a file is read and converted locally.
func (c *Client) BuildRequest(ctx context.Context, in Input) (*domain.ExtractionRequest, error) {
	eventName := strings.TrimSpace(in.EventName)
	if eventName == "" {
		return nil, &ValidationError{Field: "eventName", Message: "Please enter an event name"}
	}

	notes := strings.TrimSpace(in.Notes)
	file := strings.TrimSpace(in.File)
	if notes == "" && file == "" {
		return nil, &ValidationError{Field: "meetingNotes", Message: "Please enter meeting notes or choose a file"}
	}

	req := &domain.ExtractionRequest{EventName: eventName}
	if file == "" {
		req.MeetingNotes = notes
		return req, nil
	}

	payload, err := c.ingestor.Load(ctx, file)
	if err != nil {
		return nil, err
	}
	req.FileType = payload.FileType
	if payload.IsImage() {
		req.ImageData = payload.ImageDataURL
	} else {
		req.MeetingNotes = payload.Text
	}
	return req, nil
}

// Extract posts req to the extraction endpoint. Failures are terminal for the
// call; nothing is retried.
func (c *Client) Extract(ctx context.Context, req *domain.ExtractionRequest) (*domain.ExtractionResult, error) {
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.extractURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	zap.L().Debug("intake.Client.Extract: calling extraction endpoint",
		zap.String("url", c.extractURL),
		zap.String("event", req.EventName),
		zap.Bool("image", req.ImageData != ""))

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &extraction.UnavailableError{Provider: endpointName, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &extraction.UnavailableError{Provider: endpointName, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode == http.StatusBadRequest {
		return nil, &UnprocessableError{Message: errorMessage(respBody, "Content could not be processed")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, extraction.ClassifyStatus(endpointName, resp.StatusCode, respBody, resp.Header.Get("Retry-After"))
	}

	var result struct {
		ExtractedData *[]domain.ExtractedPerson `json:"extractedData"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil || result.ExtractedData == nil {
		return nil, fmt.Errorf("%w: malformed extraction response", domain.ErrUpstreamFailure)
	}
	return &domain.ExtractionResult{ExtractedData: extraction.NormalizePeople(*result.ExtractedData)}, nil
}

// UserMessage is the notification shown for err.
func UserMessage(err error) string {
	var ve *ValidationError
	var ue *UnprocessableError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &ue):
		return ue.Message
	}
	switch domain.KindOf(err) {
	case domain.KindUpstreamRateLimited:
		return "Rate limit exceeded. Please try again in a few moments."
	case domain.KindUpstreamPaymentRequired:
		return "Credits required. Please add credits to your workspace."
	case domain.KindUpstreamUnprocessable:
		return "This file could not be processed. Try a different file or format."
	default:
		return "Failed to extract data. Please try again."
	}
}

func errorMessage(body []byte, fallback string) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return fallback
}
