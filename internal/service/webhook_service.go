package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"volunteerhub/internal/config"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/metrics"
)

// RejectionError explains why a webhook URL failed the allow-list.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

func (e *RejectionError) Is(target error) bool {
	return target == domain.ErrWebhookRejected
}

// WebhookService validates webhook targets and relays payloads to them.
type WebhookService interface {
	Validate(rawURL string) (*url.URL, error)
	Forward(ctx context.Context, req domain.RelayRequest) (*domain.RelayResponse, error)
}

type webhookService struct {
	allowedHost  string
	pathPrefix   string
	maxBodyChars int
	client       *http.Client
	metrics      *metrics.Metrics
}

// NewWebhookService creates a new WebhookService from relay config.
func NewWebhookService(cfg *config.RelayConfig, m *metrics.Metrics) WebhookService {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return NewWebhookServiceWithClient(cfg, &http.Client{Timeout: timeout}, m)
}

// NewWebhookServiceWithClient creates a WebhookService using the given HTTP client (for testing).
func NewWebhookServiceWithClient(cfg *config.RelayConfig, client *http.Client, m *metrics.Metrics) WebhookService {
	maxChars := cfg.MaxBodyChars
	if maxChars <= 0 {
		maxChars = 2000
	}
	return &webhookService{
		allowedHost:  cfg.AllowedHost,
		pathPrefix:   cfg.PathPrefix,
		maxBodyChars: maxChars,
		client:       client,
		metrics:      m,
	}
}

func (s *webhookService) Validate(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &RejectionError{Message: "Missing webhookUrl"}
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &RejectionError{Message: "Invalid webhook URL"}
	}
	if u.Scheme != "https" || !strings.EqualFold(u.Hostname(), s.allowedHost) ||
		!canonicalPath(u.Path) || !strings.HasPrefix(u.Path, s.pathPrefix) {
		return nil, &RejectionError{Message: fmt.Sprintf("Only https://%s%s... is allowed", s.allowedHost, s.pathPrefix)}
	}
	return u, nil
}

// canonicalPath reports whether p has no dot segments or empty segments. u.Path
// is already percent-decoded, so encoded dots are caught here too.
func canonicalPath(p string) bool {
	cleaned := path.Clean(p)
	if strings.HasSuffix(p, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned == p
}

func (s *webhookService) Forward(ctx context.Context, req domain.RelayRequest) (*domain.RelayResponse, error) {
	target, err := s.Validate(req.WebhookURL)
	if err != nil {
		s.metrics.ObserveRelay("rejected")
		zap.L().Warn("webhookService.Forward: rejected target",
			zap.String("url", req.WebhookURL), zap.Error(err))
		return nil, err
	}

	payload := bytes.TrimSpace(req.Payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		payload = []byte("{}")
	}
	if !json.Valid(payload) {
		s.metrics.ObserveRelay("rejected")
		return nil, &RejectionError{Message: "Invalid payload"}
	}

	zap.L().Info("webhookService.Forward: forwarding", zap.String("url", target.String()))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", domain.ErrWebhookUpstream, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.metrics.ObserveRelay("network_error")
		zap.L().Error("webhookService.Forward: upstream unreachable",
			zap.String("url", target.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrWebhookUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// a body read failure still reports the upstream status
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, int64(s.maxBodyChars)*4))

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	outcome := "forwarded"
	if !ok {
		outcome = "upstream_error"
		zap.L().Warn("webhookService.Forward: upstream returned non-2xx",
			zap.String("url", target.String()), zap.Int("status", resp.StatusCode))
	}
	s.metrics.ObserveRelay(outcome)

	return &domain.RelayResponse{
		OK:         ok,
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
		Body:       truncateRunes(string(raw), s.maxBodyChars),
	}, nil
}

func statusText(resp *http.Response) string {
	if text, found := strings.CutPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); found {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// truncateRunes keeps at most n characters of s.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
