package extraction

import (
	"fmt"
	"strconv"
	"time"

	"volunteerhub/internal/domain"
)

// RateLimitError indicates a model provider returned HTTP 429.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

func (e *RateLimitError) Is(target error) bool {
	return target == domain.ErrRateLimited
}

// NewRateLimitError creates a RateLimitError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 60
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Provider:   provider,
	}
}

// PaymentRequiredError indicates a model provider returned HTTP 402.
type PaymentRequiredError struct {
	Err      error
	Provider string
}

func (e *PaymentRequiredError) Error() string {
	return fmt.Sprintf("%s payment required: %v", e.Provider, e.Err)
}

func (e *PaymentRequiredError) Unwrap() error {
	return e.Err
}

func (e *PaymentRequiredError) Is(target error) bool {
	return target == domain.ErrPaymentRequired
}

// StatusError is any other non-2xx answer from a model provider.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, truncate(e.Body, 500))
}

func (e *StatusError) Is(target error) bool {
	return target == domain.ErrUpstreamFailure
}

// UnavailableError wraps a transport failure (dial, TLS, timeout) reaching a provider.
type UnavailableError struct {
	Err      error
	Provider string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("calling %s API: %v", e.Provider, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func (e *UnavailableError) Is(target error) bool {
	return target == domain.ErrUpstreamUnavailable
}

// ClassifyStatus turns a non-2xx provider answer into the matching typed error.
func ClassifyStatus(provider string, status int, body []byte, retryAfterHeader string) error {
	baseErr := fmt.Errorf("%s API error (status %d): %s", provider, status, truncate(string(body), 500))
	switch status {
	case 429:
		return NewRateLimitError(provider, baseErr, ParseRetryAfterHeader(retryAfterHeader))
	case 402:
		return &PaymentRequiredError{Provider: provider, Err: baseErr}
	default:
		return &StatusError{Provider: provider, StatusCode: status, Body: string(body)}
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
