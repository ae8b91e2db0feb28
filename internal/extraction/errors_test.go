package extraction_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/extraction"
)

func TestRateLimitError_ErrorString(t *testing.T) {
	rlErr := extraction.NewRateLimitError("gateway", fmt.Errorf("rate limited"), 30)

	assert.Contains(t, rlErr.Error(), "gateway")
	assert.Contains(t, rlErr.Error(), "rate limited")
	assert.Contains(t, rlErr.Error(), "30s")
}

func TestRateLimitError_ErrorsAs(t *testing.T) {
	rlErr := extraction.NewRateLimitError("claude", fmt.Errorf("rate limited"), 30)
	wrapped := fmt.Errorf("extract failed: %w", rlErr)

	var target *extraction.RateLimitError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "claude", target.Provider)
	assert.Equal(t, 30*time.Second, target.RetryAfter)
	assert.True(t, errors.Is(wrapped, domain.ErrRateLimited))
}

func TestNewRateLimitError_DefaultRetryAfter(t *testing.T) {
	rlErr := extraction.NewRateLimitError("gateway", fmt.Errorf("err"), 0)

	assert.Equal(t, 60*time.Second, rlErr.RetryAfter)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, extraction.ParseRetryAfterHeader(""))
	assert.Equal(t, 30, extraction.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, extraction.ParseRetryAfterHeader("invalid"))
	assert.Equal(t, 120, extraction.ParseRetryAfterHeader("120"))
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header string
		kind   domain.ErrorKind
	}{
		{"429 with header", 429, "30", domain.KindUpstreamRateLimited},
		{"402", 402, "", domain.KindUpstreamPaymentRequired},
		{"500", 500, "", domain.KindUpstreamGenericFailure},
		{"400", 400, "", domain.KindUpstreamGenericFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := extraction.ClassifyStatus("gateway", tt.status, []byte("boom"), tt.header)
			assert.Equal(t, tt.kind, domain.KindOf(err))
		})
	}
}

func TestClassifyStatus_RetryAfterCarried(t *testing.T) {
	err := extraction.ClassifyStatus("gateway", 429, nil, "30")

	var rlErr *extraction.RateLimitError
	assert.True(t, errors.As(err, &rlErr))
	assert.Equal(t, 30*time.Second, rlErr.RetryAfter)
}

func TestStatusError_CarriesCode(t *testing.T) {
	err := extraction.ClassifyStatus("gateway", 503, []byte("down"), "")

	var stErr *extraction.StatusError
	assert.True(t, errors.As(err, &stErr))
	assert.Equal(t, 503, stErr.StatusCode)
	assert.True(t, errors.Is(err, domain.ErrUpstreamFailure))
	assert.Contains(t, err.Error(), "503")
}

func TestUnavailableError_MatchesSentinel(t *testing.T) {
	err := &extraction.UnavailableError{Provider: "gateway", Err: errors.New("dial tcp: refused")}

	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
	assert.Contains(t, err.Error(), "dial tcp")
}
