package domain

import "errors"

var (
	ErrMissingFields       = errors.New("missing required fields")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrPaymentRequired     = errors.New("payment required")
	ErrUnprocessable       = errors.New("content could not be processed")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamFailure     = errors.New("upstream request failed")
	ErrInvalidModelOutput  = errors.New("invalid model output")
	ErrWebhookRejected     = errors.New("webhook url rejected")
	ErrWebhookUpstream     = errors.New("webhook target failed")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrNoModelConfigured   = errors.New("no model provider configured")
)

// ErrorKind is the user-facing classification of a failure.
type ErrorKind string

const (
	KindNone                    ErrorKind = ""
	KindValidation              ErrorKind = "validation"
	KindUpstreamRateLimited     ErrorKind = "upstream_rate_limited"
	KindUpstreamPaymentRequired ErrorKind = "upstream_payment_required"
	KindUpstreamUnprocessable   ErrorKind = "upstream_unprocessable"
	KindUpstreamGenericFailure  ErrorKind = "upstream_generic_failure"
	KindWebhookRejected         ErrorKind = "webhook_rejected"
	KindWebhookUpstreamFailure  ErrorKind = "webhook_upstream_failure"
)

// KindOf classifies err by walking its chain for a known sentinel.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMissingFields):
		return KindValidation
	case errors.Is(err, ErrRateLimited):
		return KindUpstreamRateLimited
	case errors.Is(err, ErrPaymentRequired):
		return KindUpstreamPaymentRequired
	case errors.Is(err, ErrUnprocessable),
		errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrUnsupportedFileType):
		return KindUpstreamUnprocessable
	case errors.Is(err, ErrWebhookRejected):
		return KindWebhookRejected
	case errors.Is(err, ErrWebhookUpstream):
		return KindWebhookUpstreamFailure
	default:
		return KindUpstreamGenericFailure
	}
}

// Recoverable reports whether the user can resolve k without outside action.
func (k ErrorKind) Recoverable() bool {
	switch k {
	case KindUpstreamPaymentRequired, KindWebhookRejected:
		return false
	default:
		return true
	}
}
