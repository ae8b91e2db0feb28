package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"volunteerhub/internal/domain"
)

// ErrorResponse is the body of every failed extraction-family call.
type ErrorResponse struct {
	Error string `json:"error" example:"Rate limit exceeded. Please try again in a few moments."`
	Code  string `json:"code" example:"RATE_LIMITED"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, ErrorResponse{Error: msg, Code: code})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest, "MISSING_FIELDS", "Missing required fields"
	case domain.KindUpstreamRateLimited:
		return http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded. Please try again in a few moments."
	case domain.KindUpstreamPaymentRequired:
		return http.StatusPaymentRequired, "PAYMENT_REQUIRED", "Credits required. Please add credits to your workspace."
	case domain.KindUpstreamUnprocessable:
		return http.StatusBadRequest, "UNPROCESSABLE", unprocessableMessage(err)
	case domain.KindWebhookRejected:
		return http.StatusBadRequest, "WEBHOOK_REJECTED", err.Error()
	case domain.KindWebhookUpstreamFailure:
		return http.StatusInternalServerError, "WEBHOOK_FAILED", "Failed to forward webhook"
	default:
		return http.StatusInternalServerError, "EXTRACTION_FAILED", "Failed to extract data"
	}
}

func unprocessableMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrFileTooLarge):
		return "File exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return "Unsupported file type"
	default:
		return "Content could not be processed"
	}
}

// HandleError maps a domain error, logs it once, and sends the error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	requestID, _ := c.Get("request_id")
	fields := []zap.Field{
		zap.Any("request_id", requestID),
		zap.String("path", c.FullPath()),
		zap.String("code", code),
		zap.Error(err),
	}
	if status >= 500 {
		zap.L().Error("handler.HandleError: request failed", fields...)
	} else {
		zap.L().Warn("handler.HandleError: request rejected", fields...)
	}
	RespondError(c, status, code, msg)
}
