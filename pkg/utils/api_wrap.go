package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status    string      `json:"status"`
	Code      int         `json:"code"`
	Message   string      `json:"message,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Retryable bool        `json:"retryable,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// TraceID returns the id set by the trace middleware, or "" outside of it.
func TraceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: TraceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: TraceID(c),
	})
}

// ErrorStatus maps a service error onto an HTTP status and a user-facing message.
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, "Invalid trip request"
	case errors.Is(err, ErrMissingVariable):
		return http.StatusInternalServerError, "Internal server error"
	case errors.Is(err, ErrCompletionTransport):
		return http.StatusBadGateway, "The itinerary service is unavailable, please try again"
	case errors.Is(err, ErrMalformedModelOutput):
		return http.StatusBadGateway, "The itinerary service returned an unusable answer"
	case errors.Is(err, ErrLocationSearchFailed):
		return http.StatusBadGateway, "Location search failed, please try again"
	case errors.Is(err, ErrLocationSearchDisabled):
		return http.StatusServiceUnavailable, "Location search is not available"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func HandleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	code, message := ErrorStatus(err)
	if code >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("trace_id", TraceID(c)),
			zap.Int("status", code),
			zap.Error(err))
	}
	c.JSON(code, APIResponse{
		Status:    "error",
		Code:      code,
		Message:   message,
		TraceID:   TraceID(c),
		Retryable: IsRetryable(err),
	})
}
