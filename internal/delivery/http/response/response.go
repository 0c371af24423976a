package response

import (
	"net/http"

	"job-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "RequestID"

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	Error     apperror.Kind     `json:"error"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Success sends {message, ...fields}
func Success(c *gin.Context, code int, message string, fields gin.H) {
	body := gin.H{"message": message}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(code, body)
}

// Error sends an error body with the status derived from the error kind
func Error(c *gin.Context, err *apperror.AppError) {
	c.JSON(StatusFor(err.Kind), ErrorBody{
		Error:     err.Kind,
		Message:   err.Message,
		Details:   err.Details,
		RequestID: c.GetString(RequestIDKey),
	})
}

// StatusFor maps an error kind to its HTTP status
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindUnauthorized, apperror.KindInvalidCredentials:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindNotFound, apperror.KindUserNotFound:
		return http.StatusNotFound
	case apperror.KindEmailInUse:
		return http.StatusConflict
	case apperror.KindRateLimited:
		return http.StatusTooManyRequests
	case apperror.KindInternal:
		return http.StatusInternalServerError
	case apperror.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
