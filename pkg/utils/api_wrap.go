package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status      string      `json:"status"`
	Code        int         `json:"code"`
	Message     string      `json:"message,omitempty"`
	TraceID     string      `json:"trace_id,omitempty"`
	Data        interface{} `json:"data,omitempty"`
	RequireAuth bool        `json:"requireAuth,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondStatus(c, http.StatusOK, data, message)
}

func RespondStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	code, message := ErrorStatus(err)
	traceID := c.GetString("trace_id")

	switch {
	case code == http.StatusBadGateway:
		zap.L().Warn("language model failure", zap.Error(err), zap.String("trace_id", traceID))
	case code >= http.StatusInternalServerError && code != http.StatusServiceUnavailable:
		zap.L().Error("unexpected error", zap.Error(err), zap.String("trace_id", traceID))
	}

	c.JSON(code, APIResponse{
		Status:      "error",
		Code:        code,
		Message:     message,
		TraceID:     traceID,
		RequireAuth: errors.Is(err, ErrGuestLimitReached),
	})
}

// ErrorStatus maps a service error to its HTTP status and client message.
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrGuestLimitReached):
		return http.StatusForbidden, "Guest limit reached, please sign up to continue"
	case errors.Is(err, ErrDocumentNotFound):
		return http.StatusNotFound, "Document not found"
	case errors.Is(err, ErrFolderNotFound):
		return http.StatusNotFound, "Folder not found"
	case errors.Is(err, ErrPersonaNotFound):
		return http.StatusNotFound, "Persona not found"
	case errors.Is(err, ErrKeyMessageNotFound):
		return http.StatusNotFound, "Key message not found"
	case errors.Is(err, ErrAccountNotFound):
		return http.StatusNotFound, "Account not found"
	case errors.Is(err, ErrExportNotFound):
		return http.StatusNotFound, "Export not found"
	case errors.Is(err, ErrInvalidPage):
		return http.StatusBadRequest, "Page must be greater than 0"
	case errors.Is(err, ErrInvalidPageSize):
		return http.StatusBadRequest, "Page size must be between 1 and 100"
	case errors.Is(err, ErrSelectionNotFound):
		return http.StatusBadRequest, "Selection not found in content"
	case errors.Is(err, ErrUnsupportedFormat):
		return http.StatusBadRequest, "Unsupported export format"
	case errors.Is(err, ErrUnknownPlan):
		return http.StatusBadRequest, "Unknown plan"
	case errors.Is(err, ErrNoBillingCustomer):
		return http.StatusBadRequest, "No billing account found for this user"
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, ErrEmailAlreadyExists):
		return http.StatusConflict, "Email already exists"
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, "Resource already exists"
	case errors.Is(err, ErrDatabaseUnavailable):
		return http.StatusServiceUnavailable, "Storage is not configured on this server"
	case errors.Is(err, ErrPaymentsUnavailable):
		return http.StatusServiceUnavailable, "Payments are not configured on this server"
	case errors.Is(err, ErrUnexpectedBehaviorOfAI):
		return http.StatusBadGateway, "The writing assistant failed to respond, please try again"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
