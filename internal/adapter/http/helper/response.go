package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	. "taskmanager/internal/adapter/http/validation"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/model/response"
	"taskmanager/pkg/logger"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
)

func SendError(c *gin.Context, statusCode int, code string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.AbortWithStatusJSON(statusCode, errorResponse)
}

func sendSingle(c *gin.Context, statusCode int, code, field, message string) {
	SendError(c, statusCode, code, []response.ValidationError{{Field: field, Message: message}})
}

func SendValidationError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, CodeValidation, FormatValidationErrors(err))
}

func SendInternalError(c *gin.Context, message string, details ...any) {
	SendError(c, http.StatusInternalServerError, CodeInternal, []response.ValidationError{
		{Field: "server", Message: message},
	}, details...)
}

func SendUnauthorizedError(c *gin.Context, message string) {
	sendSingle(c, http.StatusUnauthorized, CodeUnauthorized, "auth", message)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	sendSingle(c, http.StatusBadRequest, CodeBadRequest, field, message)
}

func SendNotFoundError(c *gin.Context, message string) {
	sendSingle(c, http.StatusNotFound, CodeNotFound, "resource", message)
}

func SendConflictError(c *gin.Context, field string, message string) {
	sendSingle(c, http.StatusConflict, CodeConflict, field, message)
}

// SendDomainError maps core errors onto HTTP responses. Anything unmapped is
// logged and reported as a 500 without leaking the cause.
func SendDomainError(c *gin.Context, err error, log *logger.Logger) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		SendNotFoundError(c, "Task not found")
	case errors.Is(err, domain.ErrDuplicateIdentity):
		SendConflictError(c, "email", "Email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		SendUnauthorizedError(c, "Invalid credentials")
	case errors.Is(err, domain.ErrUnauthenticated):
		SendUnauthorizedError(c, "Unauthorized")
	case errors.Is(err, domain.ErrInvalidStatus):
		SendError(c, http.StatusBadRequest, CodeValidation, []response.ValidationError{
			{Field: "status", Message: "status must be one of: pending completed"},
		})
	default:
		log.Ctx(c.Request.Context()).Error("Unhandled error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))

		SendInternalError(c, "Internal server error")
	}
}
