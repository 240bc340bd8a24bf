package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/model/response"
	"taskmanager/pkg/logger"
)

func sendDomainError(err error) (*httptest.ResponseRecorder, response.ErrorResponse) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/tasks/1", nil)

	SendDomainError(c, err, logger.NewNop())

	var body response.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)

	return w, body
}

func TestSendDomainError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, CodeNotFound, "Task not found"},
		{"wrapped not found", fmt.Errorf("get: %w", domain.ErrNotFound), http.StatusNotFound, CodeNotFound, "Task not found"},
		{"duplicate", domain.ErrDuplicateIdentity, http.StatusConflict, CodeConflict, "Email already registered"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, CodeUnauthorized, "Invalid credentials"},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthorized, "Unauthorized"},
		{"status", domain.ErrInvalidStatus, http.StatusBadRequest, CodeValidation, "status must be one of: pending completed"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, CodeInternal, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := sendDomainError(tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, body.Error.Code)
			assert.Equal(t, tc.message, body.Error.Errors[0].Message)
			assert.NotContains(t, w.Body.String(), "disk on fire")
		})
	}
}
