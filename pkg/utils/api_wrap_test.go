package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleServiceErrorGuestLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("trace_id", "t-1")

	HandleServiceError(c, ErrGuestLimitReached)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.RequireAuth)
	assert.Equal(t, "t-1", body.TraceID)
	assert.Equal(t, "error", body.Status)
}

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{ErrDocumentNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: boom", ErrDatabaseError), http.StatusInternalServerError},
		{ErrDatabaseUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: title too long", ErrInvalidInput), http.StatusBadRequest},
		{ErrEmailAlreadyExists, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", ErrUnexpectedBehaviorOfAI), http.StatusBadGateway},
		{fmt.Errorf("anything else"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		code, _ := ErrorStatus(tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}
