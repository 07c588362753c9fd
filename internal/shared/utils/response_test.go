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

	"redsys/internal/shared/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorResponseWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantType string
	}{
		{name: "invalid transition", err: errors.NewInvalidTransitionError("nope"), wantCode: http.StatusConflict, wantType: "invalid_transition"},
		{name: "forbidden", err: errors.NewForbiddenError("no"), wantCode: http.StatusForbidden, wantType: "forbidden"},
		{name: "wrapped not found", err: fmt.Errorf("load: %w", errors.NewNotFoundError("ticket 3 not found")), wantCode: http.StatusNotFound, wantType: "not_found"},
		{name: "invariant", err: errors.NewInvariantViolationError("no versions"), wantCode: http.StatusInternalServerError, wantType: "invariant_violation"},
		{name: "plain error", err: fmt.Errorf("db exploded"), wantCode: http.StatusInternalServerError, wantType: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			ErrorResponseWithError(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantType, resp.Error.Type)
			assert.NotContains(t, resp.Error.Message, "db exploded")
		})
	}
}

func TestListSuccessResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ListSuccessResponse(c, []int{1, 2}, 45, Pagination{Page: 2, PageSize: 20})

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data ListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(45), body.Data.Total)
	assert.Equal(t, 3, body.Data.TotalPages)
	assert.Equal(t, 2, body.Data.Page)
}
