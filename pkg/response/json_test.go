package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/splitledger/pkg/apperr"
	"github.com/fkhayef/splitledger/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()
	var body response.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestFromError(t *testing.T) {
	type testCase struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}

	tests := []testCase{
		{name: "validation", err: apperr.Validation("Description is required"), wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "not found", err: apperr.NotFound("Group not found"), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "authorization", err: apperr.Authorization("not a member"), wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "conflict wrapped", err: fmt.Errorf("leave: %w", apperr.Conflict("balance")), wantStatus: http.StatusConflict, wantCode: "CONFLICT"},
		{name: "unauthenticated", err: apperr.Unauthenticated("bad token"), wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "internal", err: errors.New("connection refused"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			response.FromError(rec, req, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			body := decode(t, rec)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.wantCode, body.Error.Code)
		})
	}
}

func TestFromErrorHidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	response.FromError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))

	body := decode(t, rec)
	assert.Equal(t, "Something went wrong", body.Error.Message)
}

func TestFromErrorIncludesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := apperr.Conflict("outstanding balance").WithDetails(map[string]any{"balance": "-5.00"})

	response.FromError(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

	body := decode(t, rec)
	assert.Equal(t, map[string]any{"balance": "-5.00"}, body.Error.Details)
}

func TestJSONWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	response.JSONWithMeta(rec, http.StatusOK, []string{"a"}, response.NewMeta(2, 20, 41))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.True(t, body.Success)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 3, body.Meta.TotalPages)
	assert.Equal(t, 41, body.Meta.Total)
}
