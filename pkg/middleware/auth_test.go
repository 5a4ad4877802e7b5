package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fkhayef/splitledger/pkg/middleware"
)

type staticVerifier struct {
	token  string
	userID uuid.UUID
}

func (v staticVerifier) Verify(token string) (uuid.UUID, error) {
	if token != v.token {
		return uuid.Nil, errors.New("invalid token")
	}
	return v.userID, nil
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	verifier := staticVerifier{token: "good", userID: userID}

	type testCase struct {
		name       string
		header     string
		wantStatus int
	}

	tests := []testCase{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", wantStatus: http.StatusUnauthorized},
		{name: "no token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid", header: "Bearer good", wantStatus: http.StatusNoContent},
		{name: "lower case scheme", header: "bearer good", wantStatus: http.StatusNoContent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seen uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = middleware.MustUserID(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			middleware.Authenticate(verifier)(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusNoContent {
				assert.Equal(t, userID, seen)
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	_, ok := middleware.GetUserID(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)

	id := uuid.New()
	got, ok := middleware.GetUserID(middleware.WithUserID(t.Context(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
