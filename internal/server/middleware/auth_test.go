package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator is a test implementation of TokenValidator for unit tests.
type testTokenValidator struct {
	validTokens map[string]uuid.UUID
}

func (v *testTokenValidator) ValidateToken(tokenString string) (Principal, error) {
	userID, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(userID), nil
}

type testClaims uuid.UUID

func (c testClaims) GetUserID() uuid.UUID {
	return uuid.UUID(c)
}

func (c testClaims) GetRole() string {
	return "client"
}

func protected(t *testing.T, tokens map[string]uuid.UUID) (http.Handler, *uuid.UUID) {
	t.Helper()
	var seen uuid.UUID
	h := AuthMiddleware(&testTokenValidator{validTokens: tokens})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserID(r)
		require.NoError(t, err)
		seen = id
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seen
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	handler, seen := protected(t, map[string]uuid.UUID{"valid-test-token-123": userID})

	for _, header := range []string{"Bearer valid-test-token-123", "bearer valid-test-token-123", "BEARER  valid-test-token-123"} {
		req := httptest.NewRequest(http.MethodGet, "/me/recommendations", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, header)
		assert.Equal(t, userID, *seen)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	handler, _ := protected(t, map[string]uuid.UUID{"good": uuid.New()})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", "good"},
		{"wrong scheme", "Basic good"},
		{"extra parts", "Bearer good extra"},
		{"scheme only", "Bearer"},
		{"unknown token", "Bearer bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me/recommendations", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, rr.Body.String())
			assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestGetUserID(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ContextWithUserID(req.Context(), userID))

	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestGetUserID_Missing(t *testing.T) {
	_, err := GetUserID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Error(t, err)
}

func TestGetUserID_InvalidType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, "not-a-uuid"))

	_, err := GetUserID(req)
	assert.Error(t, err)
}

func TestAuthMiddleware_StoresRole(t *testing.T) {
	var role string
	h := AuthMiddleware(&testTokenValidator{validTokens: map[string]uuid.UUID{"t": uuid.New()}})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role = GetRole(r)
	}))

	req := httptest.NewRequest(http.MethodPut, "/profiles/me", nil)
	req.Header.Set("Authorization", "Bearer t")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "client", role)
	assert.Empty(t, GetRole(httptest.NewRequest(http.MethodGet, "/", nil)))
}
