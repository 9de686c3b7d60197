package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matjarhub/booking-service/internal/api/middleware"
)

func TestAuth(t *testing.T) {
	userID := uuid.New()

	var gotUserID uuid.UUID
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = middleware.UserID(r.Context())
		called = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid header passes user id to context", func(t *testing.T) {
		called = false

		req := httptest.NewRequest(http.MethodGet, "/api/v1/meetings", nil)
		req.Header.Set(middleware.UserIDHeader, userID.String())
		rec := httptest.NewRecorder()

		middleware.Auth(next).ServeHTTP(rec, req)

		require.True(t, called)
		assert.Equal(t, userID, gotUserID)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		called = false

		req := httptest.NewRequest(http.MethodGet, "/api/v1/meetings", nil)
		rec := httptest.NewRecorder()

		middleware.Auth(next).ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		called = false

		req := httptest.NewRequest(http.MethodGet, "/api/v1/meetings", nil)
		req.Header.Set(middleware.UserIDHeader, "not-a-uuid")
		rec := httptest.NewRecorder()

		middleware.Auth(next).ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
