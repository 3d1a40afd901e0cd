package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := Auth(next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("header present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(UserIDHeader, " user-42 ")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-42", seen)
	})
}

func TestContextIdentity(t *testing.T) {
	_, ok := ContextIdentity{}.CurrentUserID(context.Background())
	assert.False(t, ok)

	id, ok := ContextIdentity{}.CurrentUserID(WithUserID(context.Background(), "u1"))
	require.True(t, ok)
	assert.Equal(t, "u1", id)
}

type recordedRequest struct {
	method, path string
	status       int
}

type fakeHTTPMetrics struct {
	requests []recordedRequest
}

func (m *fakeHTTPMetrics) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	m.requests = append(m.requests, recordedRequest{method: method, path: path, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := muxRouter(m)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/PK123456", nil))

	require.Len(t, m.requests, 1)
	assert.Equal(t, recordedRequest{method: http.MethodGet, path: "/bookings/{bookingId}", status: http.StatusTeapot}, m.requests[0])
}
