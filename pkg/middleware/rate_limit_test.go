package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roomly/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestClientRateLimiter_Allow(t *testing.T) {
	rl := NewClientRateLimiter(3, time.Minute, logger.Discard())
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d within burst should pass", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"), "request beyond burst should be rejected")

	// Other clients have their own bucket.
	assert.True(t, rl.Allow("10.0.0.2"))

	// Empty keys are never limited.
	assert.True(t, rl.Allow(""))
}

func TestClientRateLimit_Middleware(t *testing.T) {
	rl := NewClientRateLimiter(1, time.Minute, logger.Discard())
	defer rl.Stop()

	handler := ClientRateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	req.RemoteAddr = "10.0.0.1:52000"
	handler.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, second.Body.String())
}

func TestClientKey_PrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	req.RemoteAddr = "10.0.0.1:52000"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	assert.Equal(t, "203.0.113.7", clientKey(req))

	req.Header.Del("X-Forwarded-For")
	assert.Equal(t, "10.0.0.1", clientKey(req))
}
