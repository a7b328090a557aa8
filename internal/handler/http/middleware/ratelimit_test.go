package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payroll/calculate", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(2)
	h := rl.Handler(okHandler())

	for i := 0; i < 2; i++ {
		rec := doRequest(h, "10.0.0.1:51234")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	rl := NewRateLimiter(2)
	h := rl.Handler(okHandler())

	doRequest(h, "10.0.0.1:51234")
	doRequest(h, "10.0.0.1:51234")
	rec := doRequest(h, "10.0.0.1:51234")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl := NewRateLimiter(1)
	h := rl.Handler(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:51234").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1:51234").Code)

	// A different client keeps its own bucket.
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.2:51234").Code)
}
