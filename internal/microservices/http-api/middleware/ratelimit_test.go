package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clientCaller(r http.Handler) func(ip string) int {
	return func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
}

func TestRateLimit_PerClient(t *testing.T) {
	call := clientCaller(setupRouter(RateLimit(0.001, 2, 16)))

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))

	// another client has its own bucket
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))
}

func TestRateLimit_ActiveClientKeepsBucket(t *testing.T) {
	idle := 100 * time.Millisecond
	call := clientCaller(setupRouter(rateLimit(0.001, 1, 16, idle)))

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	// keep hitting for well past the idle window; the drained bucket must stay
	for deadline := time.Now().Add(3 * idle); time.Now().Before(deadline); {
		assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
		time.Sleep(idle / 4)
	}

	// a quiet client gets a fresh bucket
	time.Sleep(2 * idle)
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
}
