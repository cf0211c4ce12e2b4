package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"academy-service/internal/logx"
)

type stubLimiter struct {
	allow bool
	calls int
}

func (s *stubLimiter) Allow(string) bool {
	s.calls++
	return s.allow
}

func okHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*calls++
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestMiddleware_AllowedWritePassesThrough(t *testing.T) {
	t.Parallel()

	nextCalled := 0
	lim := &stubLimiter{allow: true}
	h := New(logx.Nop(), nil, lim).Handler()(okHandler(&nextCalled))

	r := httptest.NewRequest(http.MethodPut, "/students/1/courses/2", nil)
	r.RemoteAddr = "1.2.3.4:5678"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, 1, nextCalled)
	require.Equal(t, 1, lim.calls)
}

func TestMiddleware_ReadsAreNeverThrottled(t *testing.T) {
	t.Parallel()

	nextCalled := 0
	lim := &stubLimiter{allow: false}
	h := New(logx.Nop(), nil, lim).Handler()(okHandler(&nextCalled))

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(method, "/courses", nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}
	require.Equal(t, 2, nextCalled)
	require.Zero(t, lim.calls)
}

func TestMiddleware_DeniedWriteReturns429AndCounts(t *testing.T) {
	t.Parallel()

	nextCalled := 0
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "academy_http_throttled_total",
		Help: "denied requests",
	})
	h := New(logx.Nop(), counter, &stubLimiter{allow: false}).Handler()(okHandler(&nextCalled))

	r := httptest.NewRequest(http.MethodPost, "/teachers", nil)
	r.RemoteAddr = "1.2.3.4:5678"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Zero(t, nextCalled)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Equal(t, "1", w.Header().Get("Retry-After"))
	require.Equal(t, `{"error":"too many requests"}`, w.Body.String())
	require.Equal(t, float64(1), testutil.ToFloat64(counter))
}

func TestMiddleware_NilLimiterDisablesThrottling(t *testing.T) {
	t.Parallel()

	nextCalled := 0
	h := New(nil, nil, nil).Handler()(okHandler(&nextCalled))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/courses/1", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, 1, nextCalled)
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"10.0.0.1:443":   "10.0.0.1",
		"not-a-hostport": "not-a-hostport",
		"":               "unknown",
	}
	for addr, want := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = addr
		require.Equal(t, want, clientIP(r), addr)
	}
}
