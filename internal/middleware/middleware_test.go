package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func do(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	w := do(r, http.MethodGet, "/ok", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(r, http.MethodGet, "/ok", http.Header{"X-Request-Id": {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestErrorLogger_RecoversPanic(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := newRouter(RequestID(), ErrorLogger(log))

	w := do(r, http.MethodGet, "/panic", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"INTERNAL_SERVER_ERROR","message":"Internal Server Error"}}`, w.Body.String())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "/panic", hook.LastEntry().Data["path"])
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := newRouter(RequestLogger(log))

	do(r, http.MethodGet, "/ok", nil)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, http.StatusOK, hook.LastEntry().Data["status"])

	do(r, http.MethodGet, "/missing", nil)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestCORS(t *testing.T) {
	r := newRouter(CORS([]string{"https://www.example.com"}))

	w := do(r, http.MethodGet, "/ok", http.Header{"Origin": {"https://www.example.com"}})
	assert.Equal(t, "https://www.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodGet, "/ok", http.Header{"Origin": {"https://evil.example"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodOptions, "/ok", http.Header{"Origin": {"http://localhost:3000"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	r := newRouter(RateLimit(limiter))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ok", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ok", nil).Code)

	w := do(r, http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestIPRateLimiter_PerAddressAndSweep(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"))

	now = now.Add(idleLimiterTTL + time.Minute)
	assert.True(t, limiter.Allow("10.0.0.3"))
	assert.Len(t, limiter.visitors, 1)
	assert.True(t, limiter.Allow("10.0.0.1"))
}

func TestInternalTokenAuth(t *testing.T) {
	log, _ := test.NewNullLogger()
	r := newRouter(InternalTokenAuth("s3cret", nil, log))

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/ok", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/ok", http.Header{"Authorization": {"s3cret"}}).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/ok", http.Header{"Authorization": {"Bearer nope"}}).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ok", http.Header{"Authorization": {"Bearer s3cret"}}).Code)
}

func TestInternalTokenAuth_OpenWithoutToken(t *testing.T) {
	log, _ := test.NewNullLogger()

	r := newRouter(InternalTokenAuth("", nil, log))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ok", nil).Code)

	r = newRouter(InternalTokenAuth("", []string{"10.9.9.9"}, log))
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/ok", nil).Code)
}
