package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/time_clock_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), GetLoggerFromCtx(context.Background()))

	custom := slog.New(slog.NewTextHandler(httptest.NewRecorder(), nil))
	assert.Same(t, custom, GetLoggerFromCtx(WithLogger(context.Background(), custom)))
}

func TestStructuredLoggingMiddleware_InjectsRequestLogger(t *testing.T) {
	base := slog.New(slog.NewTextHandler(httptest.NewRecorder(), nil))
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(base))

	var fromCtx, fromGin *slog.Logger
	r.GET("/x", func(c *gin.Context) {
		fromCtx = GetLoggerFromCtx(c.Request.Context())
		fromGin = GetLoggerFromContext(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	require.NotNil(t, fromCtx)
	assert.Same(t, fromCtx, fromGin)
	assert.NotSame(t, slog.Default(), fromCtx)
}

func TestRateLimit_RejectsAfterQuota(t *testing.T) {
	lim, err := NewIPRateLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/clock", RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	remaining := make([]string, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/clock", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		remaining = append(remaining, w.Header().Get("X-RateLimit-Remaining"))
		last = w
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, []string{"1", "0", "0"}, remaining)
	assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	assert.Contains(t, last.Body.String(), `"error":"RATE_LIMITED"`)

	// Another client has its own quota.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/clock", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewIPRateLimiter_InvalidRate(t *testing.T) {
	_, err := NewIPRateLimiter("lots")
	assert.Error(t, err)
}

func TestGetActorFromContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetActorFromContext(c)
	assert.False(t, ok)

	c.Set(string(kioskCompanyKey), "company-1")
	actor, ok := GetActorFromContext(c)
	require.True(t, ok)
	assert.True(t, actor.IsKiosk())
	assert.Empty(t, actor.SubjectID)

	c.Set(string(userIDKey), "worker-1")
	actor, ok = GetActorFromContext(c)
	require.True(t, ok)
	assert.Equal(t, "worker-1", actor.SubjectID)
}

func TestPosthogMiddleware_DisabledClientPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(PosthogMiddleware(nil), PosthogMiddleware(&utils.PosthogClientWrapper{}))
	r.GET("/x", func(c *gin.Context) {
		PosthogEvent(c, nil, "clock_action", nil)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDistinctIDFromContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := distinctIDFromContext(c)
	assert.False(t, ok)

	c.Set(string(kioskCompanyKey), "company-1")
	id, ok := distinctIDFromContext(c)
	require.True(t, ok)
	assert.Equal(t, "kiosk:company-1", id)

	c.Set(string(userIDKey), "worker-1")
	id, _ = distinctIDFromContext(c)
	assert.Equal(t, "worker-1", id)
}
