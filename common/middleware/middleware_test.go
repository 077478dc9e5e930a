package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2, time.Minute)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Second), 1, time.Minute)
	now := time.Now()
	rl.limiterFor("old", now.Add(-2*time.Minute))
	rl.limiterFor("fresh", now)

	assert.Equal(t, 1, rl.Sweep(now))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stop := make(chan struct{})
	defer close(stop)

	r := gin.New()
	r.Use(RateLimitMiddleware(2, stop))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTimeout_SetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(time.Second))

	var hasDeadline bool
	r.GET("/x", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.True(t, hasDeadline)
}

type fakeRecorder struct {
	mu     sync.Mutex
	counts map[string]int
	done   chan struct{}
}

func (f *fakeRecorder) IsEnabled() bool { return true }

func (f *fakeRecorder) RecordCount(_ context.Context, name string, _ map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[name]++
	return nil
}

func (f *fakeRecorder) RecordLatency(_ context.Context, _ string, _ time.Duration, _ map[string]string) error {
	close(f.done)
	return nil
}

func TestMetricsMiddleware_RecordsErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := &fakeRecorder{counts: map[string]int{}, done: make(chan struct{})}

	r := gin.New()
	r.Use(MetricsMiddleware(rec, "storefront-service"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("metrics were not recorded")
	}
	assert.Eventually(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return rec.counts["HTTP4xxErrors"] == 1 && rec.counts["HTTPRequests"] == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStatusCodeToRange(t *testing.T) {
	assert.Equal(t, "2xx", statusCodeToRange(201))
	assert.Equal(t, "4xx", statusCodeToRange(422))
	assert.Equal(t, "5xx", statusCodeToRange(503))
	assert.Equal(t, "unknown", statusCodeToRange(100))
}
