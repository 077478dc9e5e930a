package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// SecurityHeaders adds security-related headers to all responses
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	ips   map[string]*limiterEntry
	mu    sync.Mutex
	rate  rate.Limit
	burst int
	ttl   time.Duration
}

// NewRateLimiter creates a new rate limiter. Entries idle for longer than ttl
// are dropped by Sweep.
func NewRateLimiter(r rate.Limit, b int, ttl time.Duration) *RateLimiter {
	return &RateLimiter{
		ips:   make(map[string]*limiterEntry),
		rate:  r,
		burst: b,
		ttl:   ttl,
	}
}

// Allow reports whether ip may make a request now.
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.limiterFor(ip, time.Now()).Allow()
}

func (rl *RateLimiter) limiterFor(ip string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.ips[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.ips[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// Sweep removes entries not seen since now-ttl and returns how many remain.
func (rl *RateLimiter) Sweep(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, e := range rl.ips {
		if now.Sub(e.lastSeen) > rl.ttl {
			delete(rl.ips, ip)
		}
	}
	return len(rl.ips)
}

// RateLimitMiddleware allows perMinute requests per client IP with a burst of
// half that. A non-positive perMinute disables limiting.
func RateLimitMiddleware(perMinute int, stop <-chan struct{}) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	burst := perMinute / 2
	if burst < 1 {
		burst = 1
	}
	limiter := NewRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst, 5*time.Minute)

	go func() {
		ticker := time.NewTicker(limiter.ttl)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				limiter.Sweep(now)
			}
		}
	}()

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

// CORSMiddleware allows the configured origins. "*" or an empty list allows
// any origin. Requests from other origins are rejected with 403.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range allowedOrigins {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o == "*" {
			cfg.AllowOrigins = nil
			cfg.AllowAllOrigins = true
			break
		}
		if strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://") {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	}

	return cors.New(cfg)
}
