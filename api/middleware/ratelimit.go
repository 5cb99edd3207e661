package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/ldgen/config"
	"github.com/use-agent/ldgen/models"
	"golang.org/x/time/rate"
)

const (
	clientIdleTTL  = time.Hour
	sweepInterval  = 5 * time.Minute
	rateLimitedMsg = "too many requests from this client, retry shortly"
)

// clientBuckets holds one token bucket per client IP.
type clientBuckets struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newClientBuckets(cfg config.RateLimitConfig) *clientBuckets {
	return &clientBuckets{
		rps:     rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.Burst,
		buckets: make(map[string]*bucket),
	}
}

// allow takes one token from ip's bucket, creating it on first use.
func (cb *clientBuckets) allow(ip string, now time.Time) bool {
	cb.mu.Lock()
	b, ok := cb.buckets[ip]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(cb.rps, cb.burst)}
		cb.buckets[ip] = b
	}
	b.lastSeen = now
	cb.mu.Unlock()
	return b.lim.AllowN(now, 1)
}

// sweep drops buckets idle since before cutoff and returns how many remain.
func (cb *clientBuckets) sweep(cutoff time.Time) int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	for ip, b := range cb.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(cb.buckets, ip)
		}
	}
	return len(cb.buckets)
}

// RateLimit limits each client IP to cfg.RequestsPerSecond with bursts of
// cfg.Burst. Rejected requests get 429 with a RATE_LIMITED error body.
// Buckets idle for an hour are swept in the background.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	cb := newClientBuckets(cfg)

	go func() {
		for now := range time.Tick(sweepInterval) {
			cb.sweep(now.Add(-clientIdleTTL))
		}
	}()

	return func(c *gin.Context) {
		if cb.allow(c.ClientIP(), time.Now()) {
			c.Next()
			return
		}
		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
			Error: &models.ErrorDetail{Code: models.ErrCodeRateLimited, Message: rateLimitedMsg},
		})
	}
}
