package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiterConfig struct {
	RequestsPerSecond int
	Burst             int
	CleanupInterval   time.Duration
	TTL               time.Duration
}

// limiterSet keeps one token bucket per client IP
type limiterSet struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      int
	burst    int
}

func (s *limiterSet) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rate.Limit(s.rps), s.burst)
		s.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanup drops idle visitors every interval until ctx is done
func (s *limiterSet) cleanup(ctx context.Context, ttl time.Duration, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		for ip, v := range s.visitors {
			if time.Since(v.lastSeen) > ttl {
				delete(s.visitors, ip)
			}
		}
		s.mu.Unlock()
	}
}

// RateLimiterMiddleware limits requests per client IP. The visitor cleanup
// runs until ctx is done.
func RateLimiterMiddleware(ctx context.Context, config RateLimiterConfig) gin.HandlerFunc {
	if config.CleanupInterval == 0 {
		config.CleanupInterval = time.Minute
	}
	if config.TTL == 0 {
		config.TTL = 3 * time.Minute
	}

	s := &limiterSet{
		visitors: make(map[string]*visitor),
		rps:      config.RequestsPerSecond,
		burst:    config.Burst,
	}

	go s.cleanup(ctx, config.TTL, config.CleanupInterval)

	return func(c *gin.Context) {
		limiter := s.get(c.ClientIP())

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":     "Too many requests",
				"requestID": c.GetString("requestID"),
			})
			return
		}

		c.Next()
	}
}
