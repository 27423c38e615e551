package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/navfs/navigator/internal/config"
)

// staleAfter is how long an idle client entry survives before cleanup.
const staleAfter = 10 * time.Minute

// RateLimit creates a per-IP rate limiting middleware from the engine's
// rate limit configuration. Idle client buckets are dropped lazily.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
		sweep   = time.Now()
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if now.Sub(sweep) > staleAfter {
			for addr, cl := range clients {
				if now.Sub(cl.lastSeen) > staleAfter {
					delete(clients, addr)
				}
			}
			sweep = now
		}
		cl, exists := clients[ip]
		if !exists {
			cl = &client{limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)}
			clients[ip] = cl
		}
		cl.lastSeen = now
		mu.Unlock()

		if !cl.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
